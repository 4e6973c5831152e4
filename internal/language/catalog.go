// Package language maps ISO 639 codes to the English language names used in
// translation prompts.
package language

import "sort"

// Auto is the sentinel source language meaning "detect automatically".
const Auto = "auto"

// names is static configuration; nothing writes to it after init.
var names = map[string]string{
	"en":  "English",
	"es":  "Spanish",
	"fr":  "French",
	"de":  "German",
	"it":  "Italian",
	"pt":  "Portuguese",
	"ru":  "Russian",
	"zh":  "Chinese",
	"ja":  "Japanese",
	"ko":  "Korean",
	"ar":  "Arabic",
	"hi":  "Hindi",
	"tr":  "Turkish",
	"nl":  "Dutch",
	"pl":  "Polish",
	"vi":  "Vietnamese",
	"th":  "Thai",
	"id":  "Indonesian",
	"ms":  "Malay",
	"fa":  "Persian",
	"he":  "Hebrew",
	"ur":  "Urdu",
	"bn":  "Bengali",
	"ta":  "Tamil",
	"te":  "Telugu",
	"mr":  "Marathi",
	"gu":  "Gujarati",
	"kn":  "Kannada",
	"ml":  "Malayalam",
	"pa":  "Punjabi",
	"si":  "Sinhala",
	"ne":  "Nepali",
	"my":  "Burmese",
	"km":  "Khmer",
	"lo":  "Lao",
	"mn":  "Mongolian",
	"uk":  "Ukrainian",
	"cs":  "Czech",
	"sk":  "Slovak",
	"hu":  "Hungarian",
	"ro":  "Romanian",
	"bg":  "Bulgarian",
	"el":  "Greek",
	"sv":  "Swedish",
	"no":  "Norwegian",
	"da":  "Danish",
	"fi":  "Finnish",
	"is":  "Icelandic",
	"lt":  "Lithuanian",
	"lv":  "Latvian",
	"et":  "Estonian",
	"hr":  "Croatian",
	"sr":  "Serbian",
	"bs":  "Bosnian",
	"sl":  "Slovenian",
	"mk":  "Macedonian",
	"sq":  "Albanian",
	"mt":  "Maltese",
	"cy":  "Welsh",
	"ga":  "Irish",
	"gl":  "Galician",
	"eu":  "Basque",
	"ca":  "Catalan",
	"af":  "Afrikaans",
	"sw":  "Swahili",
	"zu":  "Zulu",
	"xh":  "Xhosa",
	"st":  "Sesotho",
	"tn":  "Tswana",
	"sn":  "Shona",
	"so":  "Somali",
	"am":  "Amharic",
	"ha":  "Hausa",
	"yo":  "Yoruba",
	"ig":  "Igbo",
	"mg":  "Malagasy",
	"tl":  "Tagalog",
	"mi":  "Maori",
	"haw": "Hawaiian",
	"sm":  "Samoan",
	"to":  "Tongan",
	"fj":  "Fijian",
	"ty":  "Tahitian",
	"hy":  "Armenian",
	"ka":  "Georgian",
	"az":  "Azerbaijani",
	"uz":  "Uzbek",
	"kk":  "Kazakh",
	"ky":  "Kyrgyz",
	"tg":  "Tajik",
	"tk":  "Turkmen",
	"tt":  "Tatar",
	"ug":  "Uyghur",
	"bo":  "Tibetan",
	"dz":  "Dzongkha",
	"jv":  "Javanese",
	"su":  "Sundanese",
	"la":  "Latin",
	"grc": "Ancient Greek",
	"sa":  "Sanskrit",
	"yi":  "Yiddish",
	"eo":  "Esperanto",
}

// Name returns the human-readable name for code. Unknown codes are returned
// verbatim so callers can pass any language through to the prompt.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// Known reports whether code is in the catalog.
func Known(code string) bool {
	_, ok := names[code]
	return ok
}

// IsAuto reports whether code asks for automatic source detection. An absent
// code counts as auto.
func IsAuto(code string) bool {
	return code == "" || code == Auto
}

// Codes returns every catalog code in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(names))
	for code := range names {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of catalog entries.
func Len() int {
	return len(names)
}
