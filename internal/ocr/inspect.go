package ocr

import (
	"bytes"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
	"github.com/rs/zerolog/log"
)

// Metadata is the EXIF information worth logging for a captured image.
type Metadata struct {
	CameraMake  string
	CameraModel string
	Taken       time.Time
	HasEXIF     bool
}

// Inspect reads EXIF metadata from the payload. It is best-effort: screenshots
// and canvas captures usually carry no EXIF, which yields a zero Metadata.
func Inspect(p Payload) Metadata {
	if len(p.Data) == 0 {
		return Metadata{}
	}

	exifData, err := imagemeta.Decode(bytes.NewReader(p.Data))
	if err != nil {
		log.Debug().Err(err).Str("mime", p.MIMEType).Msg("No EXIF metadata in image")
		return Metadata{}
	}

	md := Metadata{
		CameraMake:  strings.TrimSpace(exifData.Make),
		CameraModel: strings.TrimSpace(exifData.Model),
		Taken:       exifData.DateTimeOriginal(),
	}
	md.HasEXIF = md.CameraMake != "" || md.CameraModel != "" || !md.Taken.IsZero()

	if md.HasEXIF {
		log.Debug().
			Str("camera_make", md.CameraMake).
			Str("camera_model", md.CameraModel).
			Time("taken", md.Taken).
			Msg("Image EXIF metadata")
	}
	return md
}
