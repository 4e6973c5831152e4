package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fpang/polylingo/internal/cli"
	"github.com/fpang/polylingo/internal/translate"
)

var (
	toFlag   string
	fromFlag string
	jsonFlag bool
)

var translateCmd = &cobra.Command{
	Use:   "translate TEXT...",
	Short: "Translate text",
	Long: `Translate joins its arguments into one text and translates it.
If the translation service fails, the original text is printed with a
[FALLBACK] prefix instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVarP(&toFlag, "to", "t", "", "Target language code (required)")
	translateCmd.Flags().StringVarP(&fromFlag, "from", "f", "", "Source language code (default: auto-detect)")
	translateCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the full JSON result")
	_ = translateCmd.MarkFlagRequired("to")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg := cli.LoadConfig()
	tr := cli.InitTranslator(&cfg)

	out := tr.Translate(context.Background(), translate.Request{
		Text:           strings.Join(args, " "),
		SourceLanguage: fromFlag,
		TargetLanguage: toFlag,
	})
	if out.Kind == translate.OutcomeInvalid {
		return errors.New(translate.MissingParametersMessage)
	}

	if jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Result)
	}
	if out.Kind == translate.OutcomeFallback {
		fmt.Fprintf(os.Stderr, "warning: translation service unavailable (%v)\n", out.Cause)
	}
	fmt.Println(out.Result.Translation)
	return nil
}
