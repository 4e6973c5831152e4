// Package main is the polylingo command-line tool: translate text, read
// and translate the text in images, and list supported languages.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fpang/polylingo/internal/logging"
	"github.com/fpang/polylingo/internal/metrics"
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "polylingo",
	Short: "Translate text and the text in photos",
	Long: `PolyLingo reads text from photos of signs, menus, and documents and
translates it, or translates text given on the command line.

Translation uses Groq. The API key is read from GROQ_API_KEY or from the
GPG-encrypted file ~/.polylingo/groq.gpg.

Examples:
  polylingo translate "Where is the train station?" --to ja
  polylingo scan menu.jpg --to en
  polylingo scan --pick --to fr
  polylingo scan sign.png --engine remote --remote-url http://localhost:5000
  polylingo languages`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init()
		// Metrics are for the deployed services; keep the terminal clean.
		metrics.SetOutput(io.Discard)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd, scanCmd, languagesCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
