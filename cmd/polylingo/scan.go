package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/polylingo/internal/cli"
	"github.com/fpang/polylingo/internal/config"
	"github.com/fpang/polylingo/internal/pipeline"
)

var (
	scanToFlag    string
	scanFromFlag  string
	engineFlag    string
	remoteURLFlag string
	pickFlag      bool
	scanJSONFlag  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [IMAGE...]",
	Short: "Read the text in images and translate it",
	Long: `Scan runs OCR on each image, then translates the text it found.
Images are processed one at a time. With no IMAGE arguments, or with
--pick, a native file picker opens.

Engines:
  tesseract       local Tesseract with word boxes (default)
  tesseract-fast  local Tesseract, text only
  gemini          Gemini vision model (needs GEMINI_API_KEY)
  remote          send the image to a running ocr-server`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanToFlag, "to", "t", "en", "Target language code")
	scanCmd.Flags().StringVarP(&scanFromFlag, "from", "f", "", "Source language code (default: auto-detect)")
	scanCmd.Flags().StringVarP(&engineFlag, "engine", "e", "", "OCR engine (default from OCR_ENGINE, else tesseract)")
	scanCmd.Flags().StringVar(&remoteURLFlag, "remote-url", "", "ocr-server base URL for the remote engine")
	scanCmd.Flags().BoolVar(&pickFlag, "pick", false, "Choose images with the native file picker")
	scanCmd.Flags().BoolVar(&scanJSONFlag, "json", false, "Print results as JSON lines")
}

// scanResult is one JSON line of --json output.
type scanResult struct {
	Image string `json:"image"`
	pipeline.Summary
}

func runScan(cmd *cobra.Command, args []string) error {
	paths := args
	if pickFlag || len(paths) == 0 {
		picked, err := cli.PickImages()
		if err != nil {
			if errors.Is(err, cli.ErrPickCanceled) {
				fmt.Fprintln(os.Stderr, "No images selected.")
				return nil
			}
			return err
		}
		paths = picked
	}

	cfg := cli.LoadConfig()
	if engineFlag != "" {
		cfg.OCR.Engine = config.NormalizeEngine(engineFlag)
	}
	if remoteURLFlag != "" {
		cfg.OCR.RemoteURL = remoteURLFlag
	}

	ctx := context.Background()
	runner := cli.InitRunner(ctx, &cfg, nil)
	log.Info().
		Int("images", len(paths)).
		Str("engine", cfg.OCR.Engine).
		Str("target", cli.LanguageLabel(scanToFlag)).
		Msg("Scanning images")

	failures := 0
	enc := json.NewEncoder(os.Stdout)
	for _, path := range paths {
		start := time.Now()
		s := scanOne(ctx, runner, path)
		if !s.Success {
			failures++
		}
		if scanJSONFlag {
			if err := enc.Encode(scanResult{Image: path, Summary: s}); err != nil {
				return err
			}
			continue
		}
		cli.PrintSummary(os.Stdout, filepath.Base(path), s, time.Since(start))
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d images failed", failures, len(paths))
	}
	return nil
}

func scanOne(ctx context.Context, runner pipeline.Runner, path string) pipeline.Summary {
	img, err := cli.ReadImage(path)
	if err != nil {
		return pipeline.Summary{Stage: pipeline.StageOCR, Error: err.Error()}
	}
	return runner.Run(ctx, pipeline.Job{Image: img, SourceLanguage: scanFromFlag, TargetLanguage: scanToFlag})
}
