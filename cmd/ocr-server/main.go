// Package main runs the local OCR + translation server.
//
// Endpoints:
//
//	GET  /api/status         liveness message
//	GET  /api/health         health check
//	POST /api/translate      translate text
//	POST /api/ocr-translate  read text from an image and translate it
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/polylingo/internal/cli"
	"github.com/fpang/polylingo/internal/config"
	"github.com/fpang/polylingo/internal/httpapi"
	"github.com/fpang/polylingo/internal/logging"
	"github.com/fpang/polylingo/internal/ocr/backend"
	"github.com/fpang/polylingo/internal/pipeline"
)

// CLI flags
var (
	portFlag   int
	engineFlag string
	modelFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "ocr-server",
	Short: "Local OCR and translation server",
	Long: `OCR Server reads text from uploaded images and translates it through
Groq. It also serves the plain translate endpoint, so a browser client can
use it in place of the serverless function.

The Groq API key is read from GROQ_API_KEY or ~/.polylingo/groq.gpg.
The server will not start without it.

Examples:
  ocr-server
  ocr-server --port 8080
  ocr-server --engine tesseract-fast`,
	Args: cobra.NoArgs,
	Run:  runMain,
}

func init() {
	rootCmd.Flags().IntVar(&portFlag, "port", defaultPort(), "Port to listen on (default from PORT)")
	rootCmd.Flags().StringVarP(&engineFlag, "engine", "e", logging.EnvOrDefault("OCR_ENGINE", backend.Tesseract), "OCR engine: tesseract, tesseract-fast, gemini")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", logging.EnvOrDefault("GROQ_MODEL", config.DefaultGroqModel), "Groq model used for translation")
}

func defaultPort() int {
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil && p > 0 && p <= 65535 {
		return p
	}
	return config.DefaultPort
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) {
	initStart := time.Now()
	logging.Init()

	cfg := cli.LoadConfig()
	cfg.Port = portFlag
	cfg.OCR.Engine = config.NormalizeEngine(engineFlag)
	cfg.Groq.Model = modelFlag
	if cfg.OCR.Engine == backend.Remote {
		log.Fatal().Msg("The server cannot delegate to itself; choose a local engine")
	}

	ctx := context.Background()
	tr := cli.InitTranslator(&cfg)
	runner := &pipeline.TwoStep{Extractor: cli.InitExtractor(ctx, &cfg), Translator: tr}

	handler := gzhttp.GzipHandler(httpapi.NewServer(tr, runner))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	logging.NewStartupLogger("ocr-server").
		InitDuration(time.Since(initStart)).
		Upstream("groq", cfg.Groq.BaseURL).
		Config("port", strconv.Itoa(cfg.Port)).
		Config("engine", cfg.OCR.Engine).
		Config("ocrLanguage", cfg.OCR.Language).
		Config("model", cfg.Groq.Model).
		Feature("gzip", true).
		Log()

	fmt.Printf("\n  PolyLingo OCR server: http://localhost:%d\n\n", cfg.Port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
