// Package main serves PolyLingo over the Model Context Protocol on stdio.
//
// Tools:
//
//	translate_text  translate a string
//	scan_image      read text from an image file or base64 payload and translate it
//
// Stdout carries the protocol, so logs go to stderr and EMF metrics are
// discarded.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/fpang/polylingo/internal/cli"
	"github.com/fpang/polylingo/internal/logging"
	"github.com/fpang/polylingo/internal/metrics"
)

func main() {
	logging.Init()
	metrics.SetOutput(io.Discard)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := cli.LoadConfig()
	tr := cli.InitTranslator(&cfg)
	runner := cli.InitRunner(ctx, &cfg, tr)

	server := newServer(&tools{translator: tr, runner: runner})
	log.Info().Str("engine", cfg.OCR.Engine).Msg("MCP server listening on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
