package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fpang/polylingo/internal/cli"
	"github.com/fpang/polylingo/internal/language"
	"github.com/fpang/polylingo/internal/ocr"
	"github.com/fpang/polylingo/internal/pipeline"
	"github.com/fpang/polylingo/internal/translate"
)

const serverVersion = "v1.0.0"

type translateArgs struct {
	Text           string `json:"text" jsonschema:"the text to translate"`
	TargetLanguage string `json:"targetLanguage" jsonschema:"target language code, e.g. es or ja"`
	SourceLanguage string `json:"sourceLanguage,omitempty" jsonschema:"source language code; omit to auto-detect"`
}

type scanArgs struct {
	Path           string `json:"path,omitempty" jsonschema:"local path of the image file"`
	Image          string `json:"image,omitempty" jsonschema:"base64 image or data URL, used when path is empty"`
	TargetLanguage string `json:"targetLanguage,omitempty" jsonschema:"target language code; defaults to en"`
	SourceLanguage string `json:"sourceLanguage,omitempty" jsonschema:"source language code; omit to auto-detect"`
}

type scanOutput struct {
	ExtractedText  string  `json:"extractedText"`
	TranslatedText string  `json:"translatedText"`
	Confidence     float64 `json:"confidence"`
	Words          int     `json:"words"`
	Fallback       bool    `json:"fallback"`
}

// tools binds the MCP tool handlers to a translator and pipeline.
type tools struct {
	translator pipeline.Translator
	runner     pipeline.Runner
}

func newServer(t *tools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "polylingo", Version: serverVersion}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "translate_text",
		Description: "Translate text into another language. Degraded results are prefixed with [FALLBACK].",
	}, t.translateText)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan_image",
		Description: "Read the text in an image (OCR) and translate it.",
	}, t.scanImage)
	return server
}

func (t *tools) translateText(ctx context.Context, _ *mcp.CallToolRequest, args translateArgs) (*mcp.CallToolResult, translate.Result, error) {
	out := t.translator.Translate(ctx, translate.Request{
		Text:           args.Text,
		SourceLanguage: args.SourceLanguage,
		TargetLanguage: args.TargetLanguage,
	})
	if out.Kind == translate.OutcomeInvalid {
		return nil, translate.Result{}, errors.New(translate.MissingParametersMessage)
	}
	return nil, out.Result, nil
}

func (t *tools) scanImage(ctx context.Context, _ *mcp.CallToolRequest, args scanArgs) (*mcp.CallToolResult, scanOutput, error) {
	img, err := loadImage(args)
	if err != nil {
		return nil, scanOutput{}, err
	}

	target := args.TargetLanguage
	if target == "" {
		target = "en"
	}
	source := args.SourceLanguage
	if source == "" {
		source = language.Auto
	}

	s := t.runner.Run(ctx, pipeline.Job{Image: img, SourceLanguage: source, TargetLanguage: target})
	if !s.Success {
		return nil, scanOutput{}, fmt.Errorf("scan failed at %s stage: %s", s.Stage, s.Error)
	}
	return nil, scanOutput{
		ExtractedText:  s.ExtractedText,
		TranslatedText: s.TranslatedText,
		Confidence:     s.Confidence,
		Words:          len(s.Words),
		Fallback:       s.Fallback,
	}, nil
}

func loadImage(args scanArgs) (ocr.Payload, error) {
	switch {
	case strings.TrimSpace(args.Path) != "":
		return cli.ReadImage(args.Path)
	case strings.TrimSpace(args.Image) != "":
		return ocr.ParsePayload(args.Image)
	default:
		return ocr.Payload{}, errors.New("provide either path or image")
	}
}
