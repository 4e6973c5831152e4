// Package remote delegates recognition and translation to a running
// ocr-server. One POST to /api/ocr-translate does both steps server-side.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/polylingo/internal/language"
	"github.com/fpang/polylingo/internal/ocr"
)

const (
	// DefaultBaseURL is where a local ocr-server listens.
	DefaultBaseURL = "http://localhost:5000"

	// defaultTimeout covers recognition plus translation on the server.
	defaultTimeout = 60 * time.Second

	// defaultTarget matches the server's default target language.
	defaultTarget = "en"

	ocrTranslatePath = "/api/ocr-translate"

	// maxResponseBody bounds how much of a reply is read.
	maxResponseBody = 8 << 20
)

// Client calls the remote OCR-translate endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// request is the wire form. The image travels as bare base64.
type request struct {
	Image          string `json:"image"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type response struct {
	Success        bool       `json:"success"`
	ExtractedText  string     `json:"extractedText"`
	TranslatedText string     `json:"translatedText"`
	Confidence     float64    `json:"confidence"`
	Words          []ocr.Word `json:"words"`
	Fallback       bool       `json:"fallback"`
	Error          string     `json:"error"`
	Details        string     `json:"details"`
}

// Reply is the outcome of a server-side OCR + translation.
type Reply struct {
	Result   ocr.Result
	Fallback bool
}

// Name implements ocr.Extractor.
func (c *Client) Name() string { return "remote" }

// Recognize implements ocr.Extractor. The server always translates, so the
// translated text (into English) is carried along in the result.
func (c *Client) Recognize(ctx context.Context, img ocr.Payload) ocr.Result {
	return c.RecognizeAndTranslate(ctx, img, language.Auto, defaultTarget).Result
}

// RecognizeAndTranslate runs both steps on the server. Transport errors,
// non-2xx statuses, and success:false replies all become failure results.
func (c *Client) RecognizeAndTranslate(ctx context.Context, img ocr.Payload, source, target string) Reply {
	if img.Size() == 0 {
		return Reply{Result: ocr.Failure(ocr.ErrEmptyPayload)}
	}
	if source == "" {
		source = language.Auto
	}
	if target == "" {
		target = defaultTarget
	}

	resp, err := c.post(ctx, request{Image: img.Base64(), SourceLanguage: source, TargetLanguage: target})
	if err != nil {
		log.Warn().Err(err).Str("baseURL", c.baseURL).Msg("Remote OCR request failed")
		return Reply{Result: ocr.Failure(err)}
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "Unknown server error"
		}
		return Reply{Result: ocr.Failure(errors.New(msg))}
	}

	return Reply{
		Result: ocr.Result{
			Success:        true,
			Text:           resp.ExtractedText,
			Confidence:     resp.Confidence,
			Words:          resp.Words,
			TranslatedText: resp.TranslatedText,
		},
		Fallback: resp.Fallback,
	}
}

func (c *Client) post(ctx context.Context, body request) (*response, error) {
	startTime := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	log.Debug().Str("method", http.MethodPost).Str("path", ocrTranslatePath).Int("imageBytes", len(body.Image)).Msg("Remote OCR request")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ocrTranslatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	log.Debug().Int("statusCode", httpResp.StatusCode).Dur("duration", duration).Msg("Remote OCR response")

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(raw) > maxResponseBody {
		return nil, fmt.Errorf("response exceeds %d bytes", maxResponseBody)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, statusError(httpResp.StatusCode, raw)
	}

	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w (body: %s)", err, truncate(string(raw), 200))
	}
	return &resp, nil
}

// statusError describes a non-2xx reply, keeping the server's own error
// and details when the body carries them.
func statusError(status int, raw []byte) error {
	var body response
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		if body.Details != "" {
			return fmt.Errorf("server returned %d: %s (%s)", status, body.Error, body.Details)
		}
		return fmt.Errorf("server returned %d: %s", status, body.Error)
	}
	return fmt.Errorf("server returned %d: %s", status, http.StatusText(status))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
