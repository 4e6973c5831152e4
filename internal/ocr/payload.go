package ocr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrEmptyPayload is returned for a missing or zero-length image.
	ErrEmptyPayload = errors.New("image payload is empty")

	// ErrMalformedPayload is returned when the payload is not base64 or not a
	// well-formed data URL.
	ErrMalformedPayload = errors.New("image payload is not valid base64 image data")
)

// Payload is an encoded raster image with its MIME type. It is treated as
// immutable once parsed.
type Payload struct {
	MIMEType string
	Data     []byte
}

// NewPayload wraps raw image bytes, sniffing the MIME type when it is empty.
func NewPayload(data []byte, mimeType string) Payload {
	if mimeType == "" && len(data) > 0 {
		mimeType = http.DetectContentType(data)
	}
	return Payload{MIMEType: mimeType, Data: data}
}

// ParsePayload accepts either a data URL ("data:image/png;base64,....") or a
// bare base64 string, which is what the remote OCR endpoint sends.
func ParsePayload(s string) (Payload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Payload{}, ErrEmptyPayload
	}

	mimeType := ""
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return Payload{}, fmt.Errorf("%w: data URL has no comma", ErrMalformedPayload)
		}
		header := s[len("data:"):comma]
		if !strings.HasSuffix(header, ";base64") {
			return Payload{}, fmt.Errorf("%w: data URL is not base64-encoded", ErrMalformedPayload)
		}
		mimeType = strings.TrimSuffix(header, ";base64")
		s = s[comma+1:]
	}

	data, err := decodeBase64(s)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(data) == 0 {
		return Payload{}, ErrEmptyPayload
	}
	return NewPayload(data, mimeType), nil
}

// decodeBase64 tolerates unpadded input, which some canvas encoders produce.
func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

// Base64 returns the image as standard base64 without a data URL prefix.
func (p Payload) Base64() string {
	return base64.StdEncoding.EncodeToString(p.Data)
}

// DataURL returns the image as a data URL.
func (p Payload) DataURL() string {
	mimeType := p.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + p.Base64()
}

// Size returns the encoded image size in bytes.
func (p Payload) Size() int {
	return len(p.Data)
}
