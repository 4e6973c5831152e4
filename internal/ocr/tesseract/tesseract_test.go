package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/fpang/polylingo/internal/metrics"
	"github.com/fpang/polylingo/internal/ocr"
)

func TestMain(m *testing.M) {
	metrics.SetOutput(io.Discard)
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

// renderText draws s in black on a white canvas, scaled up so the 7x13
// bitmap font is legible to the recognizer.
func renderText(t *testing.T, s string) []byte {
	t.Helper()
	small := image.NewRGBA(image.Rect(0, 0, 12+7*len(s), 24))
	draw.Draw(small, small.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: small, Src: image.Black, Face: basicfont.Face7x13, Dot: fixed.P(6, 17)}
	d.DrawString(s)

	const scale = 4
	big := image.NewRGBA(image.Rect(0, 0, small.Bounds().Dx()*scale, small.Bounds().Dy()*scale))
	for y := 0; y < big.Bounds().Dy(); y++ {
		for x := 0; x < big.Bounds().Dx(); x++ {
			big.Set(x, y, small.At(x/scale, y/scale))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, big); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRecognizeDetailed(t *testing.T) {
	ensureTesseractAvailable(t)

	e := New(ocr.DefaultEngineConfig(), ModeDetailed)
	res := e.Recognize(context.Background(), ocr.NewPayload(renderText(t, "HELLO WORLD"), ""))

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if !strings.Contains(strings.ToUpper(res.Text), "HELLO") {
		t.Errorf("expected HELLO in %q", res.Text)
	}
	if len(res.Words) == 0 {
		t.Error("detailed mode should report words")
	}
	if res.Confidence < 0 || res.Confidence > 100 {
		t.Errorf("confidence out of range: %v", res.Confidence)
	}
}

func TestRecognizeFastOmitsWords(t *testing.T) {
	ensureTesseractAvailable(t)

	e := New(ocr.DefaultEngineConfig(), ModeFast)
	res := e.Recognize(context.Background(), ocr.NewPayload(renderText(t, "HELLO"), ""))

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Words != nil {
		t.Errorf("fast mode should omit words, got %d", len(res.Words))
	}
}

func TestRecognizeRejectsNonImage(t *testing.T) {
	// Prepare runs before the engine is touched, so this needs no tesseract.
	res := New(ocr.EngineConfig{}, ModeDetailed).Recognize(context.Background(), ocr.NewPayload([]byte("not an image"), ""))
	if res.Success {
		t.Fatal("expected failure for non-image payload")
	}
	if res.Error == "" {
		t.Error("failure must carry a message")
	}
}

func TestName(t *testing.T) {
	if got := New(ocr.EngineConfig{}, ModeDetailed).Name(); got != "tesseract" {
		t.Errorf("unexpected name %q", got)
	}
	if got := New(ocr.EngineConfig{}, ModeFast).Name(); got != "tesseract-fast" {
		t.Errorf("unexpected name %q", got)
	}
}
