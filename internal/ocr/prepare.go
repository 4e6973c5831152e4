package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for image.DecodeConfig
	_ "image/jpeg" // register JPEG decoder for image.DecodeConfig
	"image/png"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/rs/zerolog/log"
)

// DefaultMaxDimension caps the longest image side handed to an engine.
// Phone cameras produce 4000+ px captures; text stays legible well below that.
const DefaultMaxDimension = 3000

// MaxPixels caps the declared raster size. Decoding allocates the full
// raster before any downscale, so larger images are refused up front.
const MaxPixels = 50_000_000

// ErrUnsupportedImage is returned when the payload is not a decodable raster image.
var ErrUnsupportedImage = errors.New("unsupported image format")

// engineFormats are formats every backend accepts as-is.
var engineFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
}

// Prepared is an image ready for recognition.
type Prepared struct {
	Data     []byte
	MIMEType string
	Format   string
	Width    int
	Height   int
	// Converted is true when the image was re-encoded (scaled or transcoded).
	Converted bool
}

// Prepare validates that p is a real raster image and normalizes it for the
// engines: images over maxDim on either side are downscaled and formats the
// engines may not read (WebP) are transcoded to PNG. maxDim <= 0 disables
// scaling.
func Prepare(p Payload, maxDim int) (Prepared, error) {
	if len(p.Data) == 0 {
		return Prepared{}, ErrEmptyPayload
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(p.Data))
	if err != nil {
		return Prepared{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Prepared{}, fmt.Errorf("%w: empty image (%dx%d)", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return Prepared{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnsupportedImage, cfg.Width, cfg.Height, MaxPixels)
	}

	tooLarge := maxDim > 0 && (cfg.Width > maxDim || cfg.Height > maxDim)
	if !tooLarge && engineFormats[format] {
		return Prepared{
			Data:     p.Data,
			MIMEType: "image/" + format,
			Format:   format,
			Width:    cfg.Width,
			Height:   cfg.Height,
		}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return Prepared{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	width, height := cfg.Width, cfg.Height
	if tooLarge {
		width, height = scaledDimensions(cfg.Width, cfg.Height, maxDim)
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Prepared{}, fmt.Errorf("encode prepared image: %w", err)
	}

	log.Debug().
		Str("format", format).
		Int("orig_width", cfg.Width).
		Int("orig_height", cfg.Height).
		Int("new_width", width).
		Int("new_height", height).
		Int("output_size", buf.Len()).
		Msg("Image normalized for OCR")

	return Prepared{
		Data:      buf.Bytes(),
		MIMEType:  "image/png",
		Format:    "png",
		Width:     width,
		Height:    height,
		Converted: true,
	}, nil
}

// scaledDimensions fits width x height inside maxDim x maxDim, keeping the
// aspect ratio and never returning a zero side.
func scaledDimensions(width, height, maxDim int) (int, int) {
	if width >= height {
		h := height * maxDim / width
		if h < 1 {
			h = 1
		}
		return maxDim, h
	}
	w := width * maxDim / height
	if w < 1 {
		w = 1
	}
	return w, maxDim
}
