package cli

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
)

// ErrPickCanceled is returned when the user closes the file picker.
var ErrPickCanceled = errors.New("image selection canceled")

// imageFilter lists the formats the OCR engines can read.
var imageFilter = zenity.FileFilters{
	{
		Name: "Images",
		Patterns: []string{
			"*.jpg", "*.jpeg", "*.png", "*.gif", "*.webp", "*.bmp", "*.tif", "*.tiff",
		},
	},
}

// PickImages opens the native file picker for one or more images.
func PickImages() ([]string, error) {
	selected, err := zenity.SelectFileMultiple(
		zenity.Title("Select images to translate"),
		imageFilter,
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil, ErrPickCanceled
		}
		return nil, fmt.Errorf("file picker failed: %w", err)
	}
	log.Info().Int("count", len(selected)).Msg("Images picked via native dialog")
	return selected, nil
}
