// Package dialog shows native file pickers and message boxes.
package dialog

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/san-kum/sigilgen/internal/session"
)

// Zenity implements session.Dialogs with native dialogs.
type Zenity struct{}

var _ session.Dialogs = Zenity{}

// Filters lists the save formats, the one matching defaultName first.
func Filters(defaultName string) zenity.FileFilters {
	filters := zenity.FileFilters{
		{Name: "PNG Image", Patterns: []string{"*.png"}, CaseFold: true},
		{Name: "GIF Image", Patterns: []string{"*.gif"}, CaseFold: true},
		{Name: "JPEG Image", Patterns: []string{"*.jpg", "*.jpeg"}, CaseFold: true},
		{Name: "BMP Image", Patterns: []string{"*.bmp"}, CaseFold: true},
		{Name: "TIFF Image", Patterns: []string{"*.tif", "*.tiff"}, CaseFold: true},
		{Name: "SVG Drawing", Patterns: []string{"*.svg"}, CaseFold: true},
		{Name: "All Files", Patterns: []string{"*"}},
	}
	ext := strings.ToLower(filepath.Ext(defaultName))
	for i, f := range filters {
		for _, p := range f.Patterns {
			if p == "*"+ext && i > 0 {
				filters[0], filters[i] = filters[i], filters[0]
				return filters
			}
		}
	}
	return filters
}

func (Zenity) SavePath(defaultName string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Sigil"),
		zenity.Filename(defaultName),
		zenity.ConfirmOverwrite(),
		Filters(defaultName),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", session.ErrCanceled
	}
	return path, err
}

func (Zenity) Warn(title, msg string) {
	_ = zenity.Warning(msg, zenity.Title(title))
}

func (Zenity) Error(title, msg string) {
	_ = zenity.Error(msg, zenity.Title(title))
}

func (Zenity) Info(title, msg string) {
	_ = zenity.Info(msg, zenity.Title(title))
}
