// Package renderer draws the world with raylib.
package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/assets"
)

// TextureCache caches GPU textures by file path.
type TextureCache = assets.Cache[rl.Texture2D]

// NewTextureCache creates a texture cache that loads from disk.
// The window must be open before the first Load.
func NewTextureCache() *TextureCache {
	return assets.NewCache(LoadTexture, rl.UnloadTexture)
}

// LoadTexture loads an image file into a GPU texture.
func LoadTexture(path string) (rl.Texture2D, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rl.Texture2D{}, fmt.Errorf("%s: %w", path, assets.ErrNotFound)
		}
		return rl.Texture2D{}, err
	}

	tex := rl.LoadTexture(path)
	if !rl.IsTextureValid(tex) {
		return rl.Texture2D{}, fmt.Errorf("%s: %w", path, assets.ErrInvalid)
	}

	slog.Info("texture loaded", "path", path, "width", tex.Width, "height", tex.Height)
	return tex, nil
}

// LoadFont loads a TTF font at the given pixel size.
func LoadFont(path string, size int) (rl.Font, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rl.Font{}, fmt.Errorf("%s: %w", path, assets.ErrNotFound)
		}
		return rl.Font{}, err
	}

	font := rl.LoadFontEx(path, int32(size), nil)
	if !rl.IsFontValid(font) {
		return rl.Font{}, fmt.Errorf("%s: %w", path, assets.ErrInvalid)
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)

	slog.Info("font loaded", "path", path, "size", size)
	return font, nil
}
