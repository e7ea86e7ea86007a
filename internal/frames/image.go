package frames

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Thumbnail dimensions match the 16:9 player embed the site uses.
const (
	thumbWidth  = 800
	thumbHeight = 450
)

var marginColor = color.Black

// AddMargin grows the image at path by the given margins, filling the new
// area with black, and rewrites the file in place.
func AddMargin(path string, top, right, bottom, left int) error {
	src, err := decode(path)
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()+left+right, bounds.Dy()+top+bottom))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(marginColor), image.Point{}, draw.Src)
	draw.Draw(dst, bounds.Add(image.Pt(left, top)), src, bounds.Min, draw.Src)

	return encodeJPEG(path, dst)
}

// Thumbnail renders latest.png in the store from the most recently
// modified frame, scaled down to 800x450.
func (s *Store) Thumbnail() error {
	files, err := filepath.Glob(filepath.Join(s.Dir, "enlil_*.jpg"))
	if err != nil {
		return fmt.Errorf("failed to list frames: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no frames available for thumbnail")
	}

	newest := ""
	var newestMod int64
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest, newestMod = file, mod
		}
	}
	if newest == "" {
		return fmt.Errorf("no frames available for thumbnail")
	}

	src, err := decode(newest)
	if err != nil {
		return err
	}

	dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	latest := filepath.Join(s.Dir, "latest.png")
	tmp := latest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail: %w", err)
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, latest); err != nil {
		return fmt.Errorf("failed to publish thumbnail: %w", err)
	}
	slog.Info("thumbnail updated", "file", latest, "source", filepath.Base(newest))
	return nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

func encodeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to rewrite image %s: %w", path, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image %s: %w", path, err)
	}
	return f.Close()
}
