package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/sdfbake"
	"github.com/gogpu/sdfbake/glyph"
	"github.com/gogpu/sdfbake/internal/batch"
	sdfimage "github.com/gogpu/sdfbake/internal/image"
	"github.com/gogpu/sdfbake/raster"
	"github.com/gogpu/sdfbake/shape"
	"github.com/gogpu/sdfbake/svg"
)

// bake produces the padded source for t, runs the distance field search
// and writes the result.
func bake(t batch.Task, o *options) (*sdfbake.Result, error) {
	cfg := t.Config
	img, aspect, err := loadSource(t, o, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Aspect = aspect

	if t.SaveSource != "" {
		if err := sdfimage.Save(t.SaveSource, img); err != nil {
			return nil, fmt.Errorf("save source: %w", err)
		}
		sdfbake.Logger().Info("saved source", "path", t.SaveSource,
			"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	}

	src, err := sdfbake.NewSourceBuffer(img, cfg.Radius)
	if err != nil {
		return nil, err
	}
	res, err := sdfbake.Bake(src, cfg)
	if err != nil {
		return nil, err
	}
	if err := sdfimage.Save(t.Output, res.Field.Gray()); err != nil {
		return nil, err
	}
	return res, nil
}

// loadSource returns the source raster padded by cfg.Radius and the
// intrinsic aspect ratio of the artwork, or 0 when the raster itself
// defines it.
func loadSource(t batch.Task, o *options, cfg sdfbake.Config) (*image.Gray, float64, error) {
	if t.Input == "" {
		data, err := os.ReadFile(o.fontPath)
		if err != nil {
			return nil, 0, fmt.Errorf("read font: %w", err)
		}
		opts := glyph.DefaultOptions()
		opts.Size = o.fontSize
		s, err := glyph.Layout(data, o.text, opts)
		if err != nil {
			return nil, 0, err
		}
		return rasterizeShape(s, cfg)
	}

	if sdfimage.IsRaster(t.Input) {
		img, err := sdfimage.Load(t.Input)
		if err != nil {
			return nil, 0, err
		}
		return sdfimage.Pad(img, cfg.Radius, raster.Background), 0, nil
	}

	if ext := strings.ToLower(filepath.Ext(t.Input)); ext != ".svg" {
		return nil, 0, fmt.Errorf("%w: input %q", sdfimage.ErrUnsupportedFormat, ext)
	}
	s, err := svg.Load(t.Input)
	if err != nil {
		return nil, 0, err
	}
	return rasterizeShape(s, cfg)
}

func rasterizeShape(s *shape.Shape, cfg sdfbake.Config) (*image.Gray, float64, error) {
	aspect := s.Aspect()
	w, h := cfg.SourceDims(aspect)
	sdfbake.Logger().Debug("rasterizing", "fills", len(s.Fills), "width", w, "height", h)

	img, err := raster.Rasterize(s, w, h, cfg.Radius)
	if err != nil {
		return nil, 0, err
	}
	return img, aspect, nil
}

// taskLabel names a task in error messages.
func taskLabel(t batch.Task) string {
	if t.Input == "" {
		return t.Output
	}
	return t.Input
}
