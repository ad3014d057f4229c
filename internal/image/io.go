// Package image loads and saves the single-channel images the baker reads
// and writes.
//
// Decoding accepts PNG, JPEG, BMP and TIFF and always yields an *image.Gray;
// transparent pixels are composited over white first. Encoding picks a
// lossless format from the file extension.
package image

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG for Decode
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Format is an output encoding.
type Format int

const (
	// FormatPNG is PNG at best compression.
	FormatPNG Format = iota

	// FormatBMP is an 8-bit paletted BMP.
	FormatBMP

	// FormatTIFF is a Deflate-compressed TIFF.
	FormatTIFF
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatBMP:
		return "BMP"
	case FormatTIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// FormatFromPath selects the output format from the file extension. Paths
// without an extension are written as PNG.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", "":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsRaster reports whether path names an image the decoder can read, as
// opposed to a vector document.
func IsRaster(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp", ".tif", ".tiff", ".jpg", ".jpeg":
		return true
	}
	return false
}

// Load reads the image at path as gray.
func Load(path string) (*image.Gray, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from the given reader, auto-detecting the format,
// and converts it to gray.
func Decode(r io.Reader) (*image.Gray, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		return nil, ErrEmptyData
	}

	img, _, err := image.Decode(br)
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return ToGray(img), nil
}

// Save writes img to path in the format chosen by FormatFromPath.
func Save(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, img, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("image: write file: %w", err)
	}
	return f.Close()
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}

// ToGray converts img to an *image.Gray with bounds starting at the origin.
// Translucent pixels are composited over white.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}

	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Pad returns a copy of img surrounded by padding pixels of gray level bg
// on every side.
func Pad(img *image.Gray, padding int, bg uint8) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()+2*padding, b.Dy()+2*padding))
	if bg != 0 {
		for i := range dst.Pix {
			dst.Pix[i] = bg
		}
	}
	for y := range b.Dy() {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):][:b.Dx()]
		copy(dst.Pix[dst.PixOffset(padding, padding+y):], src)
	}
	return dst
}
