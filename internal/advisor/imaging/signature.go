// Package imaging reduces a food photo to the average color the matcher consumes.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	logx "github.com/smart-spoon-core/advisor/pkg/logger"
)

const (
	DefaultSampleSize = 100
	DefaultMaxBytes   = 20 << 20
	DefaultMaxPixels  = 50_000_000
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image file extension")
	ErrEmptyImage        = errors.New("image has no pixels")
	ErrTooLarge          = errors.New("image file exceeds size limit")
	ErrTooManyPixels     = errors.New("image dimensions exceed pixel limit")
)

// allowedExt mirrors what the upload step accepts.
var allowedExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

type options struct {
	size      int
	maxBytes  int64
	maxPixels int64
}

type Option func(*options)

// WithSampleSize sets the edge of the square the image is resized to before averaging.
func WithSampleSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.size = n
		}
	}
}

// WithMaxBytes caps how large an image file may be.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// WithMaxPixels caps width*height as declared in the image header.
func WithMaxPixels(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPixels = n
		}
	}
}

func resolve(opts []Option) options {
	o := options{size: DefaultSampleSize, maxBytes: DefaultMaxBytes, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Signature decodes an image, resizes it to a square sample and returns the
// mean of each 8-bit color channel. Alpha is ignored. The header is checked
// against the pixel limit before any pixel data is decoded.
func Signature(r io.Reader, opts ...Option) (model.ColorSignature, error) {
	o := resolve(opts)

	data, err := io.ReadAll(io.LimitReader(r, o.maxBytes+1))
	if err != nil {
		return model.ColorSignature{}, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > o.maxBytes {
		return model.ColorSignature{}, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, o.maxBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.ColorSignature{}, fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return model.ColorSignature{}, ErrEmptyImage
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > o.maxPixels {
		return model.ColorSignature{}, fmt.Errorf("%w: %dx%d > %d pixels", ErrTooManyPixels, cfg.Width, cfg.Height, o.maxPixels)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return model.ColorSignature{}, fmt.Errorf("decode image: %w", err)
	}
	if src.Bounds().Empty() {
		return model.ColorSignature{}, ErrEmptyImage
	}

	dst := image.NewNRGBA(image.Rect(0, 0, o.size, o.size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	sig := average(dst)
	logx.Debug().
		Str("format", format).
		Int("width", src.Bounds().Dx()).
		Int("height", src.Bounds().Dy()).
		Floats64("signature", []float64{sig.R, sig.G, sig.B}).
		Msg("computed color signature")
	return sig, nil
}

// SignatureFromFile opens a .png, .jpg or .jpeg file and computes its signature.
func SignatureFromFile(path string, opts ...Option) (model.ColorSignature, error) {
	o := resolve(opts)

	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExt[ext] {
		return model.ColorSignature{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return model.ColorSignature{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return model.ColorSignature{}, fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > o.maxBytes {
		return model.ColorSignature{}, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, info.Size(), o.maxBytes)
	}

	return Signature(f, opts...)
}

func average(img *image.NRGBA) model.ColorSignature {
	var r, g, b float64
	b0 := img.Bounds()
	for y := b0.Min.Y; y < b0.Max.Y; y++ {
		for x := b0.Min.X; x < b0.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			r += float64(c.R)
			g += float64(c.G)
			b += float64(c.B)
		}
	}
	n := float64(b0.Dx() * b0.Dy())
	return model.ColorSignature{R: r / n, G: g / n, B: b / n}
}
