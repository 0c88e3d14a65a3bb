// Package imaging prepares photos for the image hosting repository: JPEG
// re-encoding, size-bounded smart compression and unique file naming.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
	"time"

	// registered decoders for the formats Telegram delivers
	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// Options bound the compression pipeline.
type Options struct {
	// MaxWidth is the widest a smart-compressed image may be.
	MaxWidth int
	// MaxHeight is the tallest a smart-compressed image may be.
	MaxHeight int
	// Quality is the initial JPEG quality for smart compression, 0..1.
	Quality float64
	// TargetSize is the byte size smart compression aims to get under.
	TargetSize int
	// CompressionThreshold is the input size above which smart compression
	// kicks in; smaller inputs are only re-encoded.
	CompressionThreshold int
}

// Processor compresses images according to its options. The zero value is not
// usable; construct with New.
type Processor struct {
	options Options
}

// New creates a Processor with the given options.
func New(options Options) *Processor {
	return &Processor{options: options}
}

// Compress converts the input image to JPEG. Inputs below the compression
// threshold are re-encoded at quality 95 without resizing; larger inputs are
// scaled into the configured bounds and re-encoded at descending quality until
// they fit the target size.
func (p *Processor) Compress(data []byte) ([]byte, error) {
	if len(data) < p.options.CompressionThreshold {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("could not decode image: %w", err)
		}

		return encodeJPEG(img, 95)
	}

	return p.smartCompress(data)
}

// smartCompress scales the image into MaxWidth x MaxHeight preserving aspect
// ratio, then walks the JPEG quality down in steps of ten until the encoded
// size fits TargetSize. The loop exits early when a step shrinks the output by
// less than five percent.
func (p *Processor) smartCompress(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	img = p.scaleToFit(img)

	quality := int(p.options.Quality * 100)
	out, err := encodeJPEG(img, quality)
	if err != nil {
		return nil, err
	}

	for len(out) > p.options.TargetSize && quality > 10 {
		prevSize := len(out)
		quality -= 10

		out, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}

		// another step is not worth it once returns diminish
		if len(out) > prevSize*95/100 {
			break
		}
	}

	return out, nil
}

// scaleToFit shrinks img to fit within the configured bounds, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func (p *Processor) scaleToFit(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > p.options.MaxWidth {
		h = h * p.options.MaxWidth / w
		w = p.options.MaxWidth
	}
	if h > p.options.MaxHeight {
		w = w * p.options.MaxHeight / h
		h = p.options.MaxHeight
	}
	if w == bounds.Dx() && h == bounds.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	return dst
}

// encodeJPEG renders img as JPEG at the given quality.
func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("could not encode JPEG: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename generates a unique image file name carrying the upload time in
// unix milliseconds plus a short random discriminator.
func Filename(ext string) string {
	if ext == "" {
		ext = ".jpg"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return fmt.Sprintf("img-%d-%s%s", time.Now().UnixMilli(), short, ext)
}
