package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"essaybot/internal/imaging"
)

func defaultOptions() imaging.Options {
	return imaging.Options{
		MaxWidth:             1920,
		MaxHeight:            1080,
		Quality:              0.85,
		TargetSize:           5 * 1024 * 1024,
		CompressionThreshold: 10 * 1024 * 1024,
	}
}

// noisyImage produces an image that compresses poorly, so size bounds are
// actually exercised.
func noisyImage(w, h int) image.Image {
	rng := rand.New(rand.NewPCG(1, 2))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.UintN(256)),
				G: uint8(rng.UintN(256)),
				B: uint8(rng.UintN(256)),
				A: 255,
			})
		}
	}

	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	return img
}

func TestCompress_smallInputReencodedOnly(t *testing.T) {
	p := imaging.New(defaultOptions())

	in := encodePNG(t, noisyImage(640, 480))
	out, err := p.Compress(in)
	require.NoError(t, err)

	// re-encode keeps dimensions
	img := decodeJPEG(t, out)
	require.Equal(t, 640, img.Bounds().Dx())
	require.Equal(t, 480, img.Bounds().Dy())
}

func TestCompress_largeInputScaledIntoBounds(t *testing.T) {
	opts := defaultOptions()
	// force the smart path without a 10 MB fixture
	opts.CompressionThreshold = 1024
	opts.TargetSize = 256 * 1024
	p := imaging.New(opts)

	in := encodePNG(t, noisyImage(3000, 2000))
	out, err := p.Compress(in)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	require.LessOrEqual(t, img.Bounds().Dx(), opts.MaxWidth)
	require.LessOrEqual(t, img.Bounds().Dy(), opts.MaxHeight)
	// 3000x2000 hits the width bound first, then the height bound
	require.Equal(t, 1080, img.Bounds().Dy())
}

func TestCompress_smallImageNotUpscaled(t *testing.T) {
	opts := defaultOptions()
	opts.CompressionThreshold = 1024
	p := imaging.New(opts)

	in := encodePNG(t, noisyImage(800, 600))
	out, err := p.Compress(in)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	require.Equal(t, 800, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())
}

func TestCompress_garbageInput(t *testing.T) {
	p := imaging.New(defaultOptions())

	_, err := p.Compress([]byte("not an image"))
	require.Error(t, err)
}

func TestFilename(t *testing.T) {
	re := regexp.MustCompile(`^img-\d{13}-[0-9a-f]{8}\.jpg$`)

	name := imaging.Filename(".jpg")
	require.Regexp(t, re, name)

	// default and dot-less extensions behave the same
	require.Regexp(t, re, imaging.Filename(""))
	require.Regexp(t, regexp.MustCompile(`\.webp$`), imaging.Filename("webp"))

	// names must be unique across calls
	require.NotEqual(t, name, imaging.Filename(".jpg"))
}
