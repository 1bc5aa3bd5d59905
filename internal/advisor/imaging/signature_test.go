package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
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

func TestSignatureOfSolidImage(t *testing.T) {
	t.Parallel()

	data := encodePNG(t, solid(40, 30, color.NRGBA{R: 180, G: 50, B: 50, A: 255}))

	sig, err := Signature(bytes.NewReader(data))
	require.NoError(t, err)
	assert.InDelta(t, 180, sig.R, 1)
	assert.InDelta(t, 50, sig.G, 1)
	assert.InDelta(t, 50, sig.B, 1)
}

func TestSignatureAveragesHalves(t *testing.T) {
	t.Parallel()

	img := solid(200, 200, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 0; y < 200; y++ {
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
		}
	}

	sig, err := Signature(bytes.NewReader(encodePNG(t, img)), WithSampleSize(50))
	require.NoError(t, err)
	assert.InDelta(t, 127.5, sig.R, 4)
	assert.InDelta(t, sig.R, sig.G, 0.001)
	assert.InDelta(t, sig.R, sig.B, 0.001)
}

func TestSignatureRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Signature(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestSignatureFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pic := solid(16, 16, color.NRGBA{R: 240, G: 240, B: 240, A: 255})

	pngPath := filepath.Join(dir, "idli.PNG")
	require.NoError(t, os.WriteFile(pngPath, encodePNG(t, pic), 0o600))

	sig, err := SignatureFromFile(pngPath)
	require.NoError(t, err)
	assert.InDelta(t, 240, sig.R, 1)

	var jbuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jbuf, pic, &jpeg.Options{Quality: 95}))
	jpgPath := filepath.Join(dir, "idli.jpeg")
	require.NoError(t, os.WriteFile(jpgPath, jbuf.Bytes(), 0o600))

	sig, err = SignatureFromFile(jpgPath)
	require.NoError(t, err)
	assert.InDelta(t, 240, sig.G, 3)
}

func TestSignatureFromFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "dish.png")
	require.NoError(t, os.WriteFile(good, encodePNG(t, solid(8, 8, color.NRGBA{A: 255})), 0o600))
	broken := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(broken, []byte("nope"), 0o600))

	_, err := SignatureFromFile(filepath.Join(dir, "dish.bmp"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = SignatureFromFile(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = SignatureFromFile(good, WithMaxBytes(10))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = SignatureFromFile(broken)
	assert.Error(t, err)
}

// hugePNGHeader returns a valid 1x1 PNG whose IHDR claims w x h pixels.
func hugePNGHeader(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := encodePNG(t, solid(1, 1, color.NRGBA{A: 255}))
	require.Equal(t, "IHDR", string(data[12:16]))
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestSignatureRejectsOversizedDimensions(t *testing.T) {
	t.Parallel()

	_, err := Signature(bytes.NewReader(hugePNGHeader(t, 30000, 30000)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestSignatureMaxPixels(t *testing.T) {
	t.Parallel()

	red := color.NRGBA{R: 200, A: 255}

	_, err := Signature(bytes.NewReader(encodePNG(t, solid(20, 20, red))), WithMaxPixels(100))
	assert.ErrorIs(t, err, ErrTooManyPixels)

	sig, err := Signature(bytes.NewReader(encodePNG(t, solid(10, 10, red))), WithMaxPixels(100))
	require.NoError(t, err)
	assert.InDelta(t, 200, sig.R, 1)
}

func TestSignatureReaderSizeLimit(t *testing.T) {
	t.Parallel()

	data := encodePNG(t, solid(8, 8, color.NRGBA{A: 255}))
	_, err := Signature(bytes.NewReader(data), WithMaxBytes(int64(len(data)-1)))
	assert.ErrorIs(t, err, ErrTooLarge)
}
