package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ValidateImage checks that an upload is usable: the declared content type must
// indicate an image and the payload must decode with one of the registered formats.
func ValidateImage(declaredType string, data []byte) error {
	if !strings.HasPrefix(strings.ToLower(declaredType), "image/") {
		return fmt.Errorf("declared type %q is not an image", declaredType)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("payload is not a decodable image: %w", err)
	}
	return nil
}

// Thumbnail scales an image to the target width, preserving aspect ratio, and encodes
// it as PNG. Nearest-neighbor sampling keeps it cheap for small history thumbnails.
func Thumbnail(data []byte, targetWidth int) ([]byte, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", targetWidth)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()
	if originalWidth == 0 || originalHeight == 0 {
		return nil, fmt.Errorf("image has zero dimension: %dx%d", originalWidth, originalHeight)
	}

	aspectRatio := float64(originalWidth) / float64(originalHeight)
	targetHeight := int(float64(targetWidth) / aspectRatio)
	if targetHeight < 1 {
		targetHeight = 1
	}

	slog.Debug("Thumbnail: scaling image",
		"format", format,
		"original_width", originalWidth,
		"original_height", originalHeight,
		"target_width", targetWidth,
		"target_height", targetHeight)

	target := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	for y := 0; y < targetHeight; y++ {
		for x := 0; x < targetWidth; x++ {
			srcX := int(float64(x) * float64(originalWidth) / float64(targetWidth))
			srcY := int(float64(y) * float64(originalHeight) / float64(targetHeight))
			if srcX >= originalWidth {
				srcX = originalWidth - 1
			}
			if srcY >= originalHeight {
				srcY = originalHeight - 1
			}
			target.Set(x, y, img.At(srcX, srcY))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, target); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVGToPNG rasterizes an SVG byte slice into a PNG with the given dimensions.
func RenderSVGToPNG(svgData []byte, targetW, targetH int) ([]byte, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("invalid target dimensions for SVG rendering: %dx%d", targetW, targetH)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(targetW), float64(targetH))

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < targetH; y++ {
		for x := 0; x < targetW; x++ {
			dst.SetRGBA(x, y, white)
		}
	}

	scanner := rasterx.NewScannerGV(targetW, targetH, dst, dst.Bounds())
	dasher := rasterx.NewDasher(targetW, targetH, scanner)
	icon.Draw(dasher, 1.0)

	var buf bytes.Buffer
	buf.Grow(targetW * targetH)
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode rendered SVG as PNG: %w", err)
	}
	return buf.Bytes(), nil
}
