package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImage_AcceptsPNG(t *testing.T) {
	data := encodeTestPNG(t, 4, 4)
	if err := ValidateImage("image/png", data); err != nil {
		t.Fatalf("ValidateImage error: %v", err)
	}
}

func TestValidateImage_RejectsNonImageType(t *testing.T) {
	data := encodeTestPNG(t, 4, 4)
	if err := ValidateImage("application/pdf", data); err == nil {
		t.Fatalf("expected error for non-image declared type")
	}
}

func TestValidateImage_RejectsUndecodablePayload(t *testing.T) {
	if err := ValidateImage("image/png", []byte("definitely not an image")); err == nil {
		t.Fatalf("expected error for undecodable payload")
	}
}

func TestThumbnail_PreservesAspectRatio(t *testing.T) {
	data := encodeTestPNG(t, 200, 100)

	thumb, err := Thumbnail(data, 50)
	if err != nil {
		t.Fatalf("Thumbnail error: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("failed to decode thumbnail: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 50 {
		t.Errorf("expected width 50, got %d", bounds.Dx())
	}
	if bounds.Dy() != 25 {
		t.Errorf("expected height 25 (2:1 aspect), got %d", bounds.Dy())
	}
}

func TestThumbnail_InvalidWidth(t *testing.T) {
	data := encodeTestPNG(t, 10, 10)
	if _, err := Thumbnail(data, 0); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestRenderSVGToPNG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 16 16"><circle cx="8" cy="8" r="6" fill="#e74c3c"/></svg>`)

	out, err := RenderSVGToPNG(svg, 32, 32)
	if err != nil {
		t.Fatalf("RenderSVGToPNG error: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode rendered PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 32 || decoded.Bounds().Dy() != 32 {
		t.Errorf("unexpected dimensions: %v", decoded.Bounds())
	}
}

func TestRenderSVGToPNG_InvalidDimensions(t *testing.T) {
	if _, err := RenderSVGToPNG([]byte("<svg/>"), 0, 10); err == nil {
		t.Fatalf("expected error for invalid dimensions")
	}
}
