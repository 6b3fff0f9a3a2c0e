package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{G: 200, A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestValidate_AcceptsRealImages(t *testing.T) {
	ct, err := Validate(encodePNG(t, 4, 4))
	if err != nil {
		t.Fatalf("png rejected: %v", err)
	}
	if ct != "image/png" {
		t.Fatalf("expected image/png, got %s", ct)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	ct, err = Validate(buf.Bytes())
	if err != nil {
		t.Fatalf("jpeg rejected: %v", err)
	}
	if ct != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %s", ct)
	}
}

func TestValidate_RejectsDisguisedPayloads(t *testing.T) {
	cases := [][]byte{
		[]byte("#!/bin/sh\nrm -rf /\n"),
		[]byte("<html><script>alert(1)</script></html>"),
		{},
		// PNG magic bytes with no actual image behind them.
		{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00},
	}

	for i, payload := range cases {
		if _, err := Validate(payload); err == nil {
			t.Errorf("case %d: expected rejection", i)
		}
	}
}

func TestThumbnail_DownscalesToJPEG(t *testing.T) {
	thumb, err := Thumbnail(encodePNG(t, 1280, 960))
	if err != nil {
		t.Fatalf("thumbnail failed: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected jpeg thumbnail, got %s", format)
	}
	if cfg.Width > 320 || cfg.Height > 320 {
		t.Fatalf("thumbnail not bounded: %dx%d", cfg.Width, cfg.Height)
	}
}
