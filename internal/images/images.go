package images

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Registered decoders define the upload allowlist: jpeg, png, webp.
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const thumbnailWidth = 320

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// Validate decodes the image header and reports the real content type. File
// extensions and client-sent MIME types are not trusted; anything that does
// not decode as jpeg, png or webp is rejected.
func Validate(data []byte) (contentType string, err error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not a decodable image: %w", err)
	}

	ct, ok := contentTypes[format]
	if !ok {
		return "", fmt.Errorf("unsupported image format %q", format)
	}
	return ct, nil
}

// Thumbnail scales the image down to a fixed width preserving aspect ratio
// and re-encodes it as jpeg.
func Thumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	if b.Dx() <= thumbnailWidth {
		var out bytes.Buffer
		if err := jpeg.Encode(&out, src, &jpeg.Options{Quality: 80}); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	}

	h := b.Dy() * thumbnailWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, thumbnailWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
