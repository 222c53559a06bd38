// Package imaging re-encodes uploaded files before they reach blob storage.
package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"gallery/config"

	"github.com/nfnt/resize"
)

const jpegQuality = 85

type Encoded struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string
	Extension   string
}

// Prepare decodes an uploaded image, caps its longest edge at
// config.MAX_IMAGE_SIZE (never upscaling), and re-encodes it. PNG input stays
// PNG; every other format becomes JPEG.
func Prepare(data []byte) (*Encoded, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	max := config.MAX_IMAGE_SIZE
	size := img.Bounds().Size()
	if size.X > max || size.Y > max {
		img = resize.Thumbnail(uint(max), uint(max), img, resize.Lanczos3)
		size = img.Bounds().Size()
	}

	result := &Encoded{Width: size.X, Height: size.Y}
	buf := bytes.Buffer{}
	if format == "png" {
		if err = png.Encode(&buf, img); err != nil {
			return nil, err
		}
		result.ContentType = "image/png"
		result.Extension = "png"
	} else {
		if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
		result.ContentType = "image/jpeg"
		result.Extension = "jpg"
	}
	result.Data = buf.Bytes()
	return result, nil
}
