package format

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"

	"rememberit/internal/services"
)

// minImageDimension stops the downscale loop; below this the image is
// unreadable anyway and the input is rejected instead.
const minImageDimension = 64

// FormatImageFile loads an image from disk and embeds it as a data URI.
func (f *Formatter) FormatImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "format", "image", fmt.Sprintf("read %s", path), err)
	}
	return f.FormatImageBytes(data)
}

// FormatImageBytes decodes encoded image bytes and embeds them as a data URI.
func (f *Formatter) FormatImageBytes(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "format", "image", "decode image", err)
	}
	return f.FormatImage(img)
}

// FormatImage re-encodes an image as PNG and embeds it in an <img> data URI.
// Images past the byte limit are halved repeatedly; when even the smallest
// readable size does not fit, the call fails with ErrImageTooLarge.
func (f *Formatter) FormatImage(img image.Image) (string, error) {
	encoded, err := encodePNG(img)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "format", "image", "encode png", err)
	}

	for int64(len(encoded)) > f.maxImageBytes {
		bounds := img.Bounds()
		width, height := bounds.Dx()/2, bounds.Dy()/2
		if width < minImageDimension || height < minImageDimension {
			return "", services.Wrap(services.ErrImageTooLarge, "format", "image",
				fmt.Sprintf("encoded size %d exceeds limit %d", len(encoded), f.maxImageBytes), nil)
		}
		img = downscale(img, width, height)
		if encoded, err = encodePNG(img); err != nil {
			return "", services.Wrap(services.ErrValidation, "format", "image", "encode png", err)
		}
	}

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encoded)
	return fmt.Sprintf(`<img data-ri-type=%q src=%q style="max-width:100%%;border-radius:12px;"/>`,
		TypeImage, uri), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func downscale(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
