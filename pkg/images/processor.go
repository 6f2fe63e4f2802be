package images

import (
	"bytes"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/logger"
)

// Options controls upload preprocessing.
type Options struct {
	MaxWidth int // downscale wider images to this width, 0 disables
	Quality  int // webp/jpeg quality, defaults to 85
}

// Process decodes an image, downscales it if it exceeds MaxWidth and
// re-encodes it as WebP (JPEG fallback). Returns the encoded bytes and the
// resulting content type. Run on every image before it is attached to a
// multipart upload so review/category photos don't ship at camera resolution.
func Process(r io.Reader, filename string, opts Options) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	logger.Debug().Str("file", filename).Str("format", format).Msg("Processing upload image")

	if opts.Quality <= 0 {
		opts.Quality = 85
	}

	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  float32(opts.Quality),
	})
	if err != nil {
		// If WebP fails, fall back to JPEG
		logger.Warn().Err(err).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}

// IsImage verifies simple content type
func IsImage(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png" || contentType == "image/webp" || contentType == "image/jpg"
}
