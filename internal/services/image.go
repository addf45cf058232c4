package services

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const msgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

// maxImagePixels bounds the canvas a header may declare before the image
// is fully decoded.
const maxImagePixels = 50_000_000

var imageContentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// DetectImage checks that data fully decodes as a supported image and returns
// the file extension and content type to store it with. Truncated or
// corrupted payloads with a valid header are rejected.
func DetectImage(data []byte) (ext, contentType string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", "", NewValidationError("image", msgInvalidImage)
	}
	contentType, ok := imageContentTypes[format]
	if !ok {
		return "", "", NewValidationError("image", msgInvalidImage)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxImagePixels {
		return "", "", NewValidationError("image", msgInvalidImage)
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", "", NewValidationError("image", msgInvalidImage)
	}
	if format == "jpeg" {
		format = "jpg"
	}
	return format, contentType, nil
}
