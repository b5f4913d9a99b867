package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// MaxAvatarDimension bounds the width and height of an uploaded image.
const MaxAvatarDimension = 4096

var (
	ErrUnsupportedImage = errors.New("avatar must be png, jpeg, gif or webp")
	ErrUndecodableImage = errors.New("unable to decode avatar image")
	ErrImageTooLarge    = fmt.Errorf("avatar must be at most %dx%d pixels", MaxAvatarDimension, MaxAvatarDimension)
)

// checkDimensions reads only the image header.
func checkDimensions(raw []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		cfg, err = webp.DecodeConfig(bytes.NewReader(raw))
		if err != nil {
			return ErrUndecodableImage
		}
	}

	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return ErrUndecodableImage
	case cfg.Width > MaxAvatarDimension || cfg.Height > MaxAvatarDimension:
		return ErrImageTooLarge
	}
	return nil
}

// ResizeAvatar decodes raw and scales it onto a size by size canvas with a
// white background. Non-square images are stretched to fill, square ones
// are scaled to fit. The result is PNG encoded.
func ResizeAvatar(raw []byte, size int) ([]byte, error) {
	switch http.DetectContentType(raw) {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
	default:
		return nil, ErrUnsupportedImage
	}

	if err := checkDimensions(raw); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		decoded, webpErr := webp.Decode(bytes.NewReader(raw))
		if webpErr != nil {
			return nil, ErrUndecodableImage
		}
		img = decoded
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrUndecodableImage
	}

	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	stddraw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, stddraw.Src)
	xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), img, bounds, xdraw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// EncodeAvatar resizes raw and returns it as base64 text for storage.
func EncodeAvatar(raw []byte, size int) (string, error) {
	resized, err := ResizeAvatar(raw, size)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(resized), nil
}
