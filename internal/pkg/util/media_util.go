package util

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const (
	// MaxImageWidth / MaxImageHeight 帖子配图的最大尺寸，超出按比例缩小
	MaxImageWidth  = 960
	MaxImageHeight = 339
	// MaxImageBytes 上传大小上限
	MaxImageBytes = 5 << 20
)

var (
	ErrNotImage      = errors.New("not a valid image")
	ErrImageTooLarge = errors.New("image too large")
)

// ProcessedImage 归一化后的图片
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// ProcessImage 解码上传的图片，按 EXIF 方向旋正并缩放到最大尺寸内后重新编码
func ProcessImage(r io.Reader) (*ProcessedImage, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(raw) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrNotImage
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrNotImage
	}
	img = imaging.Fit(img, MaxImageWidth, MaxImageHeight, imaging.Lanczos)

	out := &ProcessedImage{}
	var encFormat imaging.Format
	switch format {
	case "png":
		encFormat, out.ContentType, out.Ext = imaging.PNG, "image/png", ".png"
	case "gif":
		encFormat, out.ContentType, out.Ext = imaging.GIF, "image/gif", ".gif"
	default:
		encFormat, out.ContentType, out.Ext = imaging.JPEG, "image/jpeg", ".jpg"
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, encFormat, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	out.Data = buf.Bytes()
	out.Width = bounds.Dx()
	out.Height = bounds.Dy()
	return out, nil
}
