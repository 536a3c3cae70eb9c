package renskin

import (
	"fmt"

	skinimage "github.com/thiccmc/renskin/internal/image"
)

// DecodeAtlas decodes an encoded skin texture (PNG, WebP or BMP).
// Geometry is not validated here; Extract reports atlases that are too narrow.
func DecodeAtlas(data []byte) (*Pixmap, error) {
	img, _, err := skinimage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode atlas: %w", err)
	}
	return FromImage(img), nil
}

// DecodePNG decodes a previously encoded face or scaled face.
func DecodePNG(data []byte) (*Pixmap, error) {
	img, _, err := skinimage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode face: %w", err)
	}
	return FromImage(img), nil
}

// EncodeFace encodes a face as a 3-channel PNG. Alpha is dropped here, not
// during composition.
func EncodeFace(face *Pixmap) ([]byte, error) {
	data, err := skinimage.EncodeToBytes(face.ToNRGBA(), true)
	if err != nil {
		return nil, fmt.Errorf("encode face: %w", err)
	}
	return data, nil
}

// EncodePNG encodes p as a 4-channel PNG.
func EncodePNG(p *Pixmap) ([]byte, error) {
	data, err := skinimage.EncodeToBytes(p.ToNRGBA(), false)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return data, nil
}
