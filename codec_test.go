package renskin

import (
	"bytes"
	"errors"
	"testing"

	skinimage "github.com/thiccmc/renskin/internal/image"
)

func TestEncodeFaceRoundTrip(t *testing.T) {
	face := gradientFace()
	data, err := EncodeFace(face)
	if err != nil {
		t.Fatalf("EncodeFace() error = %v", err)
	}
	got, err := DecodePNG(data)
	if err != nil {
		t.Fatalf("DecodePNG() error = %v", err)
	}
	if !bytes.Equal(got.Data(), face.Data()) {
		t.Error("decoded face differs")
	}
}

func TestEncodeFaceDeterministic(t *testing.T) {
	face := gradientFace()
	a, err := EncodeFace(face)
	if err != nil {
		t.Fatalf("EncodeFace() error = %v", err)
	}
	b, err := EncodeFace(face.Clone())
	if err != nil {
		t.Fatalf("EncodeFace() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("EncodeFace is not deterministic")
	}
}

func TestDecodeAtlasRoundTrip(t *testing.T) {
	atlas := randomAtlas(5)
	data, err := EncodePNG(atlas)
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	got, err := DecodeAtlas(data)
	if err != nil {
		t.Fatalf("DecodeAtlas() error = %v", err)
	}
	if !bytes.Equal(got.Data(), atlas.Data()) {
		t.Error("decoded atlas differs")
	}
}

func TestDecodeAtlasInvalid(t *testing.T) {
	_, err := DecodeAtlas([]byte("<html>not found</html>"))
	if !errors.Is(err, skinimage.ErrUnsupportedFormat) {
		t.Errorf("DecodeAtlas() error = %v, want ErrUnsupportedFormat", err)
	}
}
