package server

import (
	"fmt"

	"github.com/thiccmc/renskin"
	"github.com/thiccmc/renskin/internal/pipeline"
)

var (
	placeholderSkin = renskin.Pixel{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}
	placeholderEyes = renskin.Pixel{R: 0x3c, G: 0x3c, B: 0x3c, A: 0xff}
)

// placeholderFace is a neutral grey face with dark eyes.
func placeholderFace() *renskin.Pixmap {
	face := renskin.NewPixmap(renskin.FaceSize, renskin.FaceSize)
	face.Fill(placeholderSkin)
	for _, x := range []int{1, 2, 5, 6} {
		face.SetPixel(x, 4, placeholderEyes)
	}
	return face
}

// renderPlaceholders encodes the placeholder at every accepted scale.
func renderPlaceholders() (map[int][]byte, error) {
	face := placeholderFace()
	out := make(map[int][]byte, len(pipeline.Scales))
	for _, s := range pipeline.Scales {
		big, err := renskin.Upscale(face, s)
		if err != nil {
			return nil, err
		}
		data, err := renskin.EncodeFace(big)
		if err != nil {
			return nil, fmt.Errorf("encode placeholder x%d: %w", s, err)
		}
		out[s] = data
	}
	return out, nil
}
