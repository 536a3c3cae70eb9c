// Package profile resolves player identities to skin textures.
package profile

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no record exists for an identity.
	ErrNotFound = errors.New("profile: not found")

	// ErrMalformed is returned when a stored texture value cannot be parsed.
	ErrMalformed = errors.New("profile: malformed texture value")
)

// Profile is the result of a lookup.
type Profile struct {
	// ID is a stable identifier that survives renames. It keys the raw
	// texture tier.
	ID string

	// TextureURL is where the skin atlas can be downloaded.
	TextureURL string
}

// Lookup resolves an identity to a profile.
//
// Implementations return ErrNotFound (possibly wrapped) when no record
// exists; any other error is an upstream failure.
type Lookup interface {
	Lookup(ctx context.Context, identity string) (Profile, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, identity string) (Profile, error)

// Lookup implements Lookup.
func (f LookupFunc) Lookup(ctx context.Context, identity string) (Profile, error) {
	return f(ctx, identity)
}

// textureValue is the decoded JSON of a textures property:
//
//	{"profileId": "...", "textures": {"SKIN": {"url": "..."}}}
type textureValue struct {
	ProfileID string `json:"profileId"`
	Textures  struct {
		Skin struct {
			URL string `json:"url"`
		} `json:"SKIN"`
	} `json:"textures"`
}

// ParseTextureValue decodes a base64-encoded textures property.
func ParseTextureValue(value string) (Profile, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return Profile{}, fmt.Errorf("%w: base64: %v", ErrMalformed, err)
	}

	var tv textureValue
	if err := json.Unmarshal(raw, &tv); err != nil {
		return Profile{}, fmt.Errorf("%w: json: %v", ErrMalformed, err)
	}

	p := Profile{
		ID:         strings.TrimSpace(tv.ProfileID),
		TextureURL: strings.TrimSpace(tv.Textures.Skin.URL),
	}
	if p.ID == "" {
		return Profile{}, fmt.Errorf("%w: missing profileId", ErrMalformed)
	}
	if p.TextureURL == "" {
		return Profile{}, fmt.Errorf("%w: missing SKIN url", ErrMalformed)
	}
	return p, nil
}

// EncodeTextureValue is the inverse of ParseTextureValue.
func EncodeTextureValue(p Profile) string {
	var tv textureValue
	tv.ProfileID = p.ID
	tv.Textures.Skin.URL = p.TextureURL
	raw, _ := json.Marshal(tv) // plain strings cannot fail to marshal
	return base64.StdEncoding.EncodeToString(raw)
}
