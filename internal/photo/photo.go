// Package photo turns an uploaded image into the opaque data URL stored on a
// document.
package photo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// MaxBytes caps accepted uploads
const MaxBytes = 5 << 20

var mediaTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// DecodeError reports a payload that is not a usable image. The document is
// left untouched when it is returned.
type DecodeError struct {
	Source string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("could not read image %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("could not read image %s", e.Source)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// FromFile reads path and wraps it with FromBytes
func FromFile(path, cropMeta string) (*types.Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Source: filepath.Base(path), Cause: err}
	}
	photo, err := FromBytes(data, cropMeta)
	if err != nil {
		if decodeErr, ok := err.(*DecodeError); ok {
			decodeErr.Source = filepath.Base(path)
		}
		return nil, err
	}
	return photo, nil
}

// FromBytes checks that data holds a JPEG, PNG or GIF image and returns it as
// a visible photo with a base64 data URL. cropMeta is stored as given.
func FromBytes(data []byte, cropMeta string) (*types.Photo, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Source: "upload", Cause: fmt.Errorf("empty payload")}
	}
	if len(data) > MaxBytes {
		return nil, &DecodeError{Source: "upload", Cause: fmt.Errorf("payload exceeds %d bytes", MaxBytes)}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Source: "upload", Cause: err}
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, &DecodeError{Source: "upload", Cause: fmt.Errorf("image has no pixels")}
	}
	mediaType, ok := mediaTypes[format]
	if !ok {
		return nil, &DecodeError{Source: "upload", Cause: fmt.Errorf("unsupported format %s", format)}
	}

	return &types.Photo{
		Src:      "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data),
		CropMeta: strings.TrimSpace(cropMeta),
		Visible:  true,
	}, nil
}

// Apply sets photo on doc and turns the photo flag on. A nil photo clears it.
func Apply(doc types.Document, photo *types.Photo) types.Document {
	out := doc.Clone()
	if photo == nil {
		out.Photo = nil
		out.ShowPhoto = false
		return out
	}
	p := *photo
	out.Photo = &p
	out.ShowPhoto = true
	return out
}
