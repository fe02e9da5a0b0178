package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path"
	"strings"
)

// Signature sources.
const (
	SourceDraw   = "draw"
	SourceUpload = "upload"
)

// ErrUnsupportedType is returned for uploads that are not PNG or JPEG.
var ErrUnsupportedType = errors.New("signature: unsupported image type")

// Meta describes where a signature came from and its pixel size. Width and
// Height are zero when the image could not be inspected.
type Meta struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Signature holds raw image bytes together with their metadata.
type Signature struct {
	Data []byte
	Meta Meta
}

// Empty reports whether no image bytes are present.
func (s *Signature) Empty() bool {
	return s == nil || len(s.Data) == 0
}

var allowedExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

var allowedContentTypes = map[string]bool{"image/png": true, "image/jpeg": true}

// FromDataURL decodes a base64 data URL as produced by canvas.toDataURL. An
// empty string yields a nil signature.
func FromDataURL(raw string) (*Signature, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	header, payload, ok := strings.Cut(raw, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("signature: malformed data url")
	}
	mediaType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !allowedContentTypes[mediaType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("signature: decode data url: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return newSignature(SourceDraw, data), nil
}

// FromUpload validates an uploaded file by extension and content sniffing.
func FromUpload(filename string, data []byte) (*Signature, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, filename)
	}
	if len(data) == 0 {
		return nil, nil
	}
	if contentType := http.DetectContentType(data); !allowedContentTypes[contentType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return newSignature(SourceUpload, data), nil
}

func newSignature(source string, data []byte) *Signature {
	sig := &Signature{Data: data, Meta: Meta{Source: source}}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		sig.Meta.Width = cfg.Width
		sig.Meta.Height = cfg.Height
	}
	return sig
}
