package domain

import (
	"encoding/base64"
	"strings"
)

// MaxImageBytes caps product photos and business logos at ingestion.
const MaxImageBytes = 5 * 1024 * 1024

// Image is an inline, self-describing image blob stored as a data URL
// ("data:image/png;base64,....").
type Image struct {
	dataURL  string
	mimeType string
	size     int
}

// NewImage validates a data URL. The size cap applies to the decoded bytes.
func NewImage(dataURL string) (*Image, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrInvalidImage
	}

	// Reject on the encoded length first to avoid decoding huge payloads.
	size := base64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload[max(0, len(payload)-2):], "=")
	if size > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return nil, ErrInvalidImage
	}

	mimeType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrInvalidImage
	}

	return &Image{dataURL: dataURL, mimeType: mimeType, size: size}, nil
}

// NewImageFromBytes builds an Image from raw bytes (e.g. a multipart upload).
func NewImageFromBytes(mimeType string, raw []byte) (*Image, error) {
	if len(raw) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrInvalidImage
	}
	return &Image{
		dataURL:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw),
		mimeType: mimeType,
		size:     len(raw),
	}, nil
}

// ReconstructImage wraps a stored data URL without re-validating it, so
// images saved before the size cap existed still load.
func ReconstructImage(dataURL string) *Image {
	header, payload, _ := strings.Cut(dataURL, ",")
	mimeType, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";")
	return &Image{
		dataURL:  dataURL,
		mimeType: mimeType,
		size:     base64.StdEncoding.DecodedLen(len(payload)),
	}
}

func (i *Image) DataURL() string  { return i.dataURL }
func (i *Image) MIMEType() string { return i.mimeType }
func (i *Image) Size() int        { return i.size }

// Bytes decodes the payload.
func (i *Image) Bytes() ([]byte, error) {
	_, payload, _ := strings.Cut(i.dataURL, ",")
	return base64.StdEncoding.DecodeString(payload)
}
