package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const dataURIPrefix = "data:"

var ErrInvalidDataURI = errors.New("invalid data URI")

// DataURI is a decoded RFC 2397 data URI.
type DataURI struct {
	MediaType string
	Data      []byte
}

// Extension returns the file extension (with leading dot) for the payload,
// preferring the declared media type and falling back to content sniffing.
func (d *DataURI) Extension() string {
	if mt := mimetype.Lookup(d.MediaType); mt != nil && mt.Extension() != "" {
		return mt.Extension()
	}
	return mimetype.Detect(d.Data).Extension()
}

func IsDataURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), dataURIPrefix)
}

// IsHTTPURL reports whether s is an absolute http(s) URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// EncodeDataURI renders data as a base64 data URI, sniffing the media type
// from the content.
func EncodeDataURI(data []byte) string {
	mediaType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return dataURIPrefix + strings.TrimSpace(mediaType) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI parses both base64 and percent-encoded data URIs.
func DecodeDataURI(s string) (*DataURI, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, dataURIPrefix) {
		return nil, ErrInvalidDataURI
	}

	meta, payload, ok := strings.Cut(s[len(dataURIPrefix):], ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	isBase64 := false
	if strings.HasSuffix(meta, ";base64") {
		isBase64 = true
		meta = strings.TrimSuffix(meta, ";base64")
	}

	mediaType, _, _ := strings.Cut(meta, ";")
	if mediaType == "" {
		mediaType = "text/plain"
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		data = []byte(unescaped)
	}

	return &DataURI{MediaType: strings.ToLower(mediaType), Data: data}, nil
}
