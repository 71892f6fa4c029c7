package crypto

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64 decodes standard or URL-safe base64, with or without padding.
// Embedded whitespace and line breaks are ignored.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.RawStdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.URLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	return base64.RawURLEncoding.DecodeString(s)
}

// EncodeBase64 encodes bytes to standard base64 with padding.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
