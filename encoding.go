package postcard

import "golang.org/x/text/encoding/charmap"

// IsCP850Compatible reports whether text survives a round trip through
// code page 850 unchanged. The provider prints all texts in CP850.
func IsCP850Compatible(text string) bool {
	encoded, err := charmap.CodePage850.NewEncoder().String(text)
	if err != nil {
		return false
	}
	decoded, err := charmap.CodePage850.NewDecoder().String(encoded)
	if err != nil {
		return false
	}
	return decoded == text
}
