package postcard

import (
	"strings"
	"testing"
)

func TestTextField_Limits(t *testing.T) {
	tests := []struct {
		field    TextField
		min, max int
	}{
		{SenderText, 0, 900},
		{SenderFirstname, 2, 75},
		{SenderLastname, 2, 75},
		{SenderCompany, 2, 39},
		{SenderStreet, 2, 50},
		{SenderHouseNr, 0, 5},
		{SenderZip, 4, 39},
		{SenderCity, 2, 30},
		{RecipientTitle, 0, 30},
		{RecipientFirstname, 2, 75},
		{RecipientLastname, 2, 75},
		{RecipientCompany, 2, 39},
		{RecipientStreet, 2, 50},
		{RecipientHouseNr, 0, 5},
		{RecipientZip, 4, 39},
		{RecipientCity, 2, 30},
		{RecipientPOBox, 0, 5},
		{RecipientAdditionalInfo, 0, 75},
		{BrandingTextText, 0, 250},
		{BrandingTextColor, 4, 7},
		{BrandingTextBlockColor, 4, 7},
		{BrandingQREncodedText, 0, 100},
		{BrandingQRAccompanyingText, 0, 250},
		{BrandingQRTextColor, 4, 7},
		{BrandingQRBlockColor, 4, 7},
	}

	for _, tt := range tests {
		t.Run(tt.field.Name(), func(t *testing.T) {
			minLen, maxLen := tt.field.Limits()
			if minLen != tt.min || maxLen != tt.max {
				t.Errorf("Limits() = (%d, %d), want (%d, %d)", minLen, maxLen, tt.min, tt.max)
			}
		})
	}
}

func TestTextField_CheckLength(t *testing.T) {
	tests := []struct {
		name  string
		field TextField
		text  string
		want  LengthResult
	}{
		{"sender text at max", SenderText, strings.Repeat("a", 900), LengthOK},
		{"sender text over max", SenderText, strings.Repeat("a", 901), LengthTooLong},
		{"empty sender text", SenderText, "", LengthOK},
		{"zip under min", RecipientZip, "800", LengthTooShort},
		{"zip at min", RecipientZip, "8000", LengthOK},
		{"street at max", SenderStreet, strings.Repeat("s", 50), LengthOK},
		{"street over max", SenderStreet, strings.Repeat("s", 51), LengthTooLong},
		{"multibyte counted as code points", SenderCity, strings.Repeat("ü", 30), LengthOK},
		{"multibyte over max", SenderCity, strings.Repeat("ü", 31), LengthTooLong},
		{"one char name", RecipientFirstname, "J", LengthTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.CheckLength(tt.text); got != tt.want {
				t.Errorf("CheckLength(%d chars) = %v, want %v", len([]rune(tt.text)), got, tt.want)
			}
		})
	}
}

func TestTextField_ValidateLength(t *testing.T) {
	tests := []struct {
		name  string
		field TextField
		text  string
		want  string
	}{
		{
			name:  "valid",
			field: SenderText,
			text:  strings.Repeat("a", 900),
			want:  "",
		},
		{
			name:  "too long",
			field: SenderText,
			text:  strings.Repeat("a", 901),
			want:  "The length of sender text is too long (maximum: 900, provided: 901)",
		},
		{
			name:  "too short",
			field: RecipientZip,
			text:  "12",
			want:  "The length of recipient ZIP is too short (minimum: 4, provided: 2)",
		},
		{
			name:  "empty required field",
			field: SenderStreet,
			text:  "",
			want:  "The length of sender street is too short (minimum: 2, provided: 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.ValidateLength(tt.text); got != tt.want {
				t.Errorf("ValidateLength() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextField_UnknownName(t *testing.T) {
	if got := TextField(999).Name(); got != "field(999)" {
		t.Errorf("Name() = %q, want field(999)", got)
	}
}
