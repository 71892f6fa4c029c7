package postcard

import (
	"fmt"
	"unicode/utf8"
)

// TextField identifies a length-constrained text field.
type TextField int

// Text fields with provider length bounds.
const (
	SenderText TextField = iota
	SenderFirstname
	SenderLastname
	SenderCompany
	SenderStreet
	SenderHouseNr
	SenderZip
	SenderCity
	RecipientTitle
	RecipientFirstname
	RecipientLastname
	RecipientCompany
	RecipientStreet
	RecipientHouseNr
	RecipientZip
	RecipientCity
	RecipientPOBox
	RecipientAdditionalInfo
	BrandingTextText
	BrandingTextColor
	BrandingTextBlockColor
	BrandingQREncodedText
	BrandingQRAccompanyingText
	BrandingQRTextColor
	BrandingQRBlockColor
)

type textLimit struct {
	min, max int
	name     string
}

// Field names are the ones used in validation messages.
var textLimits = map[TextField]textLimit{
	SenderText:                 {0, 900, "sender text"},
	SenderFirstname:            {2, 75, "sender first name"},
	SenderLastname:             {2, 75, "sender last name"},
	SenderCompany:              {2, 39, "sender company"},
	SenderStreet:               {2, 50, "sender street"},
	SenderHouseNr:              {0, 5, "sender house number"},
	SenderZip:                  {4, 39, "sender ZIP"},
	SenderCity:                 {2, 30, "sender city"},
	RecipientTitle:             {0, 30, "recipient title"},
	RecipientFirstname:         {2, 75, "recipient first name"},
	RecipientLastname:          {2, 75, "recipient last name"},
	RecipientCompany:           {2, 39, "recipient company"},
	RecipientStreet:            {2, 50, "recipient street"},
	RecipientHouseNr:           {0, 5, "recipient house number"},
	RecipientZip:               {4, 39, "recipient ZIP"},
	RecipientCity:              {2, 30, "recipient city"},
	RecipientPOBox:             {0, 5, "recipient PO Box"},
	RecipientAdditionalInfo:    {0, 75, "recipient additional info"},
	BrandingTextText:           {0, 250, "branding text"},
	BrandingTextColor:          {4, 7, "branding text color"},
	BrandingTextBlockColor:     {4, 7, "branding block color"},
	BrandingQREncodedText:      {0, 100, "QR encoded text"},
	BrandingQRAccompanyingText: {0, 250, "QR accompanying text"},
	BrandingQRTextColor:        {4, 7, "QR text color"},
	BrandingQRBlockColor:       {4, 7, "QR block color"},
}

// Limits returns the inclusive length bounds of f in code points.
func (f TextField) Limits() (min, max int) {
	l := textLimits[f]
	return l.min, l.max
}

// Name returns the field name used in validation messages.
func (f TextField) Name() string {
	if l, ok := textLimits[f]; ok {
		return l.name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

func (f TextField) String() string {
	return f.Name()
}

// LengthResult is the outcome of a length check.
type LengthResult int

const (
	LengthOK LengthResult = iota
	LengthTooShort
	LengthTooLong
)

// CheckLength classifies the length of text against the bounds of f.
// Length is counted in Unicode code points.
func (f TextField) CheckLength(text string) LengthResult {
	minLen, maxLen := f.Limits()
	n := utf8.RuneCountInString(text)
	switch {
	case n < minLen:
		return LengthTooShort
	case n > maxLen:
		return LengthTooLong
	default:
		return LengthOK
	}
}

// ValidateLength returns a message when text violates the bounds of f and
// an empty string otherwise.
func (f TextField) ValidateLength(text string) string {
	minLen, maxLen := f.Limits()
	n := utf8.RuneCountInString(text)
	switch f.CheckLength(text) {
	case LengthTooShort:
		return fmt.Sprintf("The length of %s is too short (minimum: %d, provided: %d)", f.Name(), minLen, n)
	case LengthTooLong:
		return fmt.Sprintf("The length of %s is too long (maximum: %d, provided: %d)", f.Name(), maxLen, n)
	default:
		return ""
	}
}
