package postcard

import "github.com/postcardcloud/postcard-go/internal/api"

// BrandingText is a text block printed in the branding area.
// Colors are "#RRGGBB" and optional.
type BrandingText struct {
	Text       string
	BlockColor string
	TextColor  string
}

func (b BrandingText) toAPI() api.BrandingText {
	return api.BrandingText{Text: b.Text, BlockColor: b.BlockColor, TextColor: b.TextColor}
}

// BrandingQRCode is a QR code with optional accompanying text printed in
// the branding area.
type BrandingQRCode struct {
	EncodedText      string
	AccompanyingText string
	BlockColor       string
	TextColor        string
}

func (q BrandingQRCode) toAPI() api.BrandingQRCode {
	return api.BrandingQRCode{
		EncodedText:      q.EncodedText,
		AccompanyingText: q.AccompanyingText,
		BlockColor:       q.BlockColor,
		TextColor:        q.TextColor,
	}
}

// Branding groups the optional branding parts of a postcard.
type Branding struct {
	Text   *BrandingText
	QRCode *BrandingQRCode
}

// HasText reports whether b carries a branding text.
func (b Branding) HasText() bool { return b.Text != nil }

// HasQRCode reports whether b carries a QR code.
func (b Branding) HasQRCode() bool { return b.QRCode != nil }

func (b Branding) toAPI() *api.Branding {
	if !b.HasText() && !b.HasQRCode() {
		return nil
	}
	out := &api.Branding{}
	if b.Text != nil {
		t := b.Text.toAPI()
		out.BrandingText = &t
	}
	if b.QRCode != nil {
		q := b.QRCode.toAPI()
		out.BrandingQRCode = &q
	}
	return out
}
