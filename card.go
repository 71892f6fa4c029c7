package postcard

import "github.com/postcardcloud/postcard-go/internal/api"

// CardKey identifies a postcard. It is issued by the provider on creation.
type CardKey string

func (k CardKey) String() string { return string(k) }

// Postcard is the optional content sent when a postcard is created. Every
// part may also be uploaded separately afterwards.
type Postcard struct {
	SenderAddress    *SenderAddress
	RecipientAddress *RecipientAddress
	SenderText       string
	Branding         *Branding
}

// HasSenderAddress reports whether p carries a sender address.
func (p Postcard) HasSenderAddress() bool { return p.SenderAddress != nil }

// HasRecipientAddress reports whether p carries a recipient address.
func (p Postcard) HasRecipientAddress() bool { return p.RecipientAddress != nil }

// HasSenderText reports whether p carries a sender text.
func (p Postcard) HasSenderText() bool { return p.SenderText != "" }

// HasBranding reports whether p carries branding.
func (p Postcard) HasBranding() bool { return p.Branding != nil }

func (p *Postcard) toAPI() *api.Postcard {
	if p == nil {
		return nil
	}
	out := &api.Postcard{SenderText: p.SenderText}
	if p.SenderAddress != nil {
		a := p.SenderAddress.toAPI()
		out.SenderAddress = &a
	}
	if p.RecipientAddress != nil {
		a := p.RecipientAddress.toAPI()
		out.RecipientAddress = &a
	}
	if p.Branding != nil {
		out.Branding = p.Branding.toAPI()
	}
	return out
}
