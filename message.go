package postcard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Message describes a postcard to send with Client.Send. Build it with
// NewMessage and the chained setters; each setter returns a modified copy.
type Message struct {
	ImagePath         string
	Recipient         *RecipientAddress
	Sender            *SenderAddress
	SenderText        string
	CampaignKey       string
	Branding          *Branding
	BrandingImagePath string
	BrandingStampPath string
	ShouldAutoApprove bool
}

// NewMessage returns a message with the given front image.
func NewMessage(imagePath string) Message {
	return Message{ImagePath: imagePath}
}

// To returns a copy of m addressed to a.
func (m Message) To(a RecipientAddress) Message {
	m.Recipient = &a
	return m
}

// From returns a copy of m with sender address a.
func (m Message) From(a SenderAddress) Message {
	m.Sender = &a
	return m
}

// Text returns a copy of m with the sender text set.
func (m Message) Text(text string) Message {
	m.SenderText = text
	return m
}

// Campaign returns a copy of m sent in campaignKey.
func (m Message) Campaign(campaignKey string) Message {
	m.CampaignKey = campaignKey
	return m
}

// WithBranding returns a copy of m with branding text and/or QR code.
func (m Message) WithBranding(b Branding) Message {
	m.Branding = &b
	return m
}

// BrandingImage returns a copy of m with a branding image.
func (m Message) BrandingImage(path string) Message {
	m.BrandingImagePath = path
	return m
}

// BrandingStamp returns a copy of m with a custom stamp.
func (m Message) BrandingStamp(path string) Message {
	m.BrandingStampPath = path
	return m
}

// AutoApprove returns a copy of m that Send approves after uploading.
func (m Message) AutoApprove(approve bool) Message {
	m.ShouldAutoApprove = approve
	return m
}

// Send creates the postcard described by m, uploads its image, applies
// its branding and, if requested, approves it. It returns the key of the
// created postcard. Failures are reported as *SendError; when the
// postcard was already created, the error carries its key.
func (c *Client) Send(ctx context.Context, m Message) (CardKey, error) {
	if m.Recipient == nil {
		return "", &SendError{Stage: "recipient", Err: errors.New("message has no recipient address")}
	}

	var opts []CallOption
	if m.CampaignKey != "" {
		opts = append(opts, WithCampaign(m.CampaignKey))
	}

	card := Postcard{
		RecipientAddress: m.Recipient,
		SenderAddress:    m.Sender,
		SenderText:       m.SenderText,
	}
	created, err := c.CreateComplete(ctx, card, m.ImagePath, opts...)
	if err != nil {
		var key CardKey
		if created != nil {
			key = created.CardKey
		}
		return key, &SendError{Stage: "create", CardKey: key, Err: err}
	}
	key := created.CardKey
	c.logger.Debug("postcard created", "card_key", key)

	steps := c.brandingSteps(m)
	if m.ShouldAutoApprove {
		steps = append(steps, sendStep{"approve", func(ctx context.Context, key CardKey) error {
			_, err := c.Approve(ctx, key)
			return err
		}})
	}
	for _, s := range steps {
		if err := s.run(ctx, key); err != nil {
			return key, &SendError{Stage: s.stage, CardKey: key, Err: err}
		}
	}
	return key, nil
}

type sendStep struct {
	stage string
	run   func(ctx context.Context, key CardKey) error
}

func (c *Client) brandingSteps(m Message) []sendStep {
	var steps []sendStep
	if m.Branding != nil && m.Branding.Text != nil {
		text := *m.Branding.Text
		steps = append(steps, sendStep{"branding text", func(ctx context.Context, key CardKey) error {
			_, err := c.UploadBrandingText(ctx, key, text)
			return err
		}})
	}
	if m.Branding != nil && m.Branding.QRCode != nil {
		qr := *m.Branding.QRCode
		steps = append(steps, sendStep{"branding QR code", func(ctx context.Context, key CardKey) error {
			_, err := c.UploadBrandingQRCode(ctx, key, qr)
			return err
		}})
	}
	if m.BrandingImagePath != "" {
		steps = append(steps, sendStep{"branding image", func(ctx context.Context, key CardKey) error {
			_, err := c.UploadBrandingImage(ctx, key, m.BrandingImagePath)
			return err
		}})
	}
	if m.BrandingStampPath != "" {
		steps = append(steps, sendStep{"branding stamp", func(ctx context.Context, key CardKey) error {
			_, err := c.UploadBrandingStamp(ctx, key, m.BrandingStampPath)
			return err
		}})
	}
	return steps
}

// addressKeys lists, per address field, the attribute names accepted by
// RecipientAddressFromMap in order of preference.
var addressKeys = []struct {
	field string
	keys  []string
	set   func(*RecipientAddress, string)
}{
	{"street", []string{"street", "address", "street_address"}, func(a *RecipientAddress, v string) { a.Street = v }},
	{"zip", []string{"zip", "postal_code", "postcode", "zipcode"}, func(a *RecipientAddress, v string) { a.Zip = v }},
	{"city", []string{"city", "town"}, func(a *RecipientAddress, v string) { a.City = v }},
	{"country", []string{"country", "country_code"}, func(a *RecipientAddress, v string) { a.Country = v }},
	{"firstname", []string{"firstname", "first_name", "name"}, func(a *RecipientAddress, v string) { a.Firstname = v }},
	{"lastname", []string{"lastname", "last_name", "surname"}, func(a *RecipientAddress, v string) { a.Lastname = v }},
	{"company", []string{"company", "company_name", "organization"}, func(a *RecipientAddress, v string) { a.Company = v }},
	{"houseNr", []string{"houseNr", "house_nr", "house_number", "number"}, func(a *RecipientAddress, v string) { a.HouseNr = v }},
}

var requiredAddressFields = []string{"street", "zip", "city", "country"}

// RecipientAddressFromMap builds a recipient address from loosely named
// attributes such as a user record. For each field the first non-empty
// accepted key wins, e.g. "postal_code" for the ZIP. It fails when street,
// ZIP, city or country cannot be found.
func RecipientAddressFromMap(data map[string]string) (RecipientAddress, error) {
	var addr RecipientAddress
	found := make(map[string]bool, len(addressKeys))
	for _, f := range addressKeys {
		for _, k := range f.keys {
			if v := data[k]; v != "" {
				f.set(&addr, v)
				found[f.field] = true
				break
			}
		}
	}

	for _, field := range requiredAddressFields {
		if !found[field] {
			keys := slices.Sorted(maps.Keys(data))
			return RecipientAddress{}, fmt.Errorf("missing required address field: %s. Available data: %s",
				field, strings.Join(keys, ", "))
		}
	}
	return addr, nil
}
