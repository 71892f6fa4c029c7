package postcard

import (
	"errors"
	"regexp"

	validation "github.com/jellydator/validation"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsValidHexColor reports whether color has the form "#RRGGBB".
func IsValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// lengthRule checks a value against the bounds of a TextField. Unlike the
// stock length rules it also checks empty values.
type lengthRule struct {
	field TextField
}

func (r lengthRule) Validate(value any) error {
	s, _ := value.(string)
	if msg := r.field.ValidateLength(s); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func hexColor(msg string) validation.Rule {
	return validation.Match(hexColorRegex).Error(msg)
}

func cp850(msg string) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if !IsCP850Compatible(s) {
			return errors.New(msg)
		}
		return nil
	})
}

// checker collects one message per failing check, in check order.
type checker struct {
	msgs []string
}

func (c *checker) check(value string, rules ...validation.Rule) {
	if err := validation.Validate(value, rules...); err != nil {
		c.msgs = append(c.msgs, err.Error())
	}
}

func (c *checker) required(value, msg string) {
	c.check(value, validation.Required.Error(msg))
}

// length checks value against field when value is set or always is true.
func (c *checker) length(value string, field TextField, always bool) {
	if value == "" && !always {
		return
	}
	c.check(value, lengthRule{field})
}

func (c *checker) color(value, msg string) {
	if value == "" {
		return
	}
	c.check(value, hexColor(msg))
}

// ValidateSenderAddress returns the problems found in a. It returns nil
// for a valid address.
func ValidateSenderAddress(a SenderAddress) []string {
	var c checker
	c.required(a.Street, "Street is required for sender address")
	c.required(a.Zip, "ZIP code is required for sender address")
	c.required(a.City, "City is required for sender address")

	if a.Firstname == "" && a.Lastname == "" && a.Company == "" {
		c.msgs = append(c.msgs, "Either first name/last name or company name is required for sender address")
	}

	c.length(a.Firstname, SenderFirstname, false)
	c.length(a.Lastname, SenderLastname, false)
	c.length(a.Company, SenderCompany, false)
	c.length(a.Street, SenderStreet, true)
	c.length(a.HouseNr, SenderHouseNr, false)
	c.length(a.Zip, SenderZip, true)
	c.length(a.City, SenderCity, true)
	return c.msgs
}

// ValidateRecipientAddress returns the problems found in a. It returns nil
// for a valid address.
func ValidateRecipientAddress(a RecipientAddress) []string {
	var c checker
	c.required(a.Street, "Street is required for recipient address")
	c.required(a.Zip, "ZIP code is required for recipient address")
	c.required(a.City, "City is required for recipient address")
	c.required(a.Country, "Country is required for recipient address")

	if a.Firstname == "" && a.Lastname == "" && a.Company == "" {
		c.msgs = append(c.msgs, "Either first name/last name or company name is required for recipient address")
	}

	c.length(a.Title, RecipientTitle, false)
	c.length(a.Firstname, RecipientFirstname, false)
	c.length(a.Lastname, RecipientLastname, false)
	c.length(a.Company, RecipientCompany, false)
	c.length(a.Street, RecipientStreet, true)
	c.length(a.HouseNr, RecipientHouseNr, false)
	c.length(a.Zip, RecipientZip, true)
	c.length(a.City, RecipientCity, true)
	c.length(a.POBox, RecipientPOBox, false)
	c.length(a.AdditionalAdrInfo, RecipientAdditionalInfo, false)
	return c.msgs
}

// ValidateSenderText checks the length and CP850 compatibility of text.
func ValidateSenderText(text string) []string {
	var c checker
	c.length(text, SenderText, true)
	c.check(text, cp850("Sender text contains characters not compatible with CP850 encoding"))
	return c.msgs
}

// ValidateBrandingText checks the text length, both colors and CP850
// compatibility of b.
func ValidateBrandingText(b BrandingText) []string {
	var c checker
	c.length(b.Text, BrandingTextText, true)
	c.color(b.TextColor, "Branding text color must be a valid hex color (e.g., #FFFFFF)")
	c.color(b.BlockColor, "Branding block color must be a valid hex color (e.g., #FFFFFF)")
	c.check(b.Text, cp850("Branding text contains characters not compatible with CP850 encoding"))
	return c.msgs
}

// ValidateBrandingQRCode checks the populated fields of q.
func ValidateBrandingQRCode(q BrandingQRCode) []string {
	var c checker
	c.length(q.EncodedText, BrandingQREncodedText, false)
	c.length(q.AccompanyingText, BrandingQRAccompanyingText, false)
	c.color(q.TextColor, "QR text color must be a valid hex color (e.g., #FFFFFF)")
	c.color(q.BlockColor, "QR block color must be a valid hex color (e.g., #FFFFFF)")
	return c.msgs
}

// ValidatePostcard validates every part present in p and returns the
// first failure as a *ValidationError.
func ValidatePostcard(p Postcard) error {
	if p.RecipientAddress != nil {
		if err := validationError("Recipient address", ValidateRecipientAddress(*p.RecipientAddress)); err != nil {
			return err
		}
	}
	if p.SenderAddress != nil {
		if err := validationError("Sender address", ValidateSenderAddress(*p.SenderAddress)); err != nil {
			return err
		}
	}
	if p.SenderText != "" {
		if err := validationError("Sender text", ValidateSenderText(p.SenderText)); err != nil {
			return err
		}
	}
	if p.Branding != nil {
		if p.Branding.Text != nil {
			if err := validationError("Branding text", ValidateBrandingText(*p.Branding.Text)); err != nil {
				return err
			}
		}
		if p.Branding.QRCode != nil {
			if err := validationError("Branding QR code", ValidateBrandingQRCode(*p.Branding.QRCode)); err != nil {
				return err
			}
		}
	}
	return nil
}
