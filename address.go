package postcard

import (
	"strings"

	"github.com/postcardcloud/postcard-go/internal/api"
)

// RecipientAddress is the delivery address printed on a postcard.
// Street, Zip, City and Country are required, and either a first/last
// name or a company must be present.
type RecipientAddress struct {
	Street            string
	HouseNr           string
	Zip               string
	City              string
	Country           string
	Title             string
	Firstname         string
	Lastname          string
	Company           string
	POBox             string
	AdditionalAdrInfo string
}

// NewRecipientAddress returns a recipient address with the required fields set.
func NewRecipientAddress(street, zip, city, country string) RecipientAddress {
	return RecipientAddress{Street: street, Zip: zip, City: city, Country: country}
}

// WithName returns a copy of a with first and last name set.
func (a RecipientAddress) WithName(firstname, lastname string) RecipientAddress {
	a.Firstname = firstname
	a.Lastname = lastname
	return a
}

// WithTitle returns a copy of a with the title set.
func (a RecipientAddress) WithTitle(title string) RecipientAddress {
	a.Title = title
	return a
}

// WithCompany returns a copy of a with the company set.
func (a RecipientAddress) WithCompany(company string) RecipientAddress {
	a.Company = company
	return a
}

// WithHouseNr returns a copy of a with the house number set.
func (a RecipientAddress) WithHouseNr(houseNr string) RecipientAddress {
	a.HouseNr = houseNr
	return a
}

// WithPOBox returns a copy of a with the PO box set.
func (a RecipientAddress) WithPOBox(poBox string) RecipientAddress {
	a.POBox = poBox
	return a
}

// WithAdditionalInfo returns a copy of a with the additional address line set.
func (a RecipientAddress) WithAdditionalInfo(info string) RecipientAddress {
	a.AdditionalAdrInfo = info
	return a
}

// FullName joins title, first and last name, falling back to the company.
func (a RecipientAddress) FullName() string {
	name := strings.TrimSpace(strings.Join(nonEmpty(a.Title, a.Firstname, a.Lastname), " "))
	if name == "" {
		return a.Company
	}
	return name
}

// FullAddress formats a as a multi-line postal address.
func (a RecipientAddress) FullAddress() string {
	var b strings.Builder
	if a.POBox != "" {
		b.WriteString("PO Box " + a.POBox)
	} else {
		b.WriteString(a.Street)
		if a.HouseNr != "" {
			b.WriteString(" " + a.HouseNr)
		}
	}
	if a.AdditionalAdrInfo != "" {
		b.WriteString("\n" + a.AdditionalAdrInfo)
	}
	b.WriteString("\n" + a.Zip + " " + a.City)
	b.WriteString("\n" + a.Country)
	return b.String()
}

func (a RecipientAddress) toAPI() api.Address {
	return api.Address{
		Title:             a.Title,
		Lastname:          a.Lastname,
		Firstname:         a.Firstname,
		Company:           a.Company,
		Street:            a.Street,
		HouseNr:           a.HouseNr,
		Zip:               a.Zip,
		City:              a.City,
		Country:           a.Country,
		POBox:             a.POBox,
		AdditionalAdrInfo: a.AdditionalAdrInfo,
	}
}

// SenderAddress is the return address of a postcard.
type SenderAddress struct {
	Street    string
	HouseNr   string
	Zip       string
	City      string
	Firstname string
	Lastname  string
	Company   string
}

// NewSenderAddress returns a sender address with the required fields set.
func NewSenderAddress(street, zip, city string) SenderAddress {
	return SenderAddress{Street: street, Zip: zip, City: city}
}

// WithName returns a copy of a with first and last name set.
func (a SenderAddress) WithName(firstname, lastname string) SenderAddress {
	a.Firstname = firstname
	a.Lastname = lastname
	return a
}

// WithCompany returns a copy of a with the company set.
func (a SenderAddress) WithCompany(company string) SenderAddress {
	a.Company = company
	return a
}

// WithHouseNr returns a copy of a with the house number set.
func (a SenderAddress) WithHouseNr(houseNr string) SenderAddress {
	a.HouseNr = houseNr
	return a
}

// FullName returns "first last", whichever of the two is set, or the company.
func (a SenderAddress) FullName() string {
	switch {
	case a.Firstname != "" && a.Lastname != "":
		return a.Firstname + " " + a.Lastname
	case a.Lastname != "":
		return a.Lastname
	case a.Firstname != "":
		return a.Firstname
	default:
		return a.Company
	}
}

// FullAddress formats a on one line as "street houseNr, zip city".
func (a SenderAddress) FullAddress() string {
	street := a.Street
	if a.HouseNr != "" {
		street += " " + a.HouseNr
	}
	return street + ", " + a.Zip + " " + a.City
}

func (a SenderAddress) toAPI() api.Address {
	return api.Address{
		Lastname:  a.Lastname,
		Firstname: a.Firstname,
		Company:   a.Company,
		Street:    a.Street,
		HouseNr:   a.HouseNr,
		Zip:       a.Zip,
		City:      a.City,
	}
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
