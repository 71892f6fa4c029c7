package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/postcardcloud/postcard-go"
)

// cardFile is the YAML description of a postcard read by the create command.
type cardFile struct {
	Recipient *addressFile  `yaml:"recipient"`
	Sender    *addressFile  `yaml:"sender"`
	Text      string        `yaml:"text"`
	Branding  *brandingFile `yaml:"branding"`
}

type addressFile struct {
	Title          string `yaml:"title"`
	Firstname      string `yaml:"firstname"`
	Lastname       string `yaml:"lastname"`
	Company        string `yaml:"company"`
	Street         string `yaml:"street"`
	HouseNr        string `yaml:"house_nr"`
	Zip            string `yaml:"zip"`
	City           string `yaml:"city"`
	Country        string `yaml:"country"`
	POBox          string `yaml:"po_box"`
	AdditionalInfo string `yaml:"additional_info"`
}

type brandingFile struct {
	Text *struct {
		Text       string `yaml:"text"`
		TextColor  string `yaml:"text_color"`
		BlockColor string `yaml:"block_color"`
	} `yaml:"text"`
	QRCode *struct {
		EncodedText      string `yaml:"encoded_text"`
		AccompanyingText string `yaml:"accompanying_text"`
		TextColor        string `yaml:"text_color"`
		BlockColor       string `yaml:"block_color"`
	} `yaml:"qr_code"`
}

func readCardFile(path string) (*cardFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card file: %w", err)
	}
	var card cardFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&card); err != nil {
		return nil, fmt.Errorf("parse card file %s: %w", path, err)
	}
	if card.Recipient == nil {
		return nil, errors.New("card file has no recipient")
	}
	return &card, nil
}

func (a *addressFile) recipient() postcard.RecipientAddress {
	return postcard.RecipientAddress{
		Street:            a.Street,
		HouseNr:           a.HouseNr,
		Zip:               a.Zip,
		City:              a.City,
		Country:           a.Country,
		Title:             a.Title,
		Firstname:         a.Firstname,
		Lastname:          a.Lastname,
		Company:           a.Company,
		POBox:             a.POBox,
		AdditionalAdrInfo: a.AdditionalInfo,
	}
}

func (a *addressFile) sender() postcard.SenderAddress {
	return postcard.SenderAddress{
		Street:    a.Street,
		HouseNr:   a.HouseNr,
		Zip:       a.Zip,
		City:      a.City,
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Company:   a.Company,
	}
}

// message converts the card into a message for Client.Send.
func (c *cardFile) message(imagePath string) postcard.Message {
	m := postcard.NewMessage(imagePath).To(c.Recipient.recipient()).Text(c.Text)
	if c.Sender != nil {
		m = m.From(c.Sender.sender())
	}
	if c.Branding != nil {
		var b postcard.Branding
		if t := c.Branding.Text; t != nil {
			b.Text = &postcard.BrandingText{Text: t.Text, TextColor: t.TextColor, BlockColor: t.BlockColor}
		}
		if q := c.Branding.QRCode; q != nil {
			b.QRCode = &postcard.BrandingQRCode{
				EncodedText:      q.EncodedText,
				AccompanyingText: q.AccompanyingText,
				TextColor:        q.TextColor,
				BlockColor:       q.BlockColor,
			}
		}
		if b.HasText() || b.HasQRCode() {
			m = m.WithBranding(b)
		}
	}
	return m
}
