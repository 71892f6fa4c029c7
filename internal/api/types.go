package api

// Address is the wire form of a sender or recipient address.
type Address struct {
	Title             string `json:"title,omitempty"`
	Lastname          string `json:"lastname,omitempty"`
	Firstname         string `json:"firstname,omitempty"`
	Company           string `json:"company,omitempty"`
	Street            string `json:"street,omitempty"`
	HouseNr           string `json:"houseNr,omitempty"`
	Zip               string `json:"zip,omitempty"`
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	POBox             string `json:"poBox,omitempty"`
	AdditionalAdrInfo string `json:"additionalAdrInfo,omitempty"`
}

// BrandingText is the PUT /branding/text body.
type BrandingText struct {
	Text       string `json:"text"`
	BlockColor string `json:"blockColor,omitempty"`
	TextColor  string `json:"textColor,omitempty"`
}

// BrandingQRCode is the PUT /branding/qrtag body.
type BrandingQRCode struct {
	EncodedText      string `json:"encodedText"`
	AccompanyingText string `json:"accompanyingText,omitempty"`
	BlockColor       string `json:"blockColor,omitempty"`
	TextColor        string `json:"textColor,omitempty"`
}

// Branding groups optional branding parts of a postcard.
type Branding struct {
	BrandingText   *BrandingText   `json:"brandingText,omitempty"`
	BrandingQRCode *BrandingQRCode `json:"brandingQRCode,omitempty"`
}

// Postcard is the optional POST /api/v1/postcards body.
type Postcard struct {
	SenderAddress    *Address  `json:"senderAddress,omitempty"`
	RecipientAddress *Address  `json:"recipientAddress,omitempty"`
	SenderText       string    `json:"senderText,omitempty"`
	Branding         *Branding `json:"branding,omitempty"`
}

// DefaultResponse is returned by create, upload and approve calls.
type DefaultResponse struct {
	CardKey        string        `json:"cardKey"`
	SuccessMessage string        `json:"successMessage,omitempty"`
	Errors         []CodeMessage `json:"errors,omitempty"`
	Warnings       []CodeMessage `json:"warnings,omitempty"`
}

// State is the processing state of a postcard. Date is YYYY-MM-DD.
type State struct {
	State string `json:"state"`
	Date  string `json:"date"`
}

// StateResponse is the GET /state response.
type StateResponse struct {
	CardKey  string        `json:"cardKey"`
	State    State         `json:"state"`
	Warnings []CodeMessage `json:"warnings,omitempty"`
}

// Preview is the GET /previews/{side} response.
type Preview struct {
	CardKey   string        `json:"cardKey"`
	FileType  string        `json:"fileType"`
	Encoding  string        `json:"encoding"`
	Side      string        `json:"side"`
	ImageData string        `json:"imagedata"`
	Errors    []CodeMessage `json:"errors,omitempty"`
}

// CampaignStatistic is the GET /campaigns/{key}/statistic response.
type CampaignStatistic struct {
	CampaignKey         string `json:"campaignKey"`
	Quota               int    `json:"quota"`
	SendPostcards       int    `json:"sendPostcards"`
	FreeToSendPostcards int    `json:"freeToSendPostcards"`
}
