package postcard

import "fmt"

// ErrorCode is a provider error or warning code.
type ErrorCode int

// Missing required fields.
const (
	CodeNameRequired             ErrorCode = 1000
	CodeFirstnameRequired        ErrorCode = 1001
	CodeStreetRequired           ErrorCode = 1002
	CodeZipRequired              ErrorCode = 1003
	CodeCityRequired             ErrorCode = 1004
	CodeNamesCombinationRequired ErrorCode = 1005
	CodeRecipientAddressRequired ErrorCode = 1006
	CodeFrontImageRequired       ErrorCode = 1007
	CodeSenderAddressRequired    ErrorCode = 1008
)

// Field length violations.
const (
	CodeTitleLengthInvalid               ErrorCode = 1100
	CodeNameLengthInvalid                ErrorCode = 1101
	CodeFirstnameLengthInvalid           ErrorCode = 1102
	CodeCompanyLengthInvalid             ErrorCode = 1103
	CodeStreetLengthInvalid              ErrorCode = 1104
	CodeHouseNrLengthInvalid             ErrorCode = 1105
	CodeZipLengthInvalid                 ErrorCode = 1106
	CodeCityLengthInvalid                ErrorCode = 1107
	CodePOBoxLengthInvalid               ErrorCode = 1108
	CodeSenderTextLengthInvalid          ErrorCode = 1109
	CodeBrandingTextLengthInvalid        ErrorCode = 1110
	CodeBrandingTextColorLengthInvalid   ErrorCode = 1111
	CodeBrandingBgColorLengthInvalid     ErrorCode = 1112
	CodeBrandingEncodedTextLengthInvalid ErrorCode = 1113
)

// Logical data violations.
const (
	CodeNamesCombinationNotAllowed        ErrorCode = 1200
	CodeNameOverrideNotAllowed            ErrorCode = 1201
	CodeFirstnameOverrideNotAllowed       ErrorCode = 1202
	CodeCompanyOverrideNotAllowed         ErrorCode = 1203
	CodeStreetOverrideNotAllowed          ErrorCode = 1204
	CodeHouseNrOverrideNotAllowed         ErrorCode = 1205
	CodeZipOverrideNotAllowed             ErrorCode = 1206
	CodeCityOverrideNotAllowed            ErrorCode = 1207
	CodePOBoxOverrideNotAllowed           ErrorCode = 1208
	CodeTitleOverrideNotAllowed           ErrorCode = 1209
	CodeBrandingTextOverrideNotAllowed    ErrorCode = 1210
	CodeBrandingTextColorOverrideNotAllow ErrorCode = 1211
	CodeBrandingBgColorOverrideNotAllowed ErrorCode = 1212
	CodeBrandingQRTextOverrideNotAllowed  ErrorCode = 1213
)

// Text encoding violations.
const (
	CodeSenderTextInvalidEncoding   ErrorCode = 1300
	CodeNameInvalidEncoding         ErrorCode = 1301
	CodeFirstnameInvalidEncoding    ErrorCode = 1302
	CodeStreetInvalidEncoding       ErrorCode = 1303
	CodeCityInvalidEncoding         ErrorCode = 1304
	CodeTitleInvalidEncoding        ErrorCode = 1305
	CodeCompanyInvalidEncoding      ErrorCode = 1306
	CodeBrandingTextInvalidEncoding ErrorCode = 1307
	CodeBrandingQRInvalidEncoding   ErrorCode = 1308
)

// Branding block violations.
const (
	CodeBrandingCombinationNotAllowed ErrorCode = 1400
	CodeTextColorInvalid              ErrorCode = 1401
	CodeBgColorInvalid                ErrorCode = 1402
	CodeBrandingLinkInvalid           ErrorCode = 1403
)

// Campaign and lookup failures.
const (
	CodeCampaignQuotaExceeded  ErrorCode = 2000
	CodeCampaignExpired        ErrorCode = 2010
	CodeCampaignNotStarted     ErrorCode = 2020
	CodeCampaignNotActive      ErrorCode = 2030
	CodeCampaignNotFound       ErrorCode = 4000
	CodeCampaignConfigNotFound ErrorCode = 4001
	CodeBrandingNotFound       ErrorCode = 4002
	CodePostcardNotFound       ErrorCode = 4003
)

// General and process messages.
const (
	CodeEncodingViolation            ErrorCode = 5000
	CodeFileFormatNotSupported       ErrorCode = 5010
	CodeBadResolution                ErrorCode = 5020
	CodePeripheralSystemNotAvailable ErrorCode = 5050
	CodePostcardAlreadyApproved      ErrorCode = 6000
)

var codeDescriptions = map[ErrorCode]string{
	CodeNameRequired:                     "The name is required",
	CodeFirstnameRequired:                "The first name is required",
	CodeStreetRequired:                   "The street is required",
	CodeZipRequired:                      "The zip is required",
	CodeCityRequired:                     "The city is required",
	CodeNamesCombinationRequired:         "Name/ first name or company is required",
	CodeRecipientAddressRequired:         "Recipient address is required",
	CodeFrontImageRequired:               "Front image is required",
	CodeSenderAddressRequired:            "Sender address is required",
	CodeTitleLengthInvalid:               "The length of title is invalid",
	CodeNameLengthInvalid:                "The length of name is invalid",
	CodeFirstnameLengthInvalid:           "The length of first name is invalid",
	CodeCompanyLengthInvalid:             "The length of company is invalid",
	CodeStreetLengthInvalid:              "The length of street is invalid",
	CodeHouseNrLengthInvalid:             "The length of houseNumber is invalid",
	CodeZipLengthInvalid:                 "The length of zip is invalid",
	CodeCityLengthInvalid:                "The length of city is invalid",
	CodePOBoxLengthInvalid:               "The length of poBox is invalid",
	CodeSenderTextLengthInvalid:          "The length of sender text is invalid",
	CodeBrandingTextLengthInvalid:        "The length of branding text is invalid",
	CodeBrandingTextColorLengthInvalid:   "The length of branding text color is invalid",
	CodeBrandingBgColorLengthInvalid:     "The length of branding background color is invalid",
	CodeBrandingEncodedTextLengthInvalid: "The length of branding encoded text is invalid",
	CodeCampaignQuotaExceeded:            "Campaign quota exceeded",
	CodeCampaignExpired:                  "The end date of campaign is reached",
	CodeCampaignNotStarted:               "The campaign has not yet started",
	CodeCampaignNotActive:                "The campaign is not active",
	CodeCampaignNotFound:                 "Campaign not found",
	CodeCampaignConfigNotFound:           "Campaign configuration not found",
	CodeBrandingNotFound:                 "Branding for campaign not found",
	CodePostcardNotFound:                 "Postcard not found",
	CodePostcardAlreadyApproved:          "The given postcard is already approved",
}

// Description returns the provider's description of c, or "Unknown error".
func (c ErrorCode) Description() string {
	if d, ok := codeDescriptions[c]; ok {
		return d
	}
	return "Unknown error"
}

// IsWarning reports whether the provider treats c as a warning. Warnings
// do not prevent a postcard from being processed.
func (c ErrorCode) IsWarning() bool {
	switch c {
	case CodeBadResolution, CodeSenderTextLengthInvalid, CodeBrandingTextLengthInvalid, CodeEncodingViolation:
		return true
	}
	return false
}

// IsError reports whether c is not a warning.
func (c ErrorCode) IsError() bool {
	return !c.IsWarning()
}

func (c ErrorCode) String() string {
	return fmt.Sprintf("%d %s", int(c), c.Description())
}
