package postcard

import (
	"fmt"
	"time"

	"github.com/postcardcloud/postcard-go/internal/api"
	"github.com/postcardcloud/postcard-go/internal/crypto"
)

// CodeMessage is a provider error or warning entry.
type CodeMessage struct {
	Code        ErrorCode
	Description string
}

// IsWarning reports whether m is a warning-class message.
func (m CodeMessage) IsWarning() bool { return m.Code.IsWarning() }

func (m CodeMessage) String() string {
	return fmt.Sprintf("[%d] %s", int(m.Code), m.Description)
}

func codeMessages(in []api.CodeMessage) []CodeMessage {
	if len(in) == 0 {
		return nil
	}
	out := make([]CodeMessage, len(in))
	for i, m := range in {
		out[i] = CodeMessage{Code: ErrorCode(m.Code), Description: m.Description}
	}
	return out
}

func descriptions(msgs []CodeMessage) []string {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Description
	}
	return out
}

// DefaultResponse is returned by create, upload and approve operations.
// Warnings do not make a request fail.
type DefaultResponse struct {
	CardKey        CardKey
	SuccessMessage string
	Errors         []CodeMessage
	Warnings       []CodeMessage
}

func newDefaultResponse(r *api.DefaultResponse) *DefaultResponse {
	return &DefaultResponse{
		CardKey:        CardKey(r.CardKey),
		SuccessMessage: r.SuccessMessage,
		Errors:         codeMessages(r.Errors),
		Warnings:       codeMessages(r.Warnings),
	}
}

// HasErrors reports whether the response carries error entries.
func (r *DefaultResponse) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether the response carries warning entries.
func (r *DefaultResponse) HasWarnings() bool { return len(r.Warnings) > 0 }

// ErrorMessages returns the error descriptions.
func (r *DefaultResponse) ErrorMessages() []string { return descriptions(r.Errors) }

// WarningMessages returns the warning descriptions.
func (r *DefaultResponse) WarningMessages() []string { return descriptions(r.Warnings) }

// State is the processing state of a postcard on a given day.
type State struct {
	State string
	Date  time.Time
}

// StateResponse is the current state of a postcard.
type StateResponse struct {
	CardKey  CardKey
	State    State
	Warnings []CodeMessage
}

func newStateResponse(r *api.StateResponse) *StateResponse {
	return &StateResponse{
		CardKey:  CardKey(r.CardKey),
		State:    State{State: r.State.State, Date: parseDate(r.State.Date)},
		Warnings: codeMessages(r.Warnings),
	}
}

// HasWarnings reports whether the response carries warning entries.
func (r *StateResponse) HasWarnings() bool { return len(r.Warnings) > 0 }

// WarningMessages returns the warning descriptions.
func (r *StateResponse) WarningMessages() []string { return descriptions(r.Warnings) }

func parseDate(s string) time.Time {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Preview side names.
const (
	SideFront = "front"
	SideBack  = "back"
)

// Preview is a rendered image of one side of a postcard.
type Preview struct {
	CardKey  CardKey
	FileType string
	Encoding string
	Side     string
	// ImageData is the base64-encoded image as returned by the provider.
	ImageData string
	Errors    []CodeMessage
}

func newPreview(r *api.Preview) *Preview {
	return &Preview{
		CardKey:   CardKey(r.CardKey),
		FileType:  r.FileType,
		Encoding:  r.Encoding,
		Side:      r.Side,
		ImageData: r.ImageData,
		Errors:    codeMessages(r.Errors),
	}
}

// HasErrors reports whether the response carries error entries.
func (p *Preview) HasErrors() bool { return len(p.Errors) > 0 }

// ErrorMessages returns the error descriptions.
func (p *Preview) ErrorMessages() []string { return descriptions(p.Errors) }

// DecodedImage returns the decoded image bytes.
func (p *Preview) DecodedImage() ([]byte, error) {
	return crypto.DecodeBase64(p.ImageData)
}

// CampaignStatistic reports the quota usage of a campaign.
type CampaignStatistic struct {
	CampaignKey         string
	Quota               int
	SendPostcards       int
	FreeToSendPostcards int
}

func newCampaignStatistic(r *api.CampaignStatistic) *CampaignStatistic {
	return &CampaignStatistic{
		CampaignKey:         r.CampaignKey,
		Quota:               r.Quota,
		SendPostcards:       r.SendPostcards,
		FreeToSendPostcards: r.FreeToSendPostcards,
	}
}

// RemainingQuota returns the quota minus the postcards already sent.
func (s *CampaignStatistic) RemainingQuota() int {
	return s.Quota - s.SendPostcards
}

// UsagePercentage returns the share of the quota used, in percent.
// It is zero when the campaign has no quota.
func (s *CampaignStatistic) UsagePercentage() float64 {
	if s.Quota == 0 {
		return 0
	}
	return float64(s.SendPostcards) / float64(s.Quota) * 100
}
