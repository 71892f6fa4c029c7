package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const postcardsPath = "/api/v1/postcards"

func cardPath(cardKey, suffix string) string {
	return fmt.Sprintf("%s/%s%s", postcardsPath, url.PathEscape(cardKey), suffix)
}

func (c *Client) doDefault(ctx context.Context, r Request) (*DefaultResponse, error) {
	var result DefaultResponse
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePostcard creates a postcard in campaignKey. A nil postcard sends {}.
func (c *Client) CreatePostcard(ctx context.Context, campaignKey string, postcard *Postcard) (*DefaultResponse, error) {
	var body any = struct{}{}
	if postcard != nil {
		body = postcard
	}
	return c.doDefault(ctx, Request{
		Operation: "create_postcard",
		Method:    http.MethodPost,
		Path:      postcardsPath,
		Query:     url.Values{"campaignKey": {campaignKey}},
		JSON:      body,
	})
}

// UploadImage uploads the front image.
func (c *Client) UploadImage(ctx context.Context, cardKey, path, fileName string) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "upload_image",
		Method:    http.MethodPut,
		Path:      cardPath(cardKey, "/image"),
		Multipart: &MultipartFile{FieldName: "image", FileName: fileName, Path: path},
	})
}

// UploadSenderText sets the message text.
func (c *Client) UploadSenderText(ctx context.Context, cardKey, text string) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "upload_sender_text",
		Method:    http.MethodPut,
		Path:      cardPath(cardKey, "/sendertext"),
		Query:     url.Values{"senderText": {text}},
	})
}

// UploadRecipientAddress sets the recipient address.
func (c *Client) UploadRecipientAddress(ctx context.Context, cardKey string, addr Address) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "upload_recipient_address",
		Method:    http.MethodPut,
		Path:      cardPath(cardKey, "/addresses/recipient"),
		JSON:      addr,
	})
}

// UploadSenderAddress sets the sender address.
func (c *Client) UploadSenderAddress(ctx context.Context, cardKey string, addr Address) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "upload_sender_address",
		Method:    http.MethodPut,
		Path:      cardPath(cardKey, "/addresses/sender"),
		JSON:      addr,
	})
}

// UploadBrandingText sets the branding text block.
func (c *Client) UploadBrandingText(ctx context.Context, cardKey string, text BrandingText) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "upload_branding_text",
		Method:    http.MethodPut,
		Path:      cardPath(cardKey, "/branding/text"),
		JSON:      text,
	})
}

// UploadBrandingQRCode sets the branding QR tag.
func (c *Client) UploadBrandingQRCode(ctx context.Context, cardKey string, qr BrandingQRCode) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "upload_branding_qrcode",
		Method:    http.MethodPut,
		Path:      cardPath(cardKey, "/branding/qrtag"),
		JSON:      qr,
	})
}

// UploadBrandingImage uploads the branding image.
func (c *Client) UploadBrandingImage(ctx context.Context, cardKey, path, fileName string) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "upload_branding_image",
		Method:    http.MethodPut,
		Path:      cardPath(cardKey, "/branding/image"),
		Multipart: &MultipartFile{FieldName: "image", FileName: fileName, Path: path},
	})
}

// UploadBrandingStamp uploads the stamp image.
func (c *Client) UploadBrandingStamp(ctx context.Context, cardKey, path, fileName string) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "upload_branding_stamp",
		Method:    http.MethodPut,
		Path:      cardPath(cardKey, "/branding/stamp"),
		Multipart: &MultipartFile{FieldName: "stamp", FileName: fileName, Path: path},
	})
}

// ApprovePostcard submits the postcard for printing.
func (c *Client) ApprovePostcard(ctx context.Context, cardKey string) (*DefaultResponse, error) {
	return c.doDefault(ctx, Request{
		Operation: "approve_postcard",
		Method:    http.MethodPost,
		Path:      cardPath(cardKey, "/approval"),
	})
}

// GetPostcardState returns the processing state.
func (c *Client) GetPostcardState(ctx context.Context, cardKey string) (*StateResponse, error) {
	var result StateResponse
	err := c.Do(ctx, Request{
		Operation: "get_state",
		Method:    http.MethodGet,
		Path:      cardPath(cardKey, "/state"),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPreview returns the rendered front or back side.
func (c *Client) GetPreview(ctx context.Context, cardKey, side string) (*Preview, error) {
	var result Preview
	err := c.Do(ctx, Request{
		Operation: "get_preview_" + side,
		Method:    http.MethodGet,
		Path:      cardPath(cardKey, "/previews/"+side),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCampaignStatistic returns quota usage for a campaign.
func (c *Client) GetCampaignStatistic(ctx context.Context, campaignKey string) (*CampaignStatistic, error) {
	var result CampaignStatistic
	err := c.Do(ctx, Request{
		Operation: "get_campaign_statistic",
		Method:    http.MethodGet,
		Path:      fmt.Sprintf("/api/v1/campaigns/%s/statistic", url.PathEscape(campaignKey)),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
