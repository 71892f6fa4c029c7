package postcard

import "context"

// UploadBrandingText sets the branding text block of a postcard.
func (c *Client) UploadBrandingText(ctx context.Context, key CardKey, text BrandingText, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)
	if !cfg.skipValidation {
		if err := validationError("Branding text", ValidateBrandingText(text)); err != nil {
			return nil, err
		}
	}

	resp, err := c.apiClient.UploadBrandingText(ctx, string(key), text.toAPI())
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// UploadBrandingQRCode sets the branding QR code of a postcard.
func (c *Client) UploadBrandingQRCode(ctx context.Context, key CardKey, qr BrandingQRCode, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)
	if !cfg.skipValidation {
		if err := validationError("Branding QR code", ValidateBrandingQRCode(qr)); err != nil {
			return nil, err
		}
	}

	resp, err := c.apiClient.UploadBrandingQRCode(ctx, string(key), qr.toAPI())
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// UploadBrandingImage uploads the branding image. It must be 777x295
// pixels unless AllowLowResolution or SkipValidation is given.
func (c *Client) UploadBrandingImage(ctx context.Context, key CardKey, path string, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)
	if err := c.checkImage("Branding image", path, BrandingImage, cfg); err != nil {
		return nil, err
	}

	resp, err := c.apiClient.UploadBrandingImage(ctx, string(key), path, cfg.fileName)
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// UploadBrandingStamp uploads a custom stamp. It must be 343x248 pixels
// unless AllowLowResolution or SkipValidation is given.
func (c *Client) UploadBrandingStamp(ctx context.Context, key CardKey, path string, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)
	if err := c.checkImage("Stamp image", path, StampImage, cfg); err != nil {
		return nil, err
	}

	resp, err := c.apiClient.UploadBrandingStamp(ctx, string(key), path, cfg.fileName)
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// AddSimpleText is a shorthand for UploadBrandingText. Empty colors are omitted.
func (c *Client) AddSimpleText(ctx context.Context, key CardKey, text, blockColor, textColor string) (*DefaultResponse, error) {
	return c.UploadBrandingText(ctx, key, BrandingText{Text: text, BlockColor: blockColor, TextColor: textColor})
}

// AddSimpleQRCode is a shorthand for UploadBrandingQRCode. Empty optional
// fields are omitted.
func (c *Client) AddSimpleQRCode(ctx context.Context, key CardKey, encodedText, accompanyingText, blockColor, textColor string) (*DefaultResponse, error) {
	return c.UploadBrandingQRCode(ctx, key, BrandingQRCode{
		EncodedText:      encodedText,
		AccompanyingText: accompanyingText,
		BlockColor:       blockColor,
		TextColor:        textColor,
	})
}
