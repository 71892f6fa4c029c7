package postcard

import (
	"context"
	"fmt"
	"slices"
)

// CreatePostcard creates a postcard in the campaign given by WithCampaign,
// or the default campaign. card may be nil; parts that are present are
// validated before the request is sent.
func (c *Client) CreatePostcard(ctx context.Context, card *Postcard, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)

	campaignKey, err := c.campaign(cfg)
	if err != nil {
		return nil, err
	}
	if card != nil && !cfg.skipValidation {
		if err := ValidatePostcard(*card); err != nil {
			return nil, err
		}
	}

	resp, err := c.apiClient.CreatePostcard(ctx, campaignKey, card.toAPI())
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// UploadImage uploads the front image of a postcard. The image must be
// 1819x1311 pixels unless AllowLowResolution or SkipValidation is given.
func (c *Client) UploadImage(ctx context.Context, key CardKey, path string, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)
	if err := c.checkImage("Image", path, FrontImage, cfg); err != nil {
		return nil, err
	}

	resp, err := c.apiClient.UploadImage(ctx, string(key), path, cfg.fileName)
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// UploadSenderText sets the message printed on the back of a postcard.
func (c *Client) UploadSenderText(ctx context.Context, key CardKey, text string, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)
	if !cfg.skipValidation {
		if err := validationError("Sender text", ValidateSenderText(text)); err != nil {
			return nil, err
		}
	}

	resp, err := c.apiClient.UploadSenderText(ctx, string(key), text)
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// UploadSenderAddress sets the return address of a postcard.
func (c *Client) UploadSenderAddress(ctx context.Context, key CardKey, addr SenderAddress, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)
	if !cfg.skipValidation {
		if err := validationError("Sender address", ValidateSenderAddress(addr)); err != nil {
			return nil, err
		}
	}

	resp, err := c.apiClient.UploadSenderAddress(ctx, string(key), addr.toAPI())
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// UploadRecipientAddress sets the delivery address of a postcard.
func (c *Client) UploadRecipientAddress(ctx context.Context, key CardKey, addr RecipientAddress, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)
	if !cfg.skipValidation {
		if err := validationError("Recipient address", ValidateRecipientAddress(addr)); err != nil {
			return nil, err
		}
	}

	resp, err := c.apiClient.UploadRecipientAddress(ctx, string(key), addr.toAPI())
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// Approve releases a postcard for printing. Approving twice fails with
// ErrAlreadyApproved.
func (c *Client) Approve(ctx context.Context, key CardKey) (*DefaultResponse, error) {
	resp, err := c.apiClient.ApprovePostcard(ctx, string(key))
	if err != nil {
		return nil, wrapError(err)
	}
	return newDefaultResponse(resp), nil
}

// State returns the current processing state of a postcard.
func (c *Client) State(ctx context.Context, key CardKey) (*StateResponse, error) {
	resp, err := c.apiClient.GetPostcardState(ctx, string(key))
	if err != nil {
		return nil, wrapError(err)
	}
	return newStateResponse(resp), nil
}

// PreviewFront renders the front side of a postcard.
func (c *Client) PreviewFront(ctx context.Context, key CardKey) (*Preview, error) {
	return c.preview(ctx, key, SideFront)
}

// PreviewBack renders the back side of a postcard.
func (c *Client) PreviewBack(ctx context.Context, key CardKey) (*Preview, error) {
	return c.preview(ctx, key, SideBack)
}

func (c *Client) preview(ctx context.Context, key CardKey, side string) (*Preview, error) {
	resp, err := c.apiClient.GetPreview(ctx, string(key), side)
	if err != nil {
		return nil, wrapError(err)
	}
	return newPreview(resp), nil
}

// CreateComplete creates a postcard carrying card and uploads its front
// image. card must have a recipient address. All inputs, including the
// image, are validated before the postcard is created.
//
// If the image upload fails, the create response is returned together
// with the error so the caller knows the card key.
func (c *Client) CreateComplete(ctx context.Context, card Postcard, imagePath string, opts ...CallOption) (*DefaultResponse, error) {
	cfg := newCallConfig(c.skipValidation, opts)

	if !cfg.skipValidation {
		if card.RecipientAddress == nil {
			return nil, validationError("Recipient address", []string{CodeRecipientAddressRequired.Description()})
		}
		if err := ValidatePostcard(card); err != nil {
			return nil, err
		}
		if err := c.checkImage("Image", imagePath, FrontImage, cfg); err != nil {
			return nil, err
		}
	}

	validated := append(slices.Clone(opts), SkipValidation())

	created, err := c.CreatePostcard(ctx, &card, validated...)
	if err != nil {
		return nil, err
	}

	if _, err := c.UploadImage(ctx, created.CardKey, imagePath, validated...); err != nil {
		return created, fmt.Errorf("upload image for card %s: %w", created.CardKey, err)
	}
	return created, nil
}

// checkImage validates the pixel size of an upload unless validation is
// skipped. AllowLowResolution accepts an image that is smaller than want;
// an image that is only larger keeps its mismatch message.
func (c *Client) checkImage(subject, path string, want ImageDimensions, cfg *callConfig) error {
	if cfg.skipValidation {
		return nil
	}
	msgs := ValidateImageDimensions(path, want)
	if cfg.allowLowResolution && slices.ContainsFunc(msgs, IsLowResolutionMessage) {
		msgs = slices.DeleteFunc(msgs, func(m string) bool {
			return IsLowResolutionMessage(m) || isDimensionMessage(m)
		})
	}
	if err := validationError(subject, msgs); err != nil {
		c.logger.Debug("image rejected", "subject", subject, "path", path, "problems", len(msgs))
		return err
	}
	return nil
}
