package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/postcardcloud/postcard-go"
)

const defaultWaitTimeout = 10 * time.Minute

func cardKeyArg(cmd *cli.Command) (postcard.CardKey, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.New("expected exactly one card key")
	}
	return postcard.CardKey(cmd.Args().First()), nil
}

func runToken(ctx context.Context, cmd *cli.Command) error {
	client, cleanup, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tok, err := client.Token(ctx)
	if err != nil {
		return err
	}

	// The bearer value is never printed.
	w := out(cmd)
	if jsonOutput(cmd) {
		return writeJSON(w, map[string]any{"expiresAt": tok.ExpiresAt})
	}
	fmt.Fprintf(w, "Token valid until %s\n", tok.ExpiresAt.Format(time.RFC3339))
	return nil
}

func runCreate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("expected exactly one card file")
	}
	card, err := readCardFile(cmd.Args().First())
	if err != nil {
		return err
	}

	m := card.message(cmd.String("image")).
		BrandingImage(cmd.String("branding-image")).
		BrandingStamp(cmd.String("stamp")).
		AutoApprove(cmd.Bool("approve"))
	if campaign := cmd.String("campaign"); campaign != "" {
		m = m.Campaign(campaign)
	}

	client, cleanup, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	key, err := client.Send(ctx, m)
	if err != nil {
		return err
	}

	w := out(cmd)
	if jsonOutput(cmd) {
		return writeJSON(w, map[string]any{"cardKey": key, "approved": m.ShouldAutoApprove})
	}
	fmt.Fprintf(w, "Created postcard %s\n", key)
	if m.ShouldAutoApprove {
		fmt.Fprintln(w, "Approved for printing")
	}
	return nil
}

func runState(ctx context.Context, cmd *cli.Command) error {
	key, err := cardKeyArg(cmd)
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var resp *postcard.StateResponse
	if states := cmd.StringSlice("wait-for"); len(states) > 0 {
		logger := newLogger(errWriter(cmd), true)
		resp, err = client.WaitForState(ctx, key,
			postcard.WithStates(states...),
			postcard.WithWaitTimeout(cmd.Duration("timeout")),
			postcard.OnStateChange(func(s postcard.State) {
				logger.Info("state changed", "card_key", key, "state", s.State)
			}),
		)
	} else {
		resp, err = client.State(ctx, key)
	}
	if err != nil {
		return err
	}

	w := out(cmd)
	if jsonOutput(cmd) {
		return writeJSON(w, map[string]any{
			"cardKey":  resp.CardKey,
			"state":    resp.State.State,
			"date":     resp.State.Date.Format(time.DateOnly),
			"warnings": codeMessagesJSON(resp.Warnings),
		})
	}
	fmt.Fprintf(w, "Card key: %s\nState:    %s\n", resp.CardKey, resp.State.State)
	if !resp.State.Date.IsZero() {
		fmt.Fprintf(w, "Date:     %s\n", resp.State.Date.Format(time.DateOnly))
	}
	printWarnings(w, resp.Warnings)
	return nil
}

func runPreview(ctx context.Context, cmd *cli.Command) error {
	key, err := cardKeyArg(cmd)
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var preview *postcard.Preview
	switch side := cmd.String("side"); side {
	case postcard.SideFront:
		preview, err = client.PreviewFront(ctx, key)
	case postcard.SideBack:
		preview, err = client.PreviewBack(ctx, key)
	default:
		return fmt.Errorf("unknown side %q", side)
	}
	if err != nil {
		return err
	}

	w := out(cmd)
	path := cmd.String("out")
	if path != "" {
		data, err := preview.DecodedImage()
		if err != nil {
			return fmt.Errorf("decode preview: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
	}

	if jsonOutput(cmd) {
		return writeJSON(w, map[string]any{
			"cardKey":  preview.CardKey,
			"side":     preview.Side,
			"fileType": preview.FileType,
			"file":     path,
		})
	}
	fmt.Fprintf(w, "Preview of %s (%s, %s)\n", preview.CardKey, preview.Side, preview.FileType)
	if path != "" {
		fmt.Fprintf(w, "Written to %s\n", path)
	}
	return nil
}

func runApprove(ctx context.Context, cmd *cli.Command) error {
	key, err := cardKeyArg(cmd)
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := client.Approve(ctx, key)
	if err != nil {
		return err
	}
	return printResponse(cmd, resp)
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	client, cleanup, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var stats *postcard.CampaignStatistic
	if cmd.Args().Len() > 0 {
		stats, err = client.CampaignStatistic(ctx, cmd.Args().First())
	} else {
		stats, err = client.DefaultCampaignStatistic(ctx)
	}
	if err != nil {
		return err
	}

	w := out(cmd)
	if jsonOutput(cmd) {
		return writeJSON(w, map[string]any{
			"campaignKey":         stats.CampaignKey,
			"quota":               stats.Quota,
			"sendPostcards":       stats.SendPostcards,
			"freeToSendPostcards": stats.FreeToSendPostcards,
			"remaining":           stats.RemainingQuota(),
			"usagePercentage":     stats.UsagePercentage(),
		})
	}
	fmt.Fprintf(w, "Campaign:  %s\n", stats.CampaignKey)
	fmt.Fprintf(w, "Quota:     %d\n", stats.Quota)
	fmt.Fprintf(w, "Sent:      %d (%.1f%%)\n", stats.SendPostcards, stats.UsagePercentage())
	fmt.Fprintf(w, "Remaining: %d\n", stats.RemainingQuota())
	return nil
}
