package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/postcardcloud/postcard-go"
)

// errInvalid is returned after validation problems were printed.
var errInvalid = errors.New("validation failed")

func addressFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "street"},
		&cli.StringFlag{Name: "house-nr"},
		&cli.StringFlag{Name: "zip"},
		&cli.StringFlag{Name: "city"},
		&cli.StringFlag{Name: "country"},
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "firstname"},
		&cli.StringFlag{Name: "lastname"},
		&cli.StringFlag{Name: "company"},
		&cli.StringFlag{Name: "po-box"},
		&cli.StringFlag{Name: "additional-info"},
		&cli.BoolFlag{Name: "sender", Usage: "Validate as a sender address"},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check inputs locally without calling the API",
		Commands: []*cli.Command{
			{
				Name:   "address",
				Usage:  "Validate a recipient or sender address",
				Flags:  addressFlags(),
				Action: runValidateAddress,
			},
			{
				Name:      "text",
				Usage:     "Validate a sender text",
				ArgsUsage: "<text>",
				Action:    runValidateText,
			},
			{
				Name:      "image",
				Usage:     "Check the pixel size of an image",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "front", Usage: "front, stamp or branding"},
				},
				Action: runValidateImage,
			},
			{
				Name:      "card",
				Usage:     "Validate every part of a card file",
				ArgsUsage: "<card.yaml>",
				Action:    runValidateCard,
			},
		},
	}
}

func runValidateAddress(_ context.Context, cmd *cli.Command) error {
	a := addressFile{
		Title:          cmd.String("title"),
		Firstname:      cmd.String("firstname"),
		Lastname:       cmd.String("lastname"),
		Company:        cmd.String("company"),
		Street:         cmd.String("street"),
		HouseNr:        cmd.String("house-nr"),
		Zip:            cmd.String("zip"),
		City:           cmd.String("city"),
		Country:        cmd.String("country"),
		POBox:          cmd.String("po-box"),
		AdditionalInfo: cmd.String("additional-info"),
	}

	subject, msgs := "Recipient address", postcard.ValidateRecipientAddress(a.recipient())
	if cmd.Bool("sender") {
		subject, msgs = "Sender address", postcard.ValidateSenderAddress(a.sender())
	}
	return reportProblems(cmd, subject, msgs)
}

func runValidateText(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("expected exactly one text argument")
	}
	return reportProblems(cmd, "Sender text", postcard.ValidateSenderText(cmd.Args().First()))
}

func runValidateImage(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("expected exactly one image path")
	}
	var want postcard.ImageDimensions
	switch kind := cmd.String("kind"); kind {
	case "front":
		want = postcard.FrontImage
	case "stamp":
		want = postcard.StampImage
	case "branding":
		want = postcard.BrandingImage
	default:
		return fmt.Errorf("unknown image kind %q", kind)
	}
	return reportProblems(cmd, "Image", postcard.ValidateImageDimensions(cmd.Args().First(), want))
}

func runValidateCard(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("expected exactly one card file")
	}
	card, err := readCardFile(cmd.Args().First())
	if err != nil {
		return err
	}
	m := card.message("")
	err = postcard.ValidatePostcard(postcard.Postcard{
		RecipientAddress: m.Recipient,
		SenderAddress:    m.Sender,
		SenderText:       m.SenderText,
		Branding:         m.Branding,
	})
	var vErr *postcard.ValidationError
	if errors.As(err, &vErr) {
		return reportProblems(cmd, vErr.Subject, vErr.Messages)
	}
	if err != nil {
		return err
	}
	return reportProblems(cmd, "Card", nil)
}

func reportProblems(cmd *cli.Command, subject string, msgs []string) error {
	invalid, err := printProblems(cmd, subject, msgs)
	if err != nil {
		return err
	}
	if invalid {
		return errInvalid
	}
	return nil
}
