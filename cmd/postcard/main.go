// Command postcard creates, inspects and approves Swiss Post postcards from
// the command line.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "postcard",
		Usage:   "Swiss Post postcard API client",
		Version: "1.0.0",
		Writer:  os.Stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				Sources: cli.EnvVars("POSTCARD_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log requests and token refreshes to stderr",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: 'text' or 'json'",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "token",
				Usage:  "Obtain an access token and print its expiry",
				Action: runToken,
			},
			validateCommand(),
			{
				Name:      "create",
				Usage:     "Create a postcard from a card file and upload its front image",
				ArgsUsage: "<card.yaml>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Required: true, Usage: "Front image"},
					&cli.StringFlag{Name: "campaign", Usage: "Campaign key (defaults to the configured campaign)"},
					&cli.StringFlag{Name: "branding-image", Usage: "Branding image"},
					&cli.StringFlag{Name: "stamp", Usage: "Custom stamp image"},
					&cli.BoolFlag{Name: "approve", Usage: "Approve the postcard after uploading"},
				},
				Action: runCreate,
			},
			{
				Name:      "state",
				Usage:     "Show the processing state of a postcard",
				ArgsUsage: "<card-key>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "wait-for", Usage: "Poll until the postcard reaches one of these states"},
					&cli.DurationFlag{Name: "timeout", Value: defaultWaitTimeout, Usage: "Maximum time to wait"},
				},
				Action: runState,
			},
			{
				Name:      "preview",
				Usage:     "Download the rendered front or back side",
				ArgsUsage: "<card-key>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "side", Value: "front", Usage: "front or back"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the image to this file"},
				},
				Action: runPreview,
			},
			{
				Name:      "approve",
				Usage:     "Release a postcard for printing",
				ArgsUsage: "<card-key>",
				Action:    runApprove,
			},
			{
				Name:      "stats",
				Usage:     "Show quota usage of a campaign",
				ArgsUsage: "[campaign-key]",
				Action:    runStats,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("postcard error", slog.Any("error", err))
		os.Exit(1)
	}
}
