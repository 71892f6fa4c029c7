// Package postcard provides a Go client for the Swiss Post postcard API,
// which prints and mails postcards with custom artwork, text and branding.
//
// The client authenticates with OAuth2 client credentials, caches the
// access token and validates addresses, texts and images locally before
// any request is sent.
//
// Basic usage:
//
//	client, err := postcard.New(clientID, clientSecret,
//	    postcard.WithDefaultCampaign(campaignKey),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	recipient := postcard.NewRecipientAddress("Bahnhofstrasse", "8001", "Zürich", "CH").
//	    WithName("Anna", "Muster").
//	    WithHouseNr("1")
//
//	// Create the postcard and upload its front image
//	resp, err := client.CreateComplete(ctx, postcard.Postcard{
//	    RecipientAddress: &recipient,
//	    SenderText:       "Greetings from Bern",
//	}, "front.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Release it for printing
//	if _, err := client.Approve(ctx, resp.CardKey); err != nil {
//	    log.Fatal(err)
//	}
package postcard
