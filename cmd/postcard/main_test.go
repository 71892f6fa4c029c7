package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/postcardcloud/postcard-go"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(context.Background(), append([]string{"postcard"}, args...))
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writePNG(t *testing.T, d postcard.ImageDimensions) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, d.Width, d.Height))))
	return path
}

const validCard = `
recipient:
  firstname: John
  lastname: Doe
  street: Musterstrasse
  house_nr: "8"
  zip: "8000"
  city: Zürich
  country: CH
sender:
  firstname: Jane
  lastname: Smith
  street: Absenderstrasse
  zip: "3000"
  city: Bern
text: Greetings from Bern
branding:
  qr_code:
    encoded_text: https://example.com
`

func TestValidateAddress(t *testing.T) {
	stdout, err := run(t, "validate", "address",
		"--street", "Musterstrasse", "--zip", "8000", "--city", "Zürich", "--country", "CH",
		"--firstname", "John", "--lastname", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "Recipient address is valid\n", stdout)

	stdout, err = run(t, "validate", "address", "--sender", "--street", "Absenderstrasse", "--zip", "3000", "--city", "Bern")
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, stdout, "Either first name/last name or company name is required for sender address")
}

func TestValidateText_JSON(t *testing.T) {
	stdout, err := run(t, "--format", "json", "validate", "text", "Hello 世界")
	require.ErrorIs(t, err, errInvalid)

	var result struct {
		Subject string   `json:"subject"`
		Valid   bool     `json:"valid"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Sender text contains characters not compatible with CP850 encoding"}, result.Errors)
}

func TestValidateImage(t *testing.T) {
	stdout, err := run(t, "validate", "image", "--kind", "stamp", writePNG(t, postcard.StampImage))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Image is valid")

	stdout, err = run(t, "validate", "image", writePNG(t, postcard.StampImage))
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, stdout, "343x248")

	_, err = run(t, "validate", "image", "--kind", "poster", "x.png")
	assert.ErrorContains(t, err, `unknown image kind "poster"`)
}

func TestValidateCard(t *testing.T) {
	stdout, err := run(t, "validate", "card", writeFile(t, "card.yaml", validCard))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Card is valid")

	bad := strings.Replace(validCard, "https://example.com", "https://example.com\n    text_color: red", 1)
	stdout, err = run(t, "validate", "card", writeFile(t, "card.yaml", bad))
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, stdout, "Branding QR code is invalid")

	_, err = run(t, "validate", "card", writeFile(t, "card.yaml", "text: hi\n"))
	assert.ErrorContains(t, err, "card file has no recipient")
}

// fakeAPI serves just enough of the provider for the CLI commands.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/OAuth/token" {
		_, _ = w.Write([]byte(`{"access_token":"secret-token","token_type":"Bearer","expires_in":3600}`))
		return
	}

	route := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/pcc")
	f.mu.Lock()
	f.calls = append(f.calls, route)
	f.mu.Unlock()

	switch {
	case strings.HasSuffix(route, "/state"):
		_, _ = w.Write([]byte(`{"cardKey":"card-1","state":{"state":"PRINTED","date":"2024-03-15"}}`))
	case strings.HasSuffix(route, "/statistic"):
		_, _ = w.Write([]byte(`{"campaignKey":"camp-1","quota":100,"sendPostcards":25,"freeToSendPostcards":75}`))
	case strings.Contains(route, "/previews/"):
		_, _ = w.Write([]byte(`{"cardKey":"card-1","fileType":"image/png","encoding":"base64","side":"back","imagedata":"aGVsbG8="}`))
	default:
		_, _ = w.Write([]byte(`{"cardKey":"card-1","successMessage":"ok"}`))
	}
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func setupAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	t.Setenv("SWISS_POST_POSTCARD_API_CLIENT_ID", "id")
	t.Setenv("SWISS_POST_POSTCARD_API_CLIENT_SECRET", "secret")
	t.Setenv("SWISS_POST_POSTCARD_API_BASE_URL", server.URL+"/pcc/")
	t.Setenv("SWISS_POST_POSTCARD_API_TOKEN_URL", server.URL+"/OAuth/token")
	t.Setenv("SWISS_POST_POSTCARD_API_DEFAULT_CAMPAIGN", "camp-1")
	t.Setenv("SWISS_POST_POSTCARD_API_TOKEN_CACHE", "memory")
	return api
}

func TestToken(t *testing.T) {
	setupAPI(t)
	stdout, err := run(t, "token")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Token valid until")
	assert.NotContains(t, stdout, "secret-token")
}

func TestCreate(t *testing.T) {
	api := setupAPI(t)
	stdout, err := run(t, "create", "--image", writePNG(t, postcard.FrontImage), "--approve",
		writeFile(t, "card.yaml", validCard))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created postcard card-1")
	assert.Contains(t, stdout, "Approved for printing")
	assert.Equal(t, []string{
		"POST /api/v1/postcards",
		"PUT /api/v1/postcards/card-1/image",
		"PUT /api/v1/postcards/card-1/branding/qrtag",
		"POST /api/v1/postcards/card-1/approval",
	}, api.Calls())
}

func TestState(t *testing.T) {
	setupAPI(t)
	stdout, err := run(t, "state", "card-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "State:    PRINTED")
	assert.Contains(t, stdout, "Date:     2024-03-15")

	stdout, err = run(t, "--format", "json", "state", "--wait-for", "PRINTED", "card-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"state": "PRINTED"`)

	_, err = run(t, "state")
	assert.ErrorContains(t, err, "expected exactly one card key")
}

func TestPreview(t *testing.T) {
	setupAPI(t)
	path := filepath.Join(t.TempDir(), "back.png")
	stdout, err := run(t, "preview", "--side", "back", "--out", path, "card-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestApproveAndStats(t *testing.T) {
	setupAPI(t)
	stdout, err := run(t, "approve", "card-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Card key: card-1")

	stdout, err = run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Remaining: 75")
	assert.Contains(t, stdout, "Sent:      25 (25.0%)")
}

func TestMissingCredentials(t *testing.T) {
	setupAPI(t)
	t.Setenv("SWISS_POST_POSTCARD_API_CLIENT_SECRET", "")
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = term.IsTerminal })

	_, err := run(t, "token")
	assert.ErrorIs(t, err, postcard.ErrMissingCredentials)
}

func TestPromptSecret(t *testing.T) {
	t.Cleanup(func() { readPassword = term.ReadPassword })

	readPassword = func(int) ([]byte, error) { return []byte(" s3cret \n"), nil }
	var prompt bytes.Buffer
	secret, err := promptSecret(&prompt)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
	assert.Contains(t, prompt.String(), "Client secret: ")

	readPassword = func(int) ([]byte, error) { return nil, nil }
	_, err = promptSecret(&prompt)
	assert.ErrorContains(t, err, "cannot be empty")

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = promptSecret(&prompt)
	assert.ErrorContains(t, err, "no tty")
}
