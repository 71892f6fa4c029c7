package postcard

import "testing"

func TestRecipientAddress_FullName(t *testing.T) {
	base := NewRecipientAddress("Musterstrasse", "8000", "Zürich", "CH")
	tests := []struct {
		name string
		addr RecipientAddress
		want string
	}{
		{"first and last", base.WithName("John", "Doe"), "John Doe"},
		{"with title", base.WithName("John", "Doe").WithTitle("Dr."), "Dr. John Doe"},
		{"last only", base.WithName("", "Doe"), "Doe"},
		{"company fallback", base.WithCompany("ACME AG"), "ACME AG"},
		{"name wins over company", base.WithName("John", "Doe").WithCompany("ACME AG"), "John Doe"},
		{"nothing", base, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecipientAddress_FullAddress(t *testing.T) {
	base := NewRecipientAddress("Musterstrasse", "8000", "Zürich", "CH")
	tests := []struct {
		name string
		addr RecipientAddress
		want string
	}{
		{"street only", base, "Musterstrasse\n8000 Zürich\nCH"},
		{"house number", base.WithHouseNr("12a"), "Musterstrasse 12a\n8000 Zürich\nCH"},
		{"po box", base.WithHouseNr("12a").WithPOBox("1234"), "PO Box 1234\n8000 Zürich\nCH"},
		{"additional info", base.WithAdditionalInfo("c/o Muster"), "Musterstrasse\nc/o Muster\n8000 Zürich\nCH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.FullAddress(); got != tt.want {
				t.Errorf("FullAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecipientAddress_BuildersCopy(t *testing.T) {
	base := NewRecipientAddress("Musterstrasse", "8000", "Zürich", "CH")
	named := base.WithName("John", "Doe")

	if base.Firstname != "" || base.Lastname != "" {
		t.Errorf("WithName modified the receiver: %+v", base)
	}
	if named.Firstname != "John" || named.Lastname != "Doe" {
		t.Errorf("WithName() = %+v", named)
	}
}

func TestSenderAddress(t *testing.T) {
	base := NewSenderAddress("Absenderstrasse", "3000", "Bern")
	tests := []struct {
		name        string
		addr        SenderAddress
		wantName    string
		wantAddress string
	}{
		{"full name", base.WithName("Jane", "Smith"), "Jane Smith", "Absenderstrasse, 3000 Bern"},
		{"first only", base.WithName("Jane", ""), "Jane", "Absenderstrasse, 3000 Bern"},
		{"company", base.WithCompany("ACME AG").WithHouseNr("5"), "ACME AG", "Absenderstrasse 5, 3000 Bern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.FullName(); got != tt.wantName {
				t.Errorf("FullName() = %q, want %q", got, tt.wantName)
			}
			if got := tt.addr.FullAddress(); got != tt.wantAddress {
				t.Errorf("FullAddress() = %q, want %q", got, tt.wantAddress)
			}
		})
	}
}

func TestPostcard_ToAPI(t *testing.T) {
	var nilCard *Postcard
	if got := nilCard.toAPI(); got != nil {
		t.Errorf("nil toAPI() = %+v, want nil", got)
	}

	recipient := validRecipient().WithHouseNr("1")
	card := &Postcard{
		RecipientAddress: &recipient,
		SenderText:       "Hi",
		Branding:         &Branding{Text: &BrandingText{Text: "Brand", TextColor: "#000000"}},
	}
	got := card.toAPI()
	if got.RecipientAddress == nil || got.RecipientAddress.HouseNr != "1" || got.RecipientAddress.Country != "CH" {
		t.Errorf("RecipientAddress = %+v", got.RecipientAddress)
	}
	if got.SenderAddress != nil {
		t.Errorf("SenderAddress = %+v, want nil", got.SenderAddress)
	}
	if got.Branding == nil || got.Branding.BrandingText == nil || got.Branding.BrandingQRCode != nil {
		t.Errorf("Branding = %+v", got.Branding)
	}
}

func TestBranding_Empty(t *testing.T) {
	b := &Branding{}
	if b.HasText() || b.HasQRCode() {
		t.Error("empty branding reports content")
	}
	if got := b.toAPI(); got != nil {
		t.Errorf("toAPI() = %+v, want nil", got)
	}
}
