package match

import (
	"testing"

	"github.com/citescan/citescan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acmeCanonical() model.CanonicalIdentity {
	return model.CanonicalIdentity{
		ClientID:     "client-1",
		BusinessName: "Acme Plumbing",
		Street:       "123 Main St",
		City:         "Austin",
		State:        "TX",
		Phone:        "512-555-0100",
	}
}

func TestCompare_IdenticalAfterNormalization(t *testing.T) {
	scraped := model.ScrapedNAP{
		Name:    "ACME PLUMBING CO",
		Address: "123 Main Street, Austin, TX",
		Phone:   "5125550100",
	}

	got := Compare(acmeCanonical(), scraped)

	assert.Equal(t, model.StatusMatch, got.Status)
	assert.Equal(t, 100, got.Confidence)
	assert.True(t, got.NameMatch)
	assert.True(t, got.AddressMatch)
	assert.True(t, got.PhoneMatch)
	assert.Empty(t, got.Details)
}

func TestCompare_EmptyScrapeIsMissing(t *testing.T) {
	got := Compare(acmeCanonical(), model.ScrapedNAP{})

	assert.Equal(t, model.StatusMissing, got.Status)
	assert.Equal(t, 0, got.Confidence)
	assert.False(t, got.NameMatch)
	assert.False(t, got.AddressMatch)
	assert.False(t, got.PhoneMatch)
	assert.Equal(t, []string{"Business not found in directory"}, got.Details)
}

func TestCompare_WrongAddressIsPartial(t *testing.T) {
	scraped := model.ScrapedNAP{
		Name:    "Acme Plumbing",
		Address: "456 Oak Ave, Austin, TX",
		Phone:   "512-555-0100",
	}

	got := Compare(acmeCanonical(), scraped)

	assert.Equal(t, model.StatusPartial, got.Status)
	assert.Equal(t, 66, got.Confidence)
	assert.True(t, got.NameMatch)
	assert.False(t, got.AddressMatch)
	assert.True(t, got.PhoneMatch)
	require.Len(t, got.Details, 1)
	assert.Contains(t, got.Details[0], "Address:")
}

func TestCompare_PhoneIsNeverFuzzy(t *testing.T) {
	scraped := model.ScrapedNAP{
		Name:    "Acme Plumbing",
		Address: "123 Main St, Austin, TX",
		Phone:   "5125550101", // one digit off
	}

	got := Compare(acmeCanonical(), scraped)

	assert.False(t, got.PhoneMatch)
	assert.Equal(t, model.StatusPartial, got.Status)
}

func TestCompare_NothingMatchesIsMismatch(t *testing.T) {
	scraped := model.ScrapedNAP{
		Name:    "Completely Different Dental",
		Address: "999 Elsewhere Blvd, Dallas, TX",
		Phone:   "214-555-9999",
	}

	got := Compare(acmeCanonical(), scraped)

	assert.Equal(t, model.StatusMismatch, got.Status)
	assert.Equal(t, 0, got.Confidence)
	assert.Len(t, got.Details, 3)
}

func TestCompare_DetailsKeepFieldOrder(t *testing.T) {
	scraped := model.ScrapedNAP{
		Name:    "Ajax Dental Group",
		Address: "999 Elsewhere Blvd, Dallas, TX",
		Phone:   "214-555-9999",
	}

	got := Compare(acmeCanonical(), scraped)

	require.Len(t, got.Details, 3)
	assert.Contains(t, got.Details[0], "Name:")
	assert.Contains(t, got.Details[1], "Address:")
	assert.Contains(t, got.Details[2], "Phone:")
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"512-555-0100", "5125550100"},
		{"(512) 555-0100", "5125550100"},
		{"1-512-555-0100", "5125550100"}, // US country code dropped
		{"+1 512 555 0100", "5125550100"},
		{"5125550100", "5125550100"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Plumbing", "acme plumbing"},
		{"ACME PLUMBING CO", "acme plumbing"},
		{"Acme Plumbing, LLC", "acme plumbing"},
		{"Acme Plumbing Inc.", "acme plumbing"},
		{"Smith & Sons Ltd", "smith sons"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123 Main Street, Austin, TX", "123 main st austin tx"},
		{"123 Main St. Austin TX", "123 main st austin tx"},
		{"500 North Lamar Boulevard", "500 n lamar blvd"},
		{"200 Oak Avenue Suite 100", "200 oak ave ste 100"},
		{"200 Oak Ave #100", "200 oak ave ste 100"},
		{"200 Oak Ave Ste. 100", "200 oak ave ste 100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAddress(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeAddressIsIdempotent(t *testing.T) {
	inputs := []string{
		"123 Main Street, Austin, TX",
		"500 North Lamar Boulevard Suite 200",
		"1 Infinite Loop, Cupertino, CA",
		"200 Oak Ave #100",
	}
	for _, in := range inputs {
		once := NormalizeAddress(in)
		assert.Equal(t, once, NormalizeAddress(once), "input %q", in)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("acme", "acme"))
	assert.Equal(t, 0.0, Similarity("acme", ""))
	assert.Equal(t, 0.0, Similarity("", ""))

	// One edit across five runes.
	assert.InDelta(t, 0.8, Similarity("acmes", "acmez"), 0.001)

	// Similarity is symmetric.
	assert.Equal(t, Similarity("plumbing", "plumbers"), Similarity("plumbers", "plumbing"))
}
