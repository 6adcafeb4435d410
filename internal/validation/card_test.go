package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateLuhn(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{name: "valid visa test number", number: "4111111111111111", valid: true},
		{name: "checksum off by one", number: "4111111111111112", valid: false},
		{name: "valid with spaces", number: "4111 1111 1111 1111", valid: true},
		{name: "valid with dashes", number: "4111-1111-1111-1111", valid: true},
		{name: "valid mastercard test number", number: "5555555555554444", valid: true},
		{name: "valid amex test number", number: "378282246310005", valid: true},
		{name: "too short", number: "411111111111", valid: false},
		{name: "too long", number: "41111111111111111111", valid: false},
		{name: "non-digit characters", number: "4111a11111111111", valid: false},
		{name: "empty", number: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateLuhn(tt.number))
		})
	}
}

func TestValidateLuhnIsPure(t *testing.T) {
	// Re-validating an accepted number never changes the verdict.
	for i := 0; i < 5; i++ {
		assert.True(t, ValidateLuhn("4111111111111111"))
		assert.False(t, ValidateLuhn("4111111111111112"))
	}
}

func TestExpiryValidAt(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		month int
		year  int
		valid bool
	}{
		{name: "current month is valid through its last day", month: 6, year: 2026, valid: true},
		{name: "previous month expired", month: 5, year: 2026, valid: false},
		{name: "future year", month: 1, year: 2030, valid: true},
		{name: "past year", month: 12, year: 2025, valid: false},
		{name: "two-digit year in current century", month: 12, year: 30, valid: true},
		{name: "two-digit year already past", month: 1, year: 26, valid: false},
		{name: "month zero", month: 0, year: 2030, valid: false},
		{name: "month thirteen", month: 13, year: 2030, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ExpiryValidAt(tt.month, tt.year, now))
		})
	}
}

func TestCardNetwork(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		network string
	}{
		{name: "visa", number: "4111111111111111", network: NetworkVisa},
		{name: "mastercard classic range", number: "5555555555554444", network: NetworkMastercard},
		{name: "mastercard 2-series", number: "2221000000000009", network: NetworkMastercard},
		{name: "amex 34", number: "340000000000009", network: NetworkAmex},
		{name: "amex 37", number: "378282246310005", network: NetworkAmex},
		{name: "rupay 60", number: "6012345678901234", network: NetworkRuPay},
		{name: "rupay 508", number: "5081234567890123", network: NetworkRuPay},
		{name: "unknown prefix", number: "9999999999999999", network: NetworkUnknown},
		{name: "empty never throws", number: "", network: NetworkUnknown},
		{name: "spaces are stripped first", number: "4111 1111 1111 1111", network: NetworkVisa},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.network, CardNetwork(tt.number))
		})
	}
}

func TestCardLast4(t *testing.T) {
	assert.Equal(t, "1111", CardLast4("4111 1111 1111 1111"))
	assert.Equal(t, "4444", CardLast4("5555-5555-5555-4444"))
	assert.Equal(t, "123", CardLast4("123"))
}
