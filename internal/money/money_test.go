package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter("php", "en")
	require.NoError(t, err)
	assert.Equal(t, "PHP", f.Currency())
	assert.Equal(t, "en", f.Locale())

	_, err = NewFormatter("NOPE", "en")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = NewFormatter("PHP", "not a locale!")
	assert.ErrorIs(t, err, ErrInvalidLocale)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		amount string
		want   string
	}{
		{name: "whole amount", locale: "en", amount: "100", want: "PHP 100.00"},
		{name: "two decimals", locale: "en", amount: "57.35", want: "PHP 57.35"},
		{name: "rounds to cents", locale: "en", amount: "33.333333", want: "PHP 33.33"},
		{name: "zero", locale: "en", amount: "0", want: "PHP 0.00"},
		{name: "grouping", locale: "en", amount: "1234.5", want: "PHP 1,234.50"},
		{name: "negative", locale: "en", amount: "-1234567.891", want: "PHP -1,234,567.89"},
		{name: "german separators", locale: "de", amount: "1234.5", want: "PHP 1.234,50"},
		{name: "beyond float precision", locale: "en", amount: "123456789012345678.99", want: "PHP 123,456,789,012,345,678.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter("PHP", tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Format(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		locale  string
		text    string
		want    string
		wantErr bool
	}{
		{name: "plain", locale: "en", text: "120", want: "120"},
		{name: "decimal point", locale: "en", text: "80.50", want: "80.5"},
		{name: "whitespace", locale: "en", text: "  4.25 ", want: "4.25"},
		{name: "grouped english", locale: "en", text: "1,234.50", want: "1234.5"},
		{name: "grouped german", locale: "de", text: "1.234,50", want: "1234.5"},
		{name: "german comma", locale: "de", text: "2,5", want: "2.5"},
		{name: "negative", locale: "en", text: "-3", want: "-3"},
		{name: "leading point", locale: "en", text: ".5", want: "0.5"},
		{name: "trailing point", locale: "en", text: "5.", want: "5"},
		{name: "millions", locale: "en", text: "1,234,567.89", want: "1234567.89"},
		{name: "comma as decimal in english", locale: "en", text: "12,5", wantErr: true},
		{name: "leading group separator", locale: "en", text: ",5", wantErr: true},
		{name: "repeated group separators", locale: "en", text: "1,,,0", wantErr: true},
		{name: "group separator in fraction", locale: "en", text: "1.234,5", wantErr: true},
		{name: "oversized leading group", locale: "en", text: "1234,567", wantErr: true},
		{name: "point as decimal in german", locale: "de", text: "12.50", wantErr: true},
		{name: "bad german groups", locale: "de", text: "1.2.3", wantErr: true},
		{name: "sign only", locale: "en", text: "-", wantErr: true},
		{name: "exponent", locale: "en", text: "1e3", wantErr: true},
		{name: "empty", locale: "en", text: "", wantErr: true},
		{name: "letters", locale: "en", text: "abc", wantErr: true},
		{name: "two points", locale: "en", text: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter("EUR", tt.locale)
			require.NoError(t, err)

			got, err := f.Parse(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "Parse(%q) = %s, want %s", tt.text, got, tt.want)
		})
	}
}
