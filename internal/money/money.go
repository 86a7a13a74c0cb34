// Package money parses price text and formats amounts for display.
//
// Separators follow the configured locale: "1,234.50" reads as 1234.50
// under English and "1.234,50" reads the same under German.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// fractionDigits is the number of decimals shown for every amount.
const fractionDigits = 2

var (
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidLocale   = errors.New("invalid locale")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// Formatter renders amounts in one currency and parses user-typed amounts
// using one locale's separators.
type Formatter struct {
	unit    currency.Unit
	tag     language.Tag
	printer *message.Printer
	decimal string
	group   string
}

// NewFormatter creates a formatter for an ISO 4217 currency code and a
// BCP 47 locale tag.
func NewFormatter(currencyCode, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidCurrency, currencyCode, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidLocale, locale, err)
	}

	f := &Formatter{
		unit:    unit,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
	f.decimal, f.group = separators(f.printer)
	return f, nil
}

// Currency returns the ISO code of the display currency.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Locale returns the locale tag used for separators.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Format renders an amount as "<ISO code> <amount>" with two fraction
// digits and locale grouping, e.g. "PHP 1,234.50". The amount is printed
// from its decimal digits, so large amounts keep every digit.
func (f *Formatter) Format(amount decimal.Decimal) string {
	digits := amount.StringFixed(fractionDigits)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	intPart, fracPart, _ := strings.Cut(digits, ".")

	return f.unit.String() + " " + sign + f.groupDigits(intPart) + f.decimal + fracPart
}

// groupDigits inserts the grouping separator every three digits from the
// right.
func (f *Formatter) groupDigits(digits string) string {
	if f.group == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(f.group)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Parse reads a user-typed amount. Surrounding whitespace is ignored.
// Grouping separators are accepted only between digits of the integer
// part, in groups of three after a leading group of one to three digits;
// "12,5" under English is an error, not 125.
func (f *Formatter) Parse(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}

	parts := strings.Split(s, f.decimal)
	if len(parts) > 2 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	intPart, ok := f.ungroup(parts[0])
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
		if fracPart != "" && !isDigits(fracPart) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
		}
	}
	if intPart == "" && fracPart == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	canonical := sign + intPart
	if intPart == "" {
		canonical += "0"
	}
	if fracPart != "" {
		canonical += "." + fracPart
	}

	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	return d, nil
}

// ungroup validates the integer part and strips its grouping separators.
// An empty integer part is allowed (".5").
func (f *Formatter) ungroup(s string) (string, bool) {
	if f.group == "" || !strings.Contains(s, f.group) {
		return s, s == "" || isDigits(s)
	}

	groups := strings.Split(s, f.group)
	if first := groups[0]; len(first) < 1 || len(first) > 3 || !isDigits(first) {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !isDigits(g) {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// separators derives the decimal and grouping separators by formatting a
// known number with the locale's printer. Locales that do not print Latin
// digits fall back to "." and ",".
func separators(p *message.Printer) (dec, group string) {
	r := []rune(p.Sprint(number.Decimal(1234567.5, number.Scale(1))))
	if len(r) < 9 || r[0] != '1' || r[len(r)-1] != '5' {
		return ".", ","
	}

	dec = string(r[len(r)-2])
	for i := 1; i < len(r); i++ {
		if r[i] == '2' {
			group = string(r[1:i])
			break
		}
	}
	return dec, group
}
