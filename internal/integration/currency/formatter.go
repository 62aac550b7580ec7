package currency

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendsync/backend/internal/application/adapter"
)

type style struct {
	prefix    string
	places    int32
	thousands string
	decimal   string
}

var styles = map[string]style{
	"USD": {prefix: "$", places: 2, thousands: ",", decimal: "."},
	"IDR": {prefix: "Rp ", places: 0, thousands: ".", decimal: ","},
}

// Formatter converts base-currency amounts into the display currency.
type Formatter struct {
	provider adapter.ExchangeRateProvider
	base     string
	display  string
}

// NewFormatter creates a formatter from base to display currency.
func NewFormatter(provider adapter.ExchangeRateProvider, base, display string) *Formatter {
	return &Formatter{
		provider: provider,
		base:     strings.ToUpper(base),
		display:  strings.ToUpper(display),
	}
}

// DisplayCurrency returns the ISO code amounts are rendered in.
func (f *Formatter) DisplayCurrency() string {
	return f.display
}

// Format converts amount at the current rate and formats it. If no rate is
// available the amount is shown in the base currency.
func (f *Formatter) Format(ctx context.Context, amount float64) string {
	value := decimal.NewFromFloat(amount)
	code := f.display

	if f.base != f.display {
		rate, err := f.provider.Rate(ctx, f.base, f.display)
		if err != nil {
			slog.Warn("Formatting in base currency, no exchange rate", "error", err)
			code = f.base
		} else {
			value = value.Mul(decimal.NewFromFloat(rate.Rate))
		}
	}

	return FormatAmount(value, code)
}

// FormatAmount renders value the way people read code amounts, for example
// "$1,234.56" or "Rp 1.000.000".
func FormatAmount(value decimal.Decimal, code string) string {
	s, ok := styles[code]
	if !ok {
		s = style{prefix: code + " ", places: 2, thousands: ",", decimal: "."}
	}

	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Neg()
	}

	fixed := value.StringFixed(s.places)
	whole, frac, _ := strings.Cut(fixed, ".")

	out := sign + s.prefix + groupThousands(whole, s.thousands)
	if s.places > 0 {
		out += s.decimal + frac
	}
	return out
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

var _ adapter.MoneyFormatter = (*Formatter)(nil)
