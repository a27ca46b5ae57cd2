package utils

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	UnitTons     = "tCO2e"
	UnitKilotons = "ktCO2e"
)

// Applied when the pair table has no USD/KRW quote at all.
const usdKrwFallbackRate = 1350.0

var printer = message.NewPrinter(language.English)

// ScaleUnit converts a tCO2e quantity into the requested display unit.
// Callers are responsible for coalescing non-finite inputs to 0 upstream.
func ScaleUnit(v float64, unit string) float64 {
	if unit == UnitKilotons {
		return v / 1000
	}
	return v
}

// RateLookup resolves a scalar pair rate. ok is false when the pair is not
// in the current table.
type RateLookup func(from, to string) (float64, bool)

// Convert applies a single scalar pair rate to amount. When the lookup has
// no rate, the hardcoded USD/KRW fallback applies; for any other unknown
// pair the amount is returned unconverted so the caller always has a
// renderable value.
func Convert(amount float64, from, to string, lookup RateLookup) float64 {
	if from == to {
		return amount
	}
	if lookup != nil {
		if r, ok := lookup(from, to); ok {
			return amount * r
		}
	}
	switch {
	case from == "USD" && to == "KRW":
		return amount * usdKrwFallbackRate
	case from == "KRW" && to == "USD":
		return amount / usdKrwFallbackRate
	}
	return amount
}

type FormatOpts struct {
	AmountCurrency string // currency the amount is denominated in, default "USD"
	Rounding       string // "round" | "floor" | "ceil", default "round"
}

// FormatCurrency converts amount into the display currency, rounds it per
// the requested mode and renders it with the currency's symbol convention:
// "$1,234" for USD, "1,234원" for KRW.
func FormatCurrency(amount float64, display string, opts *FormatOpts, lookup RateLookup) string {
	from := "USD"
	rounding := "round"
	if opts != nil {
		if opts.AmountCurrency != "" {
			from = opts.AmountCurrency
		}
		if opts.Rounding != "" {
			rounding = opts.Rounding
		}
	}

	v := Convert(amount, from, display, lookup)

	d := decimal.NewFromFloat(v)
	switch rounding {
	case "floor":
		d = d.Floor()
	case "ceil":
		d = d.Ceil()
	default:
		d = d.Round(0)
	}

	s := printer.Sprintf("%d", d.IntPart())
	switch display {
	case "KRW":
		return s + "원"
	case "USD":
		return "$" + s
	default:
		return s + " " + display
	}
}

// FmtNumber renders a card value with thousands separators.
func FmtNumber(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}
