package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRate is applied when the region code is blank or unknown.
var DefaultRate = decimal.NewFromFloat(0.08)

// Table maps two-letter region codes to sales tax rates expressed as fractions.
type Table struct {
	rates map[string]decimal.Decimal
}

// NewTable builds a table from the provided code -> rate mapping. Codes are
// normalised to upper case.
func NewTable(rates map[string]decimal.Decimal) *Table {
	normalised := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		key := strings.ToUpper(strings.TrimSpace(code))
		if key == "" {
			continue
		}
		normalised[key] = rate
	}
	return &Table{rates: normalised}
}

// Lookup resolves the rate for a region code. The code is trimmed and matched
// case-insensitively; blank or unknown codes resolve to DefaultRate.
func (t *Table) Lookup(code string) decimal.Decimal {
	if t == nil {
		return DefaultRate
	}
	key := strings.ToUpper(strings.TrimSpace(code))
	if key == "" {
		return DefaultRate
	}
	if rate, ok := t.rates[key]; ok {
		return rate
	}
	return DefaultRate
}

// Known reports whether the region code resolves to an explicit table entry.
func (t *Table) Known(code string) bool {
	if t == nil {
		return false
	}
	_, ok := t.rates[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// USStates returns the default table of US state base sales tax rates.
func USStates() *Table {
	f := decimal.NewFromFloat
	return NewTable(map[string]decimal.Decimal{
		"AL": f(0.04),
		"AK": f(0),
		"AZ": f(0.056),
		"AR": f(0.065),
		"CA": f(0.0725),
		"CO": f(0.029),
		"CT": f(0.0635),
		"DE": f(0),
		"FL": f(0.06),
		"GA": f(0.04),
		"HI": f(0.04),
		"ID": f(0.06),
		"IL": f(0.0625),
		"IN": f(0.07),
		"IA": f(0.06),
		"KS": f(0.065),
		"KY": f(0.06),
		"LA": f(0.0445),
		"ME": f(0.055),
		"MD": f(0.06),
		"MA": f(0.0625),
		"MI": f(0.06),
		"MN": f(0.06875),
		"MS": f(0.07),
		"MO": f(0.04225),
		"MT": f(0),
		"NE": f(0.055),
		"NV": f(0.0685),
		"NH": f(0),
		"NJ": f(0.06625),
		"NM": f(0.05125),
		"NY": f(0.04),
		"NC": f(0.0475),
		"ND": f(0.05),
		"OH": f(0.0575),
		"OK": f(0.045),
		"OR": f(0),
		"PA": f(0.06),
		"RI": f(0.07),
		"SC": f(0.06),
		"SD": f(0.045),
		"TN": f(0.07),
		"TX": f(0.0625),
		"UT": f(0.061),
		"VT": f(0.06),
		"VA": f(0.053),
		"WA": f(0.065),
		"WV": f(0.06),
		"WI": f(0.05),
		"WY": f(0.04),
		"DC": f(0.06),
	})
}
