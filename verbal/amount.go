package verbal

import "math"

// AmountWords renders a monetary amount as natural words: integer part in
// the currency unit, fractional part in cents, joined by the locale's
// conjunction. The conjunction is omitted when either clause is absent, and
// unit words agree in number with their value. Negative amounts carry the
// locale's negative prefix.
func AmountWords(loc *Locale, value float64) string {
	if loc == nil {
		loc = EnglishUS
	}

	negative := math.Signbit(value)
	cents := int64(math.Round(math.Abs(value) * 100))
	whole := cents / 100
	frac := cents % 100

	if whole == 0 && frac == 0 {
		return loc.Zero + " " + loc.CurrencyPlural
	}

	var out string
	if whole > 0 {
		unit := loc.CurrencyPlural
		if whole == 1 {
			unit = loc.CurrencySingular
		}
		out = CardinalWords(loc, whole) + " " + unit
	}
	if frac > 0 {
		unit := loc.CentPlural
		if frac == 1 {
			unit = loc.CentSingular
		}
		clause := CardinalWords(loc, frac) + " " + unit
		if out == "" {
			out = clause
		} else {
			out += loc.AmountConj + clause
		}
	}

	if negative {
		out = loc.Negative + " " + out
	}
	return out
}
