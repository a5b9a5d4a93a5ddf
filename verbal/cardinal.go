package verbal

import "strings"

// MaxCardinal is the largest magnitude CardinalWords renders in full.
const MaxCardinal = 999_999_999_999

// CardinalWords renders an integer as natural-language words in the given
// locale. Values beyond ±MaxCardinal are clamped to the boundary words.
func CardinalWords(loc *Locale, n int64) string {
	if loc == nil {
		loc = EnglishUS
	}
	if n == 0 {
		return loc.Zero
	}

	negative := n < 0
	if negative {
		n = -n
	}
	if n > MaxCardinal {
		n = MaxCardinal
	}

	var groups []string
	remainder := n
	for _, scale := range loc.Scales {
		if remainder < scale.Value {
			continue
		}
		multiplier := remainder / scale.Value
		remainder %= scale.Value

		word := scale.Plural
		if multiplier == 1 {
			word = scale.Singular
		}

		if multiplier == 1 && loc.OmitOneThousand && scale.Value == 1_000 {
			groups = append(groups, word)
			continue
		}
		groups = append(groups, groupWords(loc, multiplier)+" "+word)
	}

	out := strings.Join(groups, " ")
	if remainder > 0 {
		tail := groupWords(loc, remainder)
		switch {
		case out == "":
			out = tail
		case remainder < 100:
			// "one thousand and five", "mil e cinco"
			out += loc.FinalConj + tail
		case loc.ConjBeforeHundreds && remainder%100 == 0:
			// "mil e cem", "dois mil e trezentos"
			out += loc.FinalConj + tail
		default:
			out += " " + tail
		}
	}

	if negative {
		out = loc.Negative + " " + out
	}
	return out
}

// groupWords renders 1..999.
func groupWords(loc *Locale, n int64) string {
	if n < 20 {
		return loc.Units[n]
	}
	if n < 100 {
		tens := loc.Tens[n/10]
		if n%10 == 0 {
			return tens
		}
		return tens + loc.TensUnitsSep + loc.Units[n%10]
	}
	if n == 100 {
		return loc.HundredExact
	}
	hundreds := loc.Hundreds[n/100]
	if n%100 == 0 {
		return hundreds
	}
	return hundreds + loc.GroupSep + groupWords(loc, n%100)
}
