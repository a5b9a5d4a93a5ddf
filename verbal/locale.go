// Package verbal converts domain values (currency amounts, clock times,
// cardinal numbers) into natural-language strings suitable for speech
// synthesis. All functions are pure and deterministic; the language-specific
// word forms live in Locale tables so new languages can be added without
// touching the composition logic.
package verbal

import (
	"golang.org/x/text/language"
)

// Scale describes one named magnitude (thousand, million, ...) with its
// singular and plural word forms.
type Scale struct {
	Value    int64
	Singular string
	Plural   string
}

// Locale holds the word tables and phrasing rules for one target language.
type Locale struct {
	Tag language.Tag

	// Cardinal number tables.
	Zero     string
	Negative string     // spoken prefix for negative values
	Units    [20]string // 0..19, covers the irregular teens
	Tens     [10]string // 20, 30, ... 90 at indices 2..9
	Hundreds [10]string // 100, 200, ... 900 at indices 1..9

	// HundredExact replaces Hundreds[1] when the value is exactly 100
	// (pt: "cem" vs "cento e ...").
	HundredExact string

	// GroupSep joins the hundreds word with the tens/units remainder
	// ("one hundred and five").
	GroupSep string
	// TensUnitsSep joins a tens word with a unit ("twenty-one" / "vinte e um").
	TensUnitsSep string
	// FinalConj joins higher groups with a trailing sub-hundred remainder
	// ("one thousand and five").
	FinalConj string
	// ConjBeforeHundreds extends FinalConj to exact-hundreds remainders
	// (pt: "mil e cem", "dois mil e trezentos").
	ConjBeforeHundreds bool

	// Scales are ordered largest first.
	Scales []Scale
	// OmitOneThousand drops the unit multiplier before the thousand word
	// (pt: "mil", never "um mil").
	OmitOneThousand bool

	// Currency tables.
	CurrencySingular string
	CurrencyPlural   string
	CentSingular     string
	CentPlural       string
	AmountConj       string // joins the integer and fractional clauses

	// Clock templates. The %s placeholder receives the hour words.
	OnHourSingular string
	OnHourPlural   string
	QuarterPast    string
	HalfPast       string
	QuarterTo      string
	ClockFallback  string // %[1]s hour words, %[2]s minute words
	// MinutePad prefixes single-digit minutes in the fallback form
	// ("three oh five").
	MinutePad string
	// FeminineHours overrides hour words where the language genders them
	// (pt: "uma hora", "duas horas").
	FeminineHours map[int]string
}

// EnglishUS is the default locale: US dollars with British-style "and"
// insertion between hundreds and the remainder.
var EnglishUS = &Locale{
	Tag:      language.AmericanEnglish,
	Zero:     "zero",
	Negative: "minus",
	Units: [20]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven",
		"eight", "nine", "ten", "eleven", "twelve", "thirteen", "fourteen",
		"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	},
	Tens: [10]string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
		"eighty", "ninety",
	},
	Hundreds: [10]string{
		"", "one hundred", "two hundred", "three hundred", "four hundred",
		"five hundred", "six hundred", "seven hundred", "eight hundred",
		"nine hundred",
	},
	HundredExact: "one hundred",
	GroupSep:     " and ",
	TensUnitsSep: "-",
	FinalConj:    " and ",
	Scales: []Scale{
		{Value: 1_000_000_000, Singular: "billion", Plural: "billion"},
		{Value: 1_000_000, Singular: "million", Plural: "million"},
		{Value: 1_000, Singular: "thousand", Plural: "thousand"},
	},
	CurrencySingular: "dollar",
	CurrencyPlural:   "dollars",
	CentSingular:     "cent",
	CentPlural:       "cents",
	AmountConj:       " and ",
	OnHourSingular:   "%s o'clock",
	OnHourPlural:     "%s o'clock",
	QuarterPast:      "quarter past %s",
	HalfPast:         "half past %s",
	QuarterTo:        "quarter to %s",
	ClockFallback:    "%[1]s %[2]s",
	MinutePad:        "oh ",
}

// BrazilianPortuguese covers reais and centavos, including the cem/cento
// split and the bare "mil".
var BrazilianPortuguese = &Locale{
	Tag:      language.BrazilianPortuguese,
	Zero:     "zero",
	Negative: "menos",
	Units: [20]string{
		"zero", "um", "dois", "três", "quatro", "cinco", "seis", "sete",
		"oito", "nove", "dez", "onze", "doze", "treze", "quatorze",
		"quinze", "dezesseis", "dezessete", "dezoito", "dezenove",
	},
	Tens: [10]string{
		"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta",
		"setenta", "oitenta", "noventa",
	},
	Hundreds: [10]string{
		"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos",
		"seiscentos", "setecentos", "oitocentos", "novecentos",
	},
	HundredExact:       "cem",
	GroupSep:           " e ",
	TensUnitsSep:       " e ",
	FinalConj:          " e ",
	ConjBeforeHundreds: true,
	Scales: []Scale{
		{Value: 1_000_000_000, Singular: "bilhão", Plural: "bilhões"},
		{Value: 1_000_000, Singular: "milhão", Plural: "milhões"},
		{Value: 1_000, Singular: "mil", Plural: "mil"},
	},
	OmitOneThousand:  true,
	CurrencySingular: "real",
	CurrencyPlural:   "reais",
	CentSingular:     "centavo",
	CentPlural:       "centavos",
	AmountConj:       " e ",
	OnHourSingular:   "%s hora",
	OnHourPlural:     "%s horas",
	QuarterPast:      "%s e quinze",
	HalfPast:         "%s e meia",
	QuarterTo:        "quinze para as %s",
	ClockFallback:    "%[1]s e %[2]s",
	FeminineHours:    map[int]string{1: "uma", 2: "duas"},
}

var locales = map[string]*Locale{
	"en-US": EnglishUS,
	"pt-BR": BrazilianPortuguese,
}

// Lookup resolves a BCP 47 tag to a registered locale. Unknown or
// unparseable tags fall back to EnglishUS.
func Lookup(tag string) *Locale {
	if loc, ok := locales[tag]; ok {
		return loc
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return EnglishUS
	}
	for _, loc := range locales {
		if loc.Tag == parsed {
			return loc
		}
	}
	// Match on the base language so "pt" finds pt-BR.
	base, _ := parsed.Base()
	for _, loc := range locales {
		if lb, _ := loc.Tag.Base(); lb == base {
			return loc
		}
	}
	return EnglishUS
}

// Tags returns the BCP 47 tags of all registered locales.
func Tags() []string {
	tags := make([]string, 0, len(locales))
	for tag := range locales {
		tags = append(tags, tag)
	}
	return tags
}
