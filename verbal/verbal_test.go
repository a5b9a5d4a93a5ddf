package verbal

import "testing"

func TestCardinalWordsEnglish(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{1, "one"},
		{13, "thirteen"},
		{19, "nineteen"},
		{20, "twenty"},
		{21, "twenty-one"},
		{100, "one hundred"},
		{101, "one hundred and one"},
		{115, "one hundred and fifteen"},
		{342, "three hundred and forty-two"},
		{900, "nine hundred"},
		{1000, "one thousand"},
		{1005, "one thousand and five"},
		{1100, "one thousand one hundred"},
		{1200, "one thousand two hundred"},
		{2345, "two thousand three hundred and forty-five"},
		{1000000, "one million"},
		{1000001, "one million and one"},
		{2500000, "two million five hundred thousand"},
		{-42, "minus forty-two"},
	}

	for _, tt := range tests {
		if got := CardinalWords(EnglishUS, tt.n); got != tt.want {
			t.Errorf("CardinalWords(en, %d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCardinalWordsPortuguese(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{15, "quinze"},
		{21, "vinte e um"},
		{100, "cem"},
		{101, "cento e um"},
		{200, "duzentos"},
		{342, "trezentos e quarenta e dois"},
		{1000, "mil"},
		{1005, "mil e cinco"},
		{1100, "mil e cem"},
		{1150, "mil cento e cinquenta"},
		{2000, "dois mil"},
		{2300, "dois mil e trezentos"},
		{1000000, "um milhão"},
		{2000000, "dois milhões"},
		{-7, "menos sete"},
	}

	for _, tt := range tests {
		if got := CardinalWords(BrazilianPortuguese, tt.n); got != tt.want {
			t.Errorf("CardinalWords(pt, %d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestAmountWordsEnglish(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "zero dollars"},
		{1.00, "one dollar"},
		{2.00, "two dollars"},
		{0.01, "one cent"},
		{0.50, "fifty cents"},
		{1.01, "one dollar and one cent"},
		{12.34, "twelve dollars and thirty-four cents"},
		{1000000, "one million dollars"},
		{-5.50, "minus five dollars and fifty cents"},
	}

	for _, tt := range tests {
		if got := AmountWords(EnglishUS, tt.value); got != tt.want {
			t.Errorf("AmountWords(en, %v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestAmountWordsPortuguese(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "zero reais"},
		{1.00, "um real"},
		{2.50, "dois reais e cinquenta centavos"},
		{0.01, "um centavo"},
		{1001, "mil e um reais"},
		{-3.25, "menos três reais e vinte e cinco centavos"},
	}

	for _, tt := range tests {
		if got := AmountWords(BrazilianPortuguese, tt.value); got != tt.want {
			t.Errorf("AmountWords(pt, %v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestClockWordsSpecialMinutes(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{3, 0, "three o'clock"},
		{13, 0, "one o'clock"},
		{3, 15, "quarter past three"},
		{3, 30, "half past three"},
		{3, 45, "quarter to four"},
		{12, 45, "quarter to one"},
		{3, 20, "three twenty"},
		{3, 5, "three oh five"},
	}

	for _, tt := range tests {
		if got := ClockWords(EnglishUS, tt.hour, tt.minute); got != tt.want {
			t.Errorf("ClockWords(en, %d:%02d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestClockWordsPortuguese(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{1, 0, "uma hora"},
		{2, 0, "duas horas"},
		{3, 0, "três horas"},
		{3, 30, "três e meia"},
		{3, 45, "quinze para as quatro"},
		{3, 20, "três e vinte"},
	}

	for _, tt := range tests {
		if got := ClockWords(BrazilianPortuguese, tt.hour, tt.minute); got != tt.want {
			t.Errorf("ClockWords(pt, %d:%02d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestLookupFallsBackToEnglish(t *testing.T) {
	if Lookup("xx-YY") != EnglishUS {
		t.Error("unknown tag should fall back to en-US")
	}
	if Lookup("pt") != BrazilianPortuguese {
		t.Error("base language pt should resolve to pt-BR")
	}
	if Lookup("en-US") != EnglishUS {
		t.Error("exact tag lookup failed")
	}
}
