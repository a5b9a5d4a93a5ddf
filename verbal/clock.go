package verbal

import "fmt"

// ClockWords renders a wall-clock time as spoken words. The hour is folded
// onto a 12-hour dial. Minutes 0, 15, 30 and 45 get the locale's idiomatic
// phrasing; everything else composes hour and minute words.
func ClockWords(loc *Locale, hour, minute int) string {
	if loc == nil {
		loc = EnglishUS
	}
	hour = ((hour % 24) + 24) % 24
	minute = ((minute % 60) + 60) % 60

	switch minute {
	case 0:
		h := dialHour(hour)
		tmpl := loc.OnHourPlural
		if h == 1 {
			tmpl = loc.OnHourSingular
		}
		return fmt.Sprintf(tmpl, hourWords(loc, h))
	case 15:
		return fmt.Sprintf(loc.QuarterPast, hourWords(loc, dialHour(hour)))
	case 30:
		return fmt.Sprintf(loc.HalfPast, hourWords(loc, dialHour(hour)))
	case 45:
		return fmt.Sprintf(loc.QuarterTo, hourWords(loc, dialHour(hour+1)))
	}

	minutes := CardinalWords(loc, int64(minute))
	if minute < 10 && loc.MinutePad != "" {
		minutes = loc.MinutePad + minutes
	}
	return fmt.Sprintf(loc.ClockFallback, hourWords(loc, dialHour(hour)), minutes)
}

// dialHour folds a 24-hour value onto the 1..12 dial.
func dialHour(hour int) int {
	h := hour % 12
	if h == 0 {
		return 12
	}
	return h
}

func hourWords(loc *Locale, h int) string {
	if w, ok := loc.FeminineHours[h]; ok {
		return w
	}
	return CardinalWords(loc, int64(h))
}
