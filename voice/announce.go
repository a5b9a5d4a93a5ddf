package voice

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/internal/dedup"
	"github.com/dgnsrekt/finvox/verbal"
)

// Feature keys for session-scoped announcement dedup.
const (
	featDashboardGreeting = "dashboard_greeting"
	featPaymentReminder   = "payment_reminder" // suffixed with the payee
)

// phrases holds the per-language message templates the facade composes
// announcements from. Number, amount and time words come from the verbal
// package; these are just the surrounding prose.
type phrases struct {
	goodMorning   string
	goodAfternoon string
	goodEvening   string
	balanceIs     string // fmt: amount words
	transaction   string // fmt: kind, amount words
	reminder      string // fmt: payee, amount words, time words
	reminderNoDue string // fmt: payee, amount words
}

var phrasesByLang = map[string]phrases{
	"en": {
		goodMorning:   "Good morning, %s.",
		goodAfternoon: "Good afternoon, %s.",
		goodEvening:   "Good evening, %s.",
		balanceIs:     "Your current balance is %s.",
		transaction:   "Transaction confirmed. %s of %s.",
		reminder:      "Payment reminder for %s. %s due at %s.",
		reminderNoDue: "Payment reminder for %s. %s due today.",
	},
	"pt": {
		goodMorning:   "Bom dia, %s.",
		goodAfternoon: "Boa tarde, %s.",
		goodEvening:   "Boa noite, %s.",
		balanceIs:     "Seu saldo atual é de %s.",
		transaction:   "Transação confirmada. %s de %s.",
		reminder:      "Lembrete de pagamento para %s. %s com vencimento às %s.",
		reminderNoDue: "Lembrete de pagamento para %s. %s com vencimento hoje.",
	},
}

// Announcer is the per-feature entry point for voice notifications. It
// composes messages through the verbal package, consults the dedup tracker,
// and submits speech to the queue, or directly to the channel for sounds
// that must take over immediately.
type Announcer struct {
	queue   *Queue
	channel *Channel
	tracker *dedup.Tracker
	locale  *verbal.Locale
	words   phrases
	limiter *rate.Limiter
	now     func() time.Time

	mu       sync.Mutex
	enabled  bool
	lastText string
}

// AnnouncerOption configures an Announcer.
type AnnouncerOption func(*Announcer)

// WithAnnouncerClock overrides the time source, for tests.
func WithAnnouncerClock(now func() time.Time) AnnouncerOption {
	return func(a *Announcer) { a.now = now }
}

// NewAnnouncer creates the facade. The locale in cfg selects the language
// for both the verbalizer and the surrounding message templates.
func NewAnnouncer(queue *Queue, channel *Channel, tracker *dedup.Tracker, cfg Config, opts ...AnnouncerOption) *Announcer {
	loc := verbal.Lookup(cfg.Locale)
	words, ok := phrasesByLang[baseLang(loc.Tag)]
	if !ok {
		words = phrasesByLang["en"]
	}
	perMinute := cfg.AlertsPerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	a := &Announcer{
		queue:   queue,
		channel: channel,
		tracker: tracker,
		locale:  loc,
		words:   words,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		now:     time.Now,
		enabled: cfg.Enabled,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func baseLang(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// LastComposed returns the text of the most recently submitted announcement.
func (a *Announcer) LastComposed() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastText
}

func (a *Announcer) recordText(text string) {
	a.mu.Lock()
	a.lastText = text
	a.mu.Unlock()
}

// Enabled reports whether voice notifications are active.
func (a *Announcer) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetEnabled turns voice notifications on or off. Disabling silences
// everything immediately. Re-enabling clears the session announcement flags
// so each feature may announce once more, without re-triggering the
// once-per-day or once-per-login items.
func (a *Announcer) SetEnabled(on bool) {
	a.mu.Lock()
	if a.enabled == on {
		a.mu.Unlock()
		return
	}
	a.enabled = on
	a.mu.Unlock()

	if on {
		a.tracker.ResetForReenable()
		return
	}
	a.queue.StopAllVoice()
}

// AnnounceGreeting speaks the dashboard greeting, once per tab session. On
// the first access of the calendar day the greeting also reads the current
// balance aloud. Dedup flags are only marked after the greeting has actually
// been spoken, so an interrupted greeting may retry on the next mount.
func (a *Announcer) AnnounceGreeting(name string, balance float64) {
	if !a.Enabled() {
		return
	}
	if a.tracker.SessionAnnounced(featDashboardGreeting) {
		return
	}

	text := a.greetingFor(a.now().Hour(), name)
	firstToday := !a.tracker.GreetedToday()
	if firstToday {
		text += " " + fmt.Sprintf(a.words.balanceIs, verbal.AmountWords(a.locale, balance))
	}

	a.recordText(text)
	_, err := a.queue.Enqueue(text, PriorityHigh, func() {
		a.tracker.MarkSessionAnnounced(featDashboardGreeting)
		if firstToday {
			a.tracker.MarkGreetedToday()
		}
	})
	if err != nil {
		log.Warn("greeting not enqueued", "err", err)
	}
}

func (a *Announcer) greetingFor(hour int, name string) string {
	switch {
	case hour < 12:
		return fmt.Sprintf(a.words.goodMorning, name)
	case hour < 18:
		return fmt.Sprintf(a.words.goodAfternoon, name)
	default:
		return fmt.Sprintf(a.words.goodEvening, name)
	}
}

// AnnounceTransaction confirms a completed transaction aloud. Every
// transaction is announced; there is no dedup here.
func (a *Announcer) AnnounceTransaction(kind string, amount float64) {
	if !a.Enabled() {
		return
	}
	text := fmt.Sprintf(a.words.transaction, kind, verbal.AmountWords(a.locale, amount))
	a.recordText(text)
	if _, err := a.queue.Enqueue(text, PriorityNormal, nil); err != nil {
		log.Warn("transaction not enqueued", "err", err)
	}
}

// AnnouncePaymentReminder speaks an upcoming payment, once per payee per tab
// session. A zero due time phrases the reminder as due today without a
// specific hour.
func (a *Announcer) AnnouncePaymentReminder(payee string, amount float64, due time.Time) {
	if !a.Enabled() {
		return
	}
	key := featPaymentReminder + ":" + payee
	if a.tracker.SessionAnnounced(key) {
		return
	}

	amountWords := verbal.AmountWords(a.locale, amount)
	var text string
	if due.IsZero() {
		text = fmt.Sprintf(a.words.reminderNoDue, payee, amountWords)
	} else {
		text = fmt.Sprintf(a.words.reminder, payee, amountWords,
			verbal.ClockWords(a.locale, due.Hour(), due.Minute()))
	}

	a.recordText(text)
	_, err := a.queue.Enqueue(text, PriorityNormal, func() {
		a.tracker.MarkSessionAnnounced(key)
	})
	if err != nil {
		log.Warn("payment reminder not enqueued", "err", err)
	}
}

// AnnounceRoutineAlert speaks low-priority periodic status text. Alerts are
// rate limited; excess alerts within the window are dropped, not deferred.
func (a *Announcer) AnnounceRoutineAlert(text string) {
	if !a.Enabled() {
		return
	}
	if !a.limiter.Allow() {
		log.Debug("routine alert rate limited", "text", text)
		return
	}
	a.recordText(text)
	if _, err := a.queue.Enqueue(text, PriorityLow, nil); err != nil {
		log.Warn("routine alert not enqueued", "err", err)
	}
}

// PlayLoginJingle plays the one-shot login clip directly on the channel,
// bypassing the queue, at most once per tab session. Blocks until the clip
// finishes or is superseded.
func (a *Announcer) PlayLoginJingle(clip *audio.Clip) {
	if !a.Enabled() || clip == nil {
		return
	}
	if a.tracker.LoginClipPlayed() {
		return
	}
	if a.channel.PlayClip(clip) {
		a.tracker.MarkLoginClipPlayed()
	}
}

// StopAll is the global panic button: drops pending announcements and
// silences the channel. Used on logout and on navigation away.
func (a *Announcer) StopAll() {
	a.queue.StopAllVoice()
}

// Logout clears the tab-session announcement flags and silences everything.
// The daily greeting flag survives deliberately.
func (a *Announcer) Logout() {
	a.queue.StopAllVoice()
	a.tracker.ClearSession()
}
