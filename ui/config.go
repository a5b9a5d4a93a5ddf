package ui

// Config contains TUI-specific configuration, populated from the
// environment.
type Config struct {
	HomeDir         string `env:"HOME"`
	GlamourStyle    string `env:"GLAMOUR_STYLE"`
	GlamourMaxWidth uint

	// Display name used in spoken greetings.
	UserName string `env:"FINVOX_USER_NAME" envDefault:"there"`

	EnableMouse bool `env:"FINVOX_ENABLE_MOUSE" envDefault:"false"`

	// For debugging the UI
	GlamourEnabled bool `env:"FINVOX_ENABLE_GLAMOUR" envDefault:"true"`
}
