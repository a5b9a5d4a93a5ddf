package voice

import (
	"errors"
	"time"
)

// Common errors for the voice system.
var (
	// Engine errors
	ErrEngineNotAvailable       = errors.New("speech engine is not available")
	ErrEngineNotInitialized     = errors.New("speech engine is not initialized")
	ErrEngineAlreadyInitialized = errors.New("speech engine is already initialized")
	ErrVoiceNotFound            = errors.New("requested voice not found")
	ErrSynthesisFailed          = errors.New("speech synthesis failed")
	ErrEngineShutdown           = errors.New("engine has been shut down")

	// Queue errors
	ErrInvalidPriority = errors.New("priority must be non-negative")

	// Channel errors
	ErrChannelClosed = errors.New("audio channel has been closed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("required configuration missing")
)

// IsRecoverableError checks if an error is recoverable.
func IsRecoverableError(err error) bool {
	if err == nil {
		return true
	}

	// Non-recoverable errors
	switch {
	case errors.Is(err, ErrEngineNotAvailable),
		errors.Is(err, ErrEngineShutdown),
		errors.Is(err, ErrChannelClosed),
		errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrMissingConfig):
		return false
	}

	// Most errors are recoverable
	return true
}

// VoiceError provides detailed error information.
type VoiceError struct {
	Err       error  // The underlying error
	Component string // Component that generated the error
	Action    string // Action being performed when error occurred
	Timestamp int64  // Unix timestamp when error occurred
}

// Error implements the error interface.
func (e *VoiceError) Error() string {
	if e.Err != nil {
		return e.Component + ": " + e.Action + ": " + e.Err.Error()
	}
	return e.Component + ": " + e.Action + ": unknown error"
}

// Unwrap returns the underlying error.
func (e *VoiceError) Unwrap() error {
	return e.Err
}

// IsRecoverable checks if the error is recoverable.
func (e *VoiceError) IsRecoverable() bool {
	return IsRecoverableError(e.Err)
}

// NewVoiceError creates a new voice error with context.
func NewVoiceError(err error, component, action string) *VoiceError {
	return &VoiceError{
		Err:       err,
		Component: component,
		Action:    action,
		Timestamp: time.Now().Unix(),
	}
}
