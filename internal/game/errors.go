package game

import "errors"

// ErrNoPuzzles is the fatal startup precondition: there is nothing to play.
var ErrNoPuzzles = errors.New("no puzzles configured")

// ConfigError reports a session that cannot be started because of bad setup.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "game config: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }
