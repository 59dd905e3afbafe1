package telegram

import "fmt"

// ConfigError reports a misconfigured registration. It is returned
// synchronously from registration methods, never from Run, so mistakes
// surface at startup rather than at the first matching message.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "telegram: " + e.Msg
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
