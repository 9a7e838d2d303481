package timeline

import "fmt"

// ConfigurationError reports invalid entity or track configuration. It
// is raised eagerly when the bad value is supplied, never deferred to
// resolution time.
type ConfigurationError struct {
	Subject string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Subject, e.Reason)
}

// StateError reports use of the timeline API in the wrong phase:
// mutation after finalize, or resolution before finalize.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error: %s: %s", e.Op, e.Reason)
}

func configErrf(subject, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}
