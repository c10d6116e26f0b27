package config

import (
	"fmt"
	"strings"

	"depman/internal/events"
	"depman/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks the log level and every message template override.
func Validate(cfg DepmanConfig) error {
	var errs ValidationErrors

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs.Add("logging.level", err.Error(), cfg.Logging.Level)
	}

	known := make(map[string]bool, len(events.AllReasons))
	for _, r := range events.AllReasons {
		known[string(r)] = true
	}

	engine := events.NewMessageTemplateEngine()
	for reason, text := range cfg.Output.Messages {
		field := "output.messages." + reason
		if !known[reason] {
			errs.Add(field, "unknown event reason", reason)
			continue
		}
		if err := engine.SetTemplate(events.EventReason(reason), text); err != nil {
			errs.Add(field, err.Error(), text)
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// MessageEngine builds a template engine with the configured overrides applied.
func (c DepmanConfig) MessageEngine() (*events.MessageTemplateEngine, error) {
	engine := events.NewMessageTemplateEngine()
	for reason, text := range c.Output.Messages {
		if err := engine.SetTemplate(events.EventReason(reason), text); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// LogLevel returns the configured log level, defaulting to info when unparsable.
func (c DepmanConfig) LogLevel() logging.LogLevel {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}
