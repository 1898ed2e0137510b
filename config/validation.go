package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

type requirement struct {
	field string
	value func(*Config) string
}

var (
	baseRequirements = []requirement{
		{"SERVER_PORT", func(c *Config) string { return c.ServerPort }},
		{"DB_HOST", func(c *Config) string { return c.DBHost }},
		{"DB_PORT", func(c *Config) string { return c.DBPort }},
		{"DB_NAME", func(c *Config) string { return c.DBName }},
		{"DB_USER", func(c *Config) string { return c.DBUser }},
	}

	// Environment-specific requirements on top of the base set
	requirements = map[Environment][]requirement{
		Development: nil,
		Test:        nil,
		CI: {
			{"DB_PASSWORD", func(c *Config) string { return c.DBPassword }},
		},
		Production: {
			{"db_password", func(c *Config) string { return c.DBPassword }},
			{"LLM_API_KEY", func(c *Config) string { return c.LLMAPIKey }},
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	var errs ValidationErrors
	reqs := append(append([]requirement{}, baseRequirements...), requirements[cfg.Environment]...)
	for _, r := range reqs {
		if strings.TrimSpace(r.value(cfg)) == "" {
			errs = append(errs, ValidationError{Field: r.field, Message: "is required"})
		}
	}

	if cfg.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "must not be negative"})
	}
	if cfg.LLMTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "LLM_TIMEOUT", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
