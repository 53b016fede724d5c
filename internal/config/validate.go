package config

import (
	"fmt"
	"strings"

	"github.com/dshills/promptcritic/internal/feedback"
)

// ValidationError describes a single invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Validate checks the config and returns every problem found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, ValidationError{"server.addr", "required"})
	}
	if len(c.Server.CORSOrigins) == 0 {
		errs = append(errs, ValidationError{"server.cors_origins", "at least one origin required"})
	}
	if c.Server.BodyLimitBytes <= 0 {
		errs = append(errs, ValidationError{"server.body_limit_bytes", "must be positive"})
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, ValidationError{"server.shutdown_timeout", "must be positive"})
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, ValidationError{"llm.timeout", "must be positive"})
	}
	if c.RateLimit.PerMinute < 0 {
		errs = append(errs, ValidationError{"rate_limit.per_minute", fmt.Sprintf("must be >= 0 (0 disables), got %d", c.RateLimit.PerMinute)})
	}
	if c.RateLimit.Capacity <= 0 {
		errs = append(errs, ValidationError{"rate_limit.capacity", "must be positive"})
	}
	if c.Feedback.DSN != "" {
		if _, err := feedback.Dialector(c.Feedback.DSN); err != nil {
			errs = append(errs, ValidationError{"feedback.dsn", err.Error()})
		}
	}
	switch strings.ToLower(c.Log.Mode) {
	case "development", "dev", "production", "prod":
	default:
		errs = append(errs, ValidationError{"log.mode", fmt.Sprintf("invalid mode: %q", c.Log.Mode)})
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("invalid level: %q", c.Log.Level)})
	}
	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		errs = append(errs, ValidationError{"telemetry.service_name", "required when telemetry is enabled"})
	}

	return errs
}
