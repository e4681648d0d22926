package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be between 4 and 31 (got %d)", c.Auth.PasswordHashCost)
	}

	if c.Catalog.ListLimit <= 0 {
		return fmt.Errorf("catalog.list_limit must be > 0 (got %d)", c.Catalog.ListLimit)
	}
	if c.Catalog.MaxPriceEntries <= 0 {
		return fmt.Errorf("catalog.max_price_entries must be > 0 (got %d)", c.Catalog.MaxPriceEntries)
	}

	if c.AI.Enabled() && c.AI.Model == "" {
		return fmt.Errorf("ai.model must be set when ai.api_key is configured")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be > 0 (got %v)", c.AI.Timeout)
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.AIRequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.ai_requests_per_minute must be > 0 (got %d)", c.RateLimit.AIRequestsPerMinute)
	}

	return nil
}
