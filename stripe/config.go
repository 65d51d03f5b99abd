package stripe

import "fmt"

// Config holds the Stripe configuration. Both values come from the process
// configuration at startup; the API key is never embedded as a literal.
type Config struct {
	APIKey        string `yaml:"api_key" json:"api_key"`
	WebhookSecret string `yaml:"webhook_secret" json:"webhook_secret"`
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("stripe config is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("stripe API key is required")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("stripe webhook secret is required")
	}
	return nil
}
