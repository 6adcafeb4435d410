package config

import "time"

type ServiceConfig struct {
	Name         string `mapstructure:"name"`
	Environment  string `mapstructure:"environment"`
	Version      string `mapstructure:"version"`
	CheckoutURL  string `mapstructure:"checkout_url"`
	SeedDemoData bool   `mapstructure:"seed_demo_data"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// RedisConfig configures the optional cache for public status polling.
// An empty Addr disables the cache entirely.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ProcessingConfig controls the outcome simulator. In test mode the delay
// and outcome are fixed; otherwise the delay is drawn from [MinDelay, MaxDelay]
// and the outcome from the per-method success rates.
type ProcessingConfig struct {
	TestMode    bool          `mapstructure:"test_mode"`
	TestSuccess bool          `mapstructure:"test_success"`
	TestDelay   time.Duration `mapstructure:"test_delay"`

	MinDelay        time.Duration `mapstructure:"min_delay"`
	MaxDelay        time.Duration `mapstructure:"max_delay"`
	UPISuccessRate  float64       `mapstructure:"upi_success_rate"`
	CardSuccessRate float64       `mapstructure:"card_success_rate"`
}

const (
	defaultTestDelay       = 1000 * time.Millisecond
	defaultMinDelay        = 5 * time.Second
	defaultMaxDelay        = 10 * time.Second
	defaultUPISuccessRate  = 0.90
	defaultCardSuccessRate = 0.95
)

// normalize replaces unusable values with the documented defaults. A missing
// test_success key defaults to success via the yaml default in the config file;
// a non-positive test delay always falls back to one second.
func (c *ProcessingConfig) normalize() {
	if c.TestDelay <= 0 {
		c.TestDelay = defaultTestDelay
	}
	if c.MinDelay <= 0 {
		c.MinDelay = defaultMinDelay
	}
	if c.MaxDelay < c.MinDelay {
		c.MaxDelay = defaultMaxDelay
		if c.MaxDelay < c.MinDelay {
			c.MaxDelay = c.MinDelay
		}
	}
	if c.UPISuccessRate <= 0 || c.UPISuccessRate > 1 {
		c.UPISuccessRate = defaultUPISuccessRate
	}
	if c.CardSuccessRate <= 0 || c.CardSuccessRate > 1 {
		c.CardSuccessRate = defaultCardSuccessRate
	}
}
