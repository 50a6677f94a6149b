package retry

import (
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts  = 3
	defaultDelay     = 200 * time.Millisecond
	defaultMaxDelay  = 5 * time.Second
	defaultMaxJitter = 100 * time.Millisecond
)

type RetryConfig struct {
	Attempts  uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay     time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay  time.Duration `env:"MAX_DELAY" envDefault:"5s"`
	MaxJitter time.Duration `env:"MAX_JITTER" envDefault:"100ms"`
}

// ToRetryOptions builds retry-go options with exponential backoff and
// random jitter between attempts.
func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.MaxJitter(rc.MaxJitter),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts:  defaultAttempts,
		Delay:     defaultDelay,
		MaxDelay:  defaultMaxDelay,
		MaxJitter: defaultMaxJitter,
	}
}
