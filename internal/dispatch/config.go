package dispatch

// DefaultProgressThreshold is the minimum percentage-point delta between two
// emitted progress callbacks.
const DefaultProgressThreshold = 5

type Config struct {
	// ProgressThreshold suppresses progress callbacks until progress exceeds
	// the last emitted value by more than this many percentage points.
	ProgressThreshold int
}

func DefaultConfig() Config {
	return Config{
		ProgressThreshold: DefaultProgressThreshold,
	}
}

func (c Config) WithDefaults() Config {
	if c.ProgressThreshold <= 0 {
		c.ProgressThreshold = DefaultProgressThreshold
	}
	return c
}
