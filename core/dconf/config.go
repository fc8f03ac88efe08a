package dconf

// Config holds configuration for the dconf command-line client.
type Config struct {
	// Binary is the name or path of the dconf executable.
	Binary string `mapstructure:"binary" default:"dconf"`
	// TimeoutSeconds is the per-invocation timeout for dconf calls.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
