// Package config provides configuration management for dconf-apply.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded via godotenv before binding).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Dconf: dconf binary name and per-call timeout
//   - Profiles: profile document directory and file extension
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Profiles.Dir)
package config
