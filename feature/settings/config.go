package settings

// Config holds configuration for profile document discovery.
type Config struct {
	// Dir is the profile directory. Empty means ~/.config/dconf-apply.
	Dir string `mapstructure:"dir" default:""`
	// Extension is the file suffix selecting profile documents.
	Extension string `mapstructure:"extension" default:".ini.jinja"`
}
