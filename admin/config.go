package admin

import "time"

// Config holds admin authentication settings.
type Config struct {
	PasswordFile string        `yaml:"password_file" default:".admin-password"`
	SessionTTL   time.Duration `yaml:"session_ttl"   default:"1h"`
}
