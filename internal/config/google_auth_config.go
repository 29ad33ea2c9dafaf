package config

import "os"

type GGAuthConfig struct {
	// AllowedDomain restricts Google sign-in to one email domain when
	// non-empty.
	AllowedDomain string
}

func NewGGAuthConfig() *GGAuthConfig {
	return &GGAuthConfig{
		AllowedDomain: os.Getenv("GOOGLE_ALLOWED_DOMAIN"),
	}
}
