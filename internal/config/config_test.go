package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:              "development",
		Port:             "8460",
		JWTSecret:        "secure-secret-at-least-32-chars-long",
		AccessTokenTTLH:  24 * 7,
		RefreshTokenTTLH: 24 * 30,
		DBPassword:       "secure-password",
		DBSSLMode:        "disable",
		DefaultPageSize:  20,
		MaxPageSize:      100,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Default JWT secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Short JWT secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Weak DB password in production", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Strong production config", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
		{"Zero default page size", func(c *Config) { c.DefaultPageSize = 0 }, true},
		{"Max page size below default", func(c *Config) { c.MaxPageSize = 5 }, true},
		{"Refresh TTL below access TTL", func(c *Config) { c.RefreshTokenTTLH = 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_FeedSources(t *testing.T) {
	c := validConfig()

	c.FeedURLs = ""
	assert.Nil(t, c.FeedSources())

	c.FeedURLs = "https://example.com/rss.xml"
	assert.Equal(t, []string{"https://example.com/rss.xml"}, c.FeedSources())

	c.FeedURLs = " https://a.example/feed , ,https://b.example/feed "
	assert.Equal(t, []string{"https://a.example/feed", "https://b.example/feed"}, c.FeedSources())
}
