// Package config loads application configuration from environment variables
// into tagged structs, wrapping github.com/joho/godotenv and
// github.com/caarlos0/env/v11.
//
// Each configuration type is parsed once per process and cached, so every
// package can call Load for its own Config struct without coordinating
// startup order.
//
// # Usage
//
//	type Config struct {
//	    CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"_my_session_id"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
package config
