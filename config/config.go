package config

import (
	"fmt"
	"os"
)

// Config holds everything the server needs from the environment. It is
// built once in main and handed to collaborators at construction time;
// no package reads env vars on its own.
type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTSecret       []byte
	StripeSecretKey string
	RedisAddr       string

	MailHost        string
	MailPort        int
	MailUser        string
	MailAppPassword string
	OperatorInbox   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", ":5000"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:          getenv("DB_NAME", "care-camps"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		MailHost:        getenv("MAIL_HOST", "smtp.gmail.com"),
		MailPort:        587,
		MailUser:        os.Getenv("MAIL_USER"),
		MailAppPassword: os.Getenv("MAIL_APP_PASSWORD"),
		OperatorInbox:   getenv("OPERATOR_INBOX", os.Getenv("MAIL_USER")),
	}

	secret := os.Getenv("ACCESS_TOKEN_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
