package config

import "os"

// PostgresConfig configures the optional inference audit log. Auditing is
// disabled when Url is empty.
type PostgresConfig struct {
	Url string
}

func NewPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Url: os.Getenv("AUDIT_DATABASE_URL"),
	}
}

func (c *PostgresConfig) Enabled() bool {
	return c.Url != ""
}
