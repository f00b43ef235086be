package postgres

import (
	"fmt"
	"time"
)

// Config represents the configuration for a PostgreSQL database connection.
// It encapsulates both the basic connection parameters and the connection
// pool settings.
type Config struct {
	// Connection contains the parameters needed to establish a connection
	Connection Connection `yaml:"connection"`

	// ConnectionDetails controls the pool and health checking
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection holds the parameters used to build the connection string.
type Connection struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password" json:"-"` //nolint:gosec
	DbName   string `yaml:"db_name"`

	// SSLMode is "disable", "require", "verify-ca" or "verify-full".
	// Default: disable
	SSLMode string `yaml:"ssl_mode"`

	// ConnectTimeout bounds the initial TCP and authentication handshake.
	// Default: 5s
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// DSN returns the key/value connection string understood by pgx.
func (c Connection) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	timeout := c.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.DbName, sslMode, int(timeout.Seconds()))
}

// ConnectionDetails holds configuration settings for the connection pool.
// Zero fields fall back to the package defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	// HealthCheckInterval is how often MonitorConnection pings the database.
	HealthCheckInterval time.Duration `yaml:"health_check_interval"`
}

// Package defaults for zero configuration fields.
const (
	DefaultMaxOpenConns        = 50
	DefaultMaxIdleConns        = 25
	DefaultConnMaxLifetime     = time.Minute
	DefaultHealthCheckInterval = 10 * time.Second
	DefaultConnectTimeout      = 5 * time.Second
)

func (d ConnectionDetails) withDefaults() ConnectionDetails {
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = DefaultMaxOpenConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = DefaultMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if d.HealthCheckInterval == 0 {
		d.HealthCheckInterval = DefaultHealthCheckInterval
	}
	return d
}
