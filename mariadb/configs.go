package mariadb

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config represents the configuration for a MariaDB/MySQL database
// connection: the connection parameters and the pool settings.
type Config struct {
	// Connection contains the parameters needed to establish a connection
	Connection Connection `yaml:"connection"`

	// ConnectionDetails controls the pool and health checking
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection holds the parameters used to build the DSN.
type Connection struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password" json:"-"` //nolint:gosec
	DbName   string `yaml:"db_name"`

	// Charset is the connection character set.
	// Default: utf8mb4
	Charset string `yaml:"charset"`

	// Loc is the time zone DATETIME values are parsed in, as accepted by
	// time.LoadLocation. DATE and DATETIME columns are always parsed into
	// time.Time.
	// Default: UTC
	Loc string `yaml:"loc"`

	// TLS is "true", "false", "skip-verify", "preferred" or the name of a
	// config registered with mysql.RegisterTLSConfig.
	TLS string `yaml:"tls"`

	// Timeout bounds dialing.
	// Default: 5s
	Timeout time.Duration `yaml:"timeout"`

	// ReadTimeout and WriteTimeout bound socket I/O; 0 disables them.
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DSN formats the connection for go-sql-driver/mysql.
func (c Connection) DSN() (string, error) {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, c.Port)
	cfg.DBName = c.DbName
	cfg.ParseTime = true
	cfg.TLSConfig = c.TLS
	cfg.ReadTimeout = c.ReadTimeout
	cfg.WriteTimeout = c.WriteTimeout

	cfg.Timeout = c.Timeout
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConnectTimeout
	}

	if c.Loc != "" {
		loc, err := time.LoadLocation(c.Loc)
		if err != nil {
			return "", fmt.Errorf("invalid loc %q: %w", c.Loc, err)
		}
		cfg.Loc = loc
	}

	// parseTime is always set, so the DSN already has a query string.
	charset := c.Charset
	if charset == "" {
		charset = DefaultCharset
	}
	return cfg.FormatDSN() + "&charset=" + url.QueryEscape(charset), nil
}

// ConnectionDetails holds the pool settings. Zero fields fall back to the
// package defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	// HealthCheckInterval is how often MonitorConnection pings the database.
	HealthCheckInterval time.Duration `yaml:"health_check_interval"`
}

// Package defaults for zero configuration fields.
const (
	DefaultCharset             = "utf8mb4"
	DefaultMaxOpenConns        = 50
	DefaultMaxIdleConns        = 25
	DefaultConnMaxLifetime     = time.Minute
	DefaultHealthCheckInterval = 10 * time.Second
	DefaultConnectTimeout      = 5 * time.Second
)

func (d ConnectionDetails) withDefaults() ConnectionDetails {
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = DefaultMaxOpenConns
	}
	if d.MaxIdleConns <= 0 {
		d.MaxIdleConns = DefaultMaxIdleConns
	}
	if d.ConnMaxLifetime <= 0 {
		d.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if d.HealthCheckInterval <= 0 {
		d.HealthCheckInterval = DefaultHealthCheckInterval
	}
	return d
}
