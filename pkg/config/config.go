// Package config loads the process configuration from flags, environment,
// an optional config file and a .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to every environment variable, e.g. EMPLOYEES_SERVER_PORT
const EnvPrefix = "EMPLOYEES"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	DSN          string
	User         string
	Password     string
	Host         string
	Port         int
	Name         string
	Pooled       bool
	MaxConns     int32
	QueryTimeout time.Duration
}

type LogConfig struct {
	Production bool
	Level      string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Addr returns the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// ConnString returns DSN when set, otherwise a postgres URL built from the
// discrete connection fields.
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	return u.String()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "postgres")
	v.SetDefault("database.pooled", true)
	v.SetDefault("database.max_conns", 0)
	v.SetDefault("database.query_timeout", time.Duration(0))
	v.SetDefault("log.production", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// NewFlagSet declares the command line flags understood by Load
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file path (yaml, toml, json or env)")
	fs.String("env-file", ".env", "dotenv file loaded into the environment if present")
	fs.IntP("port", "p", 3000, "HTTP listen port")
	fs.String("dsn", "", "PostgreSQL connection string")
	fs.Bool("pooled", true, "share a connection pool instead of connecting per request")
	fs.Bool("log-production", false, "use JSON production logging")
	fs.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	return fs
}

// Load parses args with the flag set from NewFlagSet and resolves the final
// configuration. It returns pflag.ErrHelp when --help was requested.
func Load(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile, _ := flags.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	flagKeys := map[string]string{
		"port":           "server.port",
		"dsn":            "database.dsn",
		"pooled":         "database.pooled",
		"log-production": "log.production",
		"log-level":      "log.level",
	}
	for flagName, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			DSN:          v.GetString("database.dsn"),
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			Host:         v.GetString("database.host"),
			Port:         v.GetInt("database.port"),
			Name:         v.GetString("database.name"),
			Pooled:       v.GetBool("database.pooled"),
			MaxConns:     v.GetInt32("database.max_conns"),
			QueryTimeout: v.GetDuration("database.query_timeout"),
		},
		Log: LogConfig{
			Production: v.GetBool("log.production"),
			Level:      v.GetString("log.level"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
	}
}

// Validate checks the values that would otherwise fail late at startup
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.DSN == "" && (c.Database.Port < 1 || c.Database.Port > 65535) {
		return fmt.Errorf("database.port %d out of range", c.Database.Port)
	}
	if c.Database.MaxConns < 0 {
		return fmt.Errorf("database.max_conns cannot be negative")
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("database.query_timeout cannot be negative")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
