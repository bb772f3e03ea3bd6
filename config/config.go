// Package config loads spftool settings from an optional dotenv file and the
// process environment.
//
// Keys in the file are written bare (RECURSION_LIMIT=3); in the environment
// they carry the SPFTOOL_ prefix (SPFTOOL_RECURSION_LIMIT=3). The
// environment wins over the file, and both win over the defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/synqronlabs/spftool/dns"
)

// EnvPrefix is prepended to every key looked up in the environment.
const EnvPrefix = "SPFTOOL"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Resolver backends.
const (
	ResolverMiekg = "miekg"
	ResolverStd   = "std"
)

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

type Config struct {
	// Nameservers overrides /etc/resolv.conf. Entries without a port get :53.
	Nameservers []string      `mapstructure:"nameservers"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Retries     int           `mapstructure:"retries"`
	DNSSEC      bool          `mapstructure:"dnssec"`
	Resolver    string        `mapstructure:"resolver"` // miekg, std

	RecursionLimit int `mapstructure:"recursion_limit"`
	WarnThreshold  int `mapstructure:"warn_threshold"`

	LogLevel  string `mapstructure:"log_level"`  // debug, info, warn, error
	LogFormat string `mapstructure:"log_format"` // text, json
	Format    string `mapstructure:"format"`     // text, json, msgpack
}

// Load reads path, if it exists, then overlays the environment. An empty
// path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	cfg.Nameservers = splitList(cfg.Nameservers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("nameservers", []string{})
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("retries", 2)
	v.SetDefault("dnssec", false)
	v.SetDefault("resolver", ResolverMiekg)

	v.SetDefault("recursion_limit", 5)
	v.SetDefault("warn_threshold", 10)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("format", FormatText)
}

// Default returns the configuration Load yields with no file and a clean
// environment.
func Default() *Config {
	return &Config{
		Timeout:        5 * time.Second,
		Retries:        2,
		Resolver:       ResolverMiekg,
		RecursionLimit: 5,
		WarnThreshold:  10,
		LogLevel:       "info",
		LogFormat:      "text",
		Format:         FormatText,
	}
}

// splitList flattens comma and space separated entries.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		out = append(out, strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })...)
	}
	return out
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must not be negative, got %d", ErrInvalidConfig, c.Retries)
	}
	switch c.Resolver {
	case ResolverMiekg, ResolverStd:
	default:
		return fmt.Errorf("%w: unknown resolver %q", ErrInvalidConfig, c.Resolver)
	}
	if c.RecursionLimit < 0 {
		return fmt.Errorf("%w: recursion_limit must not be negative, got %d", ErrInvalidConfig, c.RecursionLimit)
	}
	if c.WarnThreshold < 0 {
		return fmt.Errorf("%w: warn_threshold must not be negative, got %d", ErrInvalidConfig, c.WarnThreshold)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatMsgpack:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}

// NewResolver builds the DNS gateway selected by Resolver.
func (c *Config) NewResolver() dns.Resolver {
	if c.Resolver == ResolverStd {
		if len(c.Nameservers) == 0 {
			return dns.NewStdResolver()
		}
		return dns.NewStdResolverWithDialer(stdDial(c.Nameservers, c.Timeout))
	}
	return dns.NewResolver(dns.ResolverConfig{
		Nameservers: c.Nameservers,
		DNSSEC:      c.DNSSEC,
		Timeout:     c.Timeout,
		Retries:     c.Retries,
	})
}

// stdDial returns a dial function for net.Resolver that ignores the address
// from /etc/resolv.conf and tries servers in order.
func stdDial(servers []string, timeout time.Duration) func(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: timeout}
	addrs := make([]string, 0, len(servers))
	for _, s := range servers {
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(strings.Trim(s, "[]"), "53")
		}
		addrs = append(addrs, s)
	}

	return func(ctx context.Context, network, _ string) (net.Conn, error) {
		var lastErr error
		for _, addr := range addrs {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		return nil, lastErr
	}
}

// Logger returns a slog logger writing to w in LogFormat at LogLevel.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log_level %q", s)
	}
	return level, nil
}
