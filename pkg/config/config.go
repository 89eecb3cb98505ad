package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/egandro/variance-heatmap/pkg/colormap"
	"github.com/egandro/variance-heatmap/pkg/dataset"
)

const (
	// Logging defaults
	ConstantLogDir      = "/var/log"
	ConstantLogFilename = "variance-heatmap.log"
	ConstantLogFile     = ConstantLogDir + "/" + ConstantLogFilename

	ConstantConfigFilename = "/etc/default/variance-heatmap"

	// Service defaults
	DefaultServicePort         = 8246
	DefaultServiceHost         = "127.0.0.1"
	DefaultInsecureAllowRemote = false

	// logger
	DefaultLogLevel = "info"

	// Dataset defaults
	DefaultDataURL = dataset.DefaultURL
	// DefaultCacheTTL is how long a fetched dataset is served before it is
	// fetched again. The reference dataset is static, so this is generous.
	DefaultCacheTTL     = 1 * time.Hour
	DefaultFetchTimeout = 30 * time.Second

	// Chart defaults
	DefaultTitle = "Monthly Global Land-Surface Temperature"
)

type Config struct {
	ServiceHost         string
	ServicePort         int
	InsecureAllowRemote bool
	LogLevel            string
	LogFile             string
	DataURL             string
	DataFile            string
	CacheTTL            time.Duration
	FetchTimeout        time.Duration
	Ramp                string
	Title               string
}

func (c *Config) Validate() error {
	if !isLocalhostAddr(c.ServiceHost) {
		if !c.InsecureAllowRemote {
			return fmt.Errorf(`binding to non-localhost address %q exposes the service to the network.

If you understand the risks and want to proceed anyway, use:
    --insecure-allow-remote
    or set HM_INSECURE_ALLOW_REMOTE=true`, c.ServiceHost)
		}
		fmt.Fprintf(os.Stderr, "WARNING: Binding to %q - service will be network-accessible!\n", c.ServiceHost)
	}
	if c.ServicePort <= 0 || c.ServicePort > 65535 {
		return fmt.Errorf("invalid service port %d", c.ServicePort)
	}
	if _, err := c.ColorRamp(); err != nil {
		return err
	}
	return nil
}

// ColorRamp parses Ramp. An empty Ramp is the default ramp.
func (c *Config) ColorRamp() (colormap.Ramp, error) {
	if c.Ramp == "" {
		return colormap.DefaultRamp(), nil
	}
	return colormap.ParseRamp(c.Ramp)
}

func isLocalhostAddr(host string) bool {
	switch host {
	case "127.0.0.1", "localhost", "::1", "":
		return true
	}
	return false
}

func Load(filename string) *Config {
	if filename == "" {
		filename = ConstantConfigFilename
	}
	_ = godotenv.Load(filename)

	return &Config{
		ServiceHost:         getEnv("HM_HOST", DefaultServiceHost),
		ServicePort:         getEnvInt("HM_PORT", DefaultServicePort),
		InsecureAllowRemote: getEnvBool("HM_INSECURE_ALLOW_REMOTE", DefaultInsecureAllowRemote),
		LogLevel:            getEnv("HM_LOG_LEVEL", DefaultLogLevel),
		LogFile:             getEnv("HM_LOG_FILE", ConstantLogFile),
		DataURL:             getEnv("HM_DATA_URL", DefaultDataURL),
		DataFile:            getEnv("HM_DATA_FILE", ""),
		CacheTTL:            getEnvDuration("HM_CACHE_TTL", DefaultCacheTTL),
		FetchTimeout:        getEnvDuration("HM_FETCH_TIMEOUT", DefaultFetchTimeout),
		Ramp:                getEnv("HM_RAMP", ""),
		Title:               getEnv("HM_TITLE", DefaultTitle),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if i, err := strconv.Atoi(value); err == nil && i >= 0 && int64(i) <= math.MaxInt64/int64(time.Second) {
		return time.Duration(i) * time.Second
	}
	return fallback
}
