package conf

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is the env file read on startup when no other file is given
const EnvFile = "marketplace.env"

// default allocation
var (
	ApiUrl      = "http://localhost:3000" //Backend serving /api/collections
	ServerAddr  = ":3000"
	LogLevel    = "info"
	LogFormat   = "json"
	GinMode     = "release"
	RateLimit   = 5.0 //Collection mounts per second per client
	RateBurst   = 10
	AllowOrigin = "*"
)

// Config is the configuration injected into the server and the collection service
type Config struct {
	ApiUrl      string
	ServerAddr  string
	LogLevel    string
	LogFormat   string
	GinMode     string
	RateLimit   float64
	RateBurst   int
	AllowOrigin string

	// EnvLoaded reports whether the env file was found and read
	EnvLoaded bool
}

// Load reads envFile (missing file is not an error) and overrides the defaults with the process environment
func Load(envFile string) (*Config, error) {
	c := &Config{
		ApiUrl:      ApiUrl,
		ServerAddr:  ServerAddr,
		LogLevel:    LogLevel,
		LogFormat:   LogFormat,
		GinMode:     GinMode,
		RateLimit:   RateLimit,
		RateBurst:   RateBurst,
		AllowOrigin: AllowOrigin,
	}
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		c.EnvLoaded = err == nil
	}
	if err := c.setConf(); err != nil {
		return nil, err
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setConf() (err error) {
	if apiUrl := os.Getenv("API_URL"); apiUrl != "" {
		c.ApiUrl = apiUrl
	}
	if serverAddr := os.Getenv("SERVER_ADDR"); serverAddr != "" {
		c.ServerAddr = serverAddr
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.LogLevel = strings.ToLower(logLevel)
	}
	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.LogFormat = strings.ToLower(logFormat)
	}
	if ginMode := os.Getenv("GIN_MODE"); ginMode != "" {
		c.GinMode = ginMode
	}
	if rateLimit := os.Getenv("RATE_LIMIT"); rateLimit != "" {
		c.RateLimit, err = strconv.ParseFloat(rateLimit, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
	}
	if rateBurst := os.Getenv("RATE_BURST"); rateBurst != "" {
		c.RateBurst, err = strconv.Atoi(rateBurst)
		if err != nil {
			return fmt.Errorf("RATE_BURST: %w", err)
		}
	}
	if allowOrigin := os.Getenv("ALLOW_ORIGIN"); allowOrigin != "" {
		c.AllowOrigin = allowOrigin
	}
	return nil
}

// check configuration
func (c *Config) check() error {
	u, err := url.Parse(c.ApiUrl)
	if err != nil {
		return fmt.Errorf("API_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_URL: %q is not an absolute http(s) url", c.ApiUrl)
	}
	c.ApiUrl = strings.TrimRight(c.ApiUrl, "/")

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE: unsupported mode %q", c.GinMode)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT: unsupported format %q", c.LogFormat)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT: must be positive, got %v", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("RATE_BURST: must be at least 1, got %v", c.RateBurst)
	}
	return nil
}
