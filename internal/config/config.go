package config

import (
	"time"

	"github.com/joeshaw/envdecode"
)

// Config exposes everything the client and CLI need from the environment.
type Config interface {
	APIConfig
	CLIConfig
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type CLIConfig interface {
	GetAppName() string
	GetTokenFilePath() string
	GetLogLevel() string
	GetOutputFormat() string
}

// envConfig is decoded once from the process environment.
type envConfig struct {
	APIBaseURL     string        `env:"LEDGERLINE_API_BASE_URL,default=http://localhost:3000/api"`
	RequestTimeout time.Duration `env:"LEDGERLINE_REQUEST_TIMEOUT,default=30s"`
	AppName        string        `env:"LEDGERLINE_APP_NAME,default=Ledgerline"`
	TokenFilePath  string        `env:"LEDGERLINE_TOKEN_FILE"`
	LogLevel       string        `env:"LEDGERLINE_LOG_LEVEL,default=info"`
	OutputFormat   string        `env:"LEDGERLINE_OUTPUT,default=json"`
}

var _ Config = envConfig{}

// New decodes configuration from the environment. Missing variables fall back
// to their defaults, so decoding only fails on malformed values.
func New() (Config, error) {
	var c envConfig
	if err := envdecode.Decode(&c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c envConfig) GetAPIBaseURL() string {
	return c.APIBaseURL
}

func (c envConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

func (c envConfig) GetAppName() string {
	return c.AppName
}

func (c envConfig) GetTokenFilePath() string {
	return c.TokenFilePath
}

func (c envConfig) GetLogLevel() string {
	return c.LogLevel
}

func (c envConfig) GetOutputFormat() string {
	return c.OutputFormat
}
