package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

var (
	// Default is the default configuration that is used, along with ~/.tinyhouse.yaml
	Default = Config{
		Endpoint:       "http://localhost:9000/api",
		RequestTimeout: 15 * time.Second,
		LogLevel:       "info",
		Browser:        defaultBrowser(),
		Breaker: Breaker{
			MaxRequests:         1,
			Timeout:             10 * time.Second,
			ConsecutiveFailures: 3,
		},
	}
)

type Config struct {
	Endpoint             string        `yaml:"endpoint" validate:"required,url"`
	StripePublishableKey string        `yaml:"stripePublishableKey" validate:""`
	StripeClientID       string        `yaml:"stripeClientID" validate:""`
	RequestTimeout       time.Duration `yaml:"requestTimeout" validate:"required"`
	LogLevel             string        `yaml:"logLevel" validate:"required,oneof=panic fatal error warn warning info debug trace"`
	LogFile              string        `yaml:"logFile,omitempty" validate:""`
	Browser              string        `yaml:"browser" validate:"required"`
	Breaker              Breaker       `yaml:"breaker" validate:"required"`
}

// Breaker configures the circuit breaker around the API
type Breaker struct {
	MaxRequests         uint32        `yaml:"maxRequests" validate:"required"`
	Timeout             time.Duration `yaml:"timeout" validate:"required"`
	ConsecutiveFailures uint32        `yaml:"consecutiveFailures" validate:"required"`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	validate := validator.New()
	err = validate.Struct(c)
	if err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &c, nil
}

// NewFromFile loads the config at path, falling back to Default when the
// file does not exist
func NewFromFile(path string) (*Config, error) {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expandedPath)
	if os.IsNotExist(err) {
		c := Default
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", expandedPath, err)
	}
	defer f.Close()

	cfg, err := NewFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}
	return cfg, nil
}

func defaultBrowser() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	}
	return "xdg-open"
}
