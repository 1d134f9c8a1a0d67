/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL        = "http://127.0.0.1:8080"
	DefaultRequestTimeout = 15 * time.Second
)

// Credentials is what the Reminders API needs from us: where it lives, an
// optional bearer token, and whether to accept self-signed certificates.
type Credentials struct {
	BaseURL                string
	APIToken               string
	AllowUnauthorizedCerts bool
}

// Config holds the application configuration values.
type Config struct {
	Credentials          Credentials
	RequestTimeout       time.Duration
	Port                 string
	LogLevel             string
	LogEncoding          string
	OtelExporterEndpoint string
	ContinueOnFail       bool
	Version              string
}

// LoadConfig loads configuration from a .env file, when present, and the environment.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	timeout, err := getEnvDuration("REMINDERS_REQUEST_TIMEOUT", DefaultRequestTimeout)
	if err != nil {
		return nil, err
	}
	insecure, err := getEnvBool("REMINDERS_ALLOW_UNAUTHORIZED_CERTS", false)
	if err != nil {
		return nil, err
	}
	continueOnFail, err := getEnvBool("CONTINUE_ON_FAIL", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Credentials: Credentials{
			BaseURL:                getEnv("REMINDERS_BASE_URL", DefaultBaseURL),
			APIToken:               getEnv("REMINDERS_API_TOKEN", ""),
			AllowUnauthorizedCerts: insecure,
		},
		RequestTimeout:       timeout,
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogEncoding:          getEnv("LOG_ENCODING", "json"),
		OtelExporterEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", ""),
		ContinueOnFail:       continueOnFail,
		Version:              getEnv("VERSION", "dev"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail on first use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Credentials.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("REMINDERS_BASE_URL must be an absolute http(s) URL, got %q", c.Credentials.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REMINDERS_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, value)
	}
	return d, nil
}
