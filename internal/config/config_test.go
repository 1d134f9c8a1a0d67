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
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"REMINDERS_BASE_URL", "REMINDERS_API_TOKEN", "REMINDERS_ALLOW_UNAUTHORIZED_CERTS",
		"REMINDERS_REQUEST_TIMEOUT", "PORT", "CONTINUE_ON_FAIL"} {
		t.Setenv(k, "")
	}
	t.Setenv("REMINDERS_BASE_URL", DefaultBaseURL)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Credentials.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base url, got %s", cfg.Credentials.BaseURL)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("expected default timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.Credentials.AllowUnauthorizedCerts || cfg.ContinueOnFail {
		t.Error("expected boolean flags to default to false")
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REMINDERS_BASE_URL", "https://reminders.local:9443")
	t.Setenv("REMINDERS_API_TOKEN", "secret")
	t.Setenv("REMINDERS_ALLOW_UNAUTHORIZED_CERTS", "true")
	t.Setenv("REMINDERS_REQUEST_TIMEOUT", "3s")
	t.Setenv("CONTINUE_ON_FAIL", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Credentials.APIToken != "secret" || !cfg.Credentials.AllowUnauthorizedCerts {
		t.Errorf("unexpected credentials: %+v", cfg.Credentials)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", cfg.RequestTimeout)
	}
	if !cfg.ContinueOnFail {
		t.Error("expected continue on fail")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	tests := map[string]string{
		"REMINDERS_BASE_URL":                 "not a url",
		"REMINDERS_REQUEST_TIMEOUT":          "soon",
		"REMINDERS_ALLOW_UNAUTHORIZED_CERTS": "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("REMINDERS_BASE_URL", DefaultBaseURL)
			t.Setenv(key, value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestValidate_NonPositiveTimeout(t *testing.T) {
	cfg := &Config{Credentials: Credentials{BaseURL: DefaultBaseURL}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}
}
