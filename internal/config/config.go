/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are read-only overrides at runtime.
// config_version: bump when the structure changes incompatibly.

// BackendConfig configures the generation-API client. The API token is never
// stored on disk; it lives in the OS keychain.
type BackendConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	TLSInsecure bool   `yaml:"tls_insecure"`
}

// EditorConfig tunes the editing engine.
type EditorConfig struct {
	MaxHistory    int `yaml:"max_history"`     // undo stack depth
	AutosaveSec   int `yaml:"autosave_sec"`    // 0 disables slide autosave snapshots
	BackupsToKeep int `yaml:"backups_to_keep"` // deck manifest backups retained on save
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark"
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Editor        EditorConfig  `yaml:"editor"`
	Backend       BackendConfig `yaml:"backend"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Editor:        EditorConfig{MaxHistory: 200, AutosaveSec: 120, BackupsToKeep: 5},
		Backend:       BackendConfig{BaseURL: "http://localhost:8080", TimeoutMs: 15000},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvBackendURL       = "GSW_BACKEND_URL"
	EnvBackendTimeoutMs = "GSW_BACKEND_TIMEOUT_MS"
	EnvBackendTLSInsec  = "GSW_TLS_INSECURE"
	EnvTelemetryOptIn   = "GSW_TELEMETRY_OPT_IN"
	EnvMaxHistory       = "GSW_MAX_HISTORY"
	EnvAutosaveSec      = "GSW_AUTOSAVE_SEC"
	EnvLogLevel         = "GSW_LOG_LEVEL"
	EnvLogFormat        = "GSW_LOG_FORMAT"
	EnvLogSource        = "GSW_LOG_SOURCE"
	EnvLogFile          = "GSW_LOG_FILE"
)

// Service and key names for the OS keyring.
const (
	keyringService = "GoSlideWriter"
	keyringToken   = "backend_token"
)

// TokenStore abstracts the keyring so tests can stub it.
type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

var tokenStore TokenStore = osKeyring{}

type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

// Token reads the generation-API token from the OS keyring.
func Token() (string, error) { return tokenStore.Get(keyringService, keyringToken) }

// SetToken stores the generation-API token in the OS keyring. An empty token
// removes the entry.
func SetToken(token string) error {
	if token == "" {
		err := tokenStore.Delete(keyringService, keyringToken)
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}
	return tokenStore.Set(keyringService, keyringToken, token)
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoSlideWriter")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoSlideWriter")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "goslidewriter")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file if present, applies defaults, and merges
// environment overrides. The backend token is returned separately; it comes
// from the OS keyring, never from the file.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	tok, _ := Token()
	return cfg, tok, nil
}

// Save writes the user config YAML and persists the token into the OS
// keyring when non-empty.
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if token != "" {
		return SetToken(token)
	}
	return nil
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy from file so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if src.Editor.MaxHistory > 0 {
		dst.Editor.MaxHistory = src.Editor.MaxHistory
	}
	if src.Editor.AutosaveSec != 0 {
		dst.Editor.AutosaveSec = src.Editor.AutosaveSec
	}
	if src.Editor.BackupsToKeep > 0 {
		dst.Editor.BackupsToKeep = src.Editor.BackupsToKeep
	}
	if src.Backend.BaseURL != "" {
		dst.Backend.BaseURL = src.Backend.BaseURL
	}
	if src.Backend.TimeoutMs != 0 {
		dst.Backend.TimeoutMs = src.Backend.TimeoutMs
	}
	dst.Backend.TLSInsecure = src.Backend.TLSInsecure
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		cfg.Backend.BaseURL = v
	}
	if n, ok := envInt(EnvBackendTimeoutMs); ok {
		cfg.Backend.TimeoutMs = n
	}
	if b, ok := envBool(EnvBackendTLSInsec); ok {
		cfg.Backend.TLSInsecure = b
	}
	if b, ok := envBool(EnvTelemetryOptIn); ok {
		cfg.General.TelemetryOptIn = b
	}
	if n, ok := envInt(EnvMaxHistory); ok && n > 0 {
		cfg.Editor.MaxHistory = n
	}
	if n, ok := envInt(EnvAutosaveSec); ok {
		cfg.Editor.AutosaveSec = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if b, ok := envBool(EnvLogSource); ok {
		cfg.Logging.Source = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return false, false
	}
	return v == "1" || v == "true" || v == "on" || v == "yes", true
}

// EffectiveTimeout returns the backend timeout as a duration, falling back
// to the default when unset or invalid.
func (b BackendConfig) EffectiveTimeout() time.Duration {
	ms := b.TimeoutMs
	if ms <= 0 {
		ms = Defaults().Backend.TimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}
