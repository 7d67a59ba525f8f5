// Package config loads voicecal settings from a .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Environment keys.
const (
	KeyAssemblyAIAPIKey       = "ASSEMBLYAI_API_KEY"
	KeyAssemblyAILanguageCode = "ASSEMBLYAI_LANGUAGE_CODE"
	KeyClientSecretFile       = "GOOGLE_CLIENT_SECRET_FILE"
	KeyTokenFile              = "GOOGLE_TOKEN_FILE"
	KeyTimezone               = "VOICECAL_TIMEZONE"
	KeyCalendarID             = "VOICECAL_CALENDAR_ID"
	KeyOAuthPort              = "VOICECAL_OAUTH_PORT"
)

// Defaults.
const (
	DefaultTokenFile  = "token.json"
	DefaultCalendarID = "primary"
	DefaultOAuthPort  = 8080
	DefaultEnvFile    = ".env"
)

// Mode says which settings a command needs.
type Mode int

const (
	// ModeRun needs everything: transcription and calendar access.
	ModeRun Mode = iota
	// ModeDryRun transcribes and builds but never talks to Google.
	ModeDryRun
	// ModeCalendar only needs Google credentials (auth, upcoming).
	ModeCalendar
)

// Config is the resolved configuration.
type Config struct {
	AssemblyAIAPIKey string
	LanguageCode     string
	ClientSecretFile string
	TokenFile        string
	Timezone         string
	CalendarID       string
	OAuthPort        int
}

// MissingError lists required keys that have no value.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required configuration: %s (set them in the environment or a .env file)", strings.Join(e.Keys, ", "))
}

// Load reads envFile when it exists and overlays the process environment.
// An empty envFile means DefaultEnvFile in the working directory.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyTokenFile, DefaultTokenFile)
	v.SetDefault(KeyCalendarID, DefaultCalendarID)
	v.SetDefault(KeyOAuthPort, DefaultOAuthPort)
	v.AutomaticEnv()

	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}
	if err := readEnvFile(v, envFile, explicit); err != nil {
		return nil, err
	}

	cfg := &Config{
		AssemblyAIAPIKey: strings.TrimSpace(v.GetString(KeyAssemblyAIAPIKey)),
		LanguageCode:     strings.TrimSpace(v.GetString(KeyAssemblyAILanguageCode)),
		ClientSecretFile: strings.TrimSpace(v.GetString(KeyClientSecretFile)),
		TokenFile:        strings.TrimSpace(v.GetString(KeyTokenFile)),
		Timezone:         strings.TrimSpace(v.GetString(KeyTimezone)),
		CalendarID:       strings.TrimSpace(v.GetString(KeyCalendarID)),
		OAuthPort:        v.GetInt(KeyOAuthPort),
	}
	if cfg.OAuthPort <= 0 || cfg.OAuthPort > 65535 {
		return nil, fmt.Errorf("invalid %s %d", KeyOAuthPort, cfg.OAuthPort)
	}
	return cfg, nil
}

func readEnvFile(v *viper.Viper, path string, mustExist bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil
		}
		return fmt.Errorf("failed to read env file: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to parse env file %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Validate reports the keys mode requires but cfg lacks.
func (c *Config) Validate(mode Mode) error {
	var missing []string
	if mode == ModeRun || mode == ModeDryRun {
		if c.AssemblyAIAPIKey == "" {
			missing = append(missing, KeyAssemblyAIAPIKey)
		}
	}
	if mode == ModeRun || mode == ModeCalendar {
		if c.ClientSecretFile == "" {
			missing = append(missing, KeyClientSecretFile)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

// OAuthAddr is the loopback address for the authorization redirect.
func (c *Config) OAuthAddr() string {
	return fmt.Sprintf("127.0.0.1:%d", c.OAuthPort)
}
