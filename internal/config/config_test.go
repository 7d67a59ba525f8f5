package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		KeyAssemblyAIAPIKey, KeyAssemblyAILanguageCode, KeyClientSecretFile,
		KeyTokenFile, KeyTimezone, KeyCalendarID, KeyOAuthPort,
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultTokenFile, cfg.TokenFile)
	assert.Equal(t, DefaultCalendarID, cfg.CalendarID)
	assert.Equal(t, DefaultOAuthPort, cfg.OAuthPort)
	assert.Equal(t, "127.0.0.1:8080", cfg.OAuthAddr())
	assert.Empty(t, cfg.AssemblyAIAPIKey)
	assert.Empty(t, cfg.Timezone)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "voicecal.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"ASSEMBLYAI_API_KEY=from-file\n"+
			"GOOGLE_CLIENT_SECRET_FILE=secret.json\n"+
			"VOICECAL_TIMEZONE=Europe/Berlin\n"+
			"VOICECAL_OAUTH_PORT=9090\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.AssemblyAIAPIKey)
	assert.Equal(t, "secret.json", cfg.ClientSecretFile)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, 9090, cfg.OAuthPort)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ASSEMBLYAI_API_KEY=from-file\n"), 0o600))
	t.Setenv(KeyAssemblyAIAPIKey, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AssemblyAIAPIKey)
}

func TestLoad_DefaultEnvFileInWorkingDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VOICECAL_CALENDAR_ID=team@example.com\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "team@example.com", cfg.CalendarID)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(KeyOAuthPort, "70000")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		mode    Mode
		missing []string
	}{
		{"run complete", Config{AssemblyAIAPIKey: "k", ClientSecretFile: "s"}, ModeRun, nil},
		{"run missing both", Config{}, ModeRun, []string{KeyAssemblyAIAPIKey, KeyClientSecretFile}},
		{"dry run needs only key", Config{AssemblyAIAPIKey: "k"}, ModeDryRun, nil},
		{"dry run missing key", Config{ClientSecretFile: "s"}, ModeDryRun, []string{KeyAssemblyAIAPIKey}},
		{"calendar needs only secret", Config{ClientSecretFile: "s"}, ModeCalendar, nil},
		{"calendar missing secret", Config{AssemblyAIAPIKey: "k"}, ModeCalendar, []string{KeyClientSecretFile}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.mode)
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var merr *MissingError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.missing, merr.Keys)
		})
	}
}
