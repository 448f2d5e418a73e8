package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns a config that passes validate on its own.
func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Storage.DB.DSN = "postgres://localhost/reports"
	cfg.Identity.ProjectID = "report-buddy-test"
	cfg.LLM.APIKey = "sk-test"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a builder without sources fails
// validation instead of returning an unusable config.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// sources win over earlier ones while zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{App: App{Version: "1.0.0"}, LLM: LLM{Model: "gpt-4o-mini"}},
		&StructuredConfig{App: App{Version: "1.1.0"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", cfg.App.Version)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, LLMProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
}

func TestBuild_DefaultsAreApplied(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		Storage:  Storage{DB: DB{DSN: "postgres://localhost/reports"}},
		Identity: Identity{ProjectID: "p"},
		LLM:      LLM{APIKey: "k"},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, int64(defaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Equal(t, Window{Limit: 10, Period: time.Minute}, cfg.RateLimit.AI)
	assert.Equal(t, DefaultFirebaseJWKSURL, cfg.Identity.JWKSURL)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("LLM_MODEL", "env-model")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-model", b.configs[0].LLM.Model)
}

// ── withDotEnv ────────────────────────────────────────────────────────────────

func TestWithDotEnv_SkippedInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	b := newConfigBuilder()
	assert.Same(t, b, b.withDotEnv())
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithDotEnv_LoadsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/.env", []byte("LLM_BASE_URL=http://dotenv.local\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("APP_ENV", "development")
	t.Cleanup(func() { _ = os.Unsetenv("LLM_BASE_URL") })

	b := newConfigBuilder().withDotEnv().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://dotenv.local", b.configs[0].LLM.BaseURL)
}

func TestWithDotEnv_MissingFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "development")

	b := newConfigBuilder().withDotEnv()
	assert.NoError(t, b.err)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.LLM.Provider = LLMProviderGemini
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, LLMProviderGemini, b.configs[1].LLM.Provider)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/ignored.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "missing dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "no transport address",
			mutate: func(cfg *StructuredConfig) {
				cfg.Server.HTTPAddress = ""
				cfg.Server.GRPCAddress = ""
			},
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "grpc only is enough",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = ""; cfg.Server.GRPCAddress = ":9090" },
			wantErr: nil,
		},
		{
			name:    "firebase without project",
			mutate:  func(cfg *StructuredConfig) { cfg.Identity.ProjectID = "" },
			wantErr: ErrInvalidIdentityConfigs,
		},
		{
			name:    "local without sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.Identity.Mode = IdentityModeLocal; cfg.Identity.Issuer = "rb" },
			wantErr: ErrInvalidIdentityConfigs,
		},
		{
			name: "local with sign key and issuer",
			mutate: func(cfg *StructuredConfig) {
				cfg.Identity = Identity{Mode: IdentityModeLocal, SignKey: "secret", Issuer: "rb"}
			},
		},
		{
			name:    "unknown identity mode",
			mutate:  func(cfg *StructuredConfig) { cfg.Identity.Mode = "saml" },
			wantErr: ErrInvalidIdentityConfigs,
		},
		{
			name:    "unknown llm provider",
			mutate:  func(cfg *StructuredConfig) { cfg.LLM.Provider = "bard" },
			wantErr: ErrInvalidLLMConfigs,
		},
		{
			name:    "compat without base url",
			mutate:  func(cfg *StructuredConfig) { cfg.LLM.Provider = LLMProviderCompat },
			wantErr: ErrInvalidLLMConfigs,
		},
		{
			name:    "missing api key",
			mutate:  func(cfg *StructuredConfig) { cfg.LLM.APIKey = "" },
			wantErr: ErrInvalidLLMConfigs,
		},
		{
			name:    "redis without address",
			mutate:  func(cfg *StructuredConfig) { cfg.RateLimit.Backend = RateLimitBackendRedis },
			wantErr: ErrInvalidRateLimitConfigs,
		},
		{
			name:    "zero window",
			mutate:  func(cfg *StructuredConfig) { cfg.RateLimit.AI.Limit = 0 },
			wantErr: ErrInvalidRateLimitConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
