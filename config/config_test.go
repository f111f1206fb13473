package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("AI_SERVICE_URL", "https://ai.example.com")
	t.Setenv("AI_SERVICE_TOKEN", "test-token")
}

func TestLoadReadsEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AWS_REGION", "eu-central-1")
	t.Setenv("S3_BUCKET_NAME", "linkup-photos")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "https://ai.example.com", cfg.AIServiceURL)
	assert.Equal(t, "test-token", cfg.AIServiceToken)
	assert.Equal(t, "eu-central-1", cfg.AWSRegion)
	assert.Equal(t, "linkup-photos", cfg.S3BucketName)
	assert.True(t, cfg.IsProduction())
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresAIServiceSettings(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("AI_SERVICE_URL", "")
	t.Setenv("AI_SERVICE_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_SERVICE_URL")
	assert.Contains(t, err.Error(), "AI_SERVICE_TOKEN")
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "staging")

	_, err := Load()
	assert.Error(t, err)
}
