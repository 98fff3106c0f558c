package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "dogvetapi.com", cfg.JWTIssuer)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, ":8080", (&Config{ServerPort: "8080"}).Addr())
}

func TestLoad_ParsesListsAndDurations(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("DOG_API_TIMEOUT", "3s")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg := Load()

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.DogAPITimeout)
	assert.True(t, cfg.SeedDemo)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppEnv:      "production",
			StoreDriver: StoreDriverMemory,
			SecretMode:  SecretModePlaintext,
			JWTSecret:   "s3cr3t",
			JWTTTL:      time.Hour,
		}
	}

	require.NoError(t, base().Validate())

	missingSecret := base()
	missingSecret.JWTSecret = ""
	assert.Error(t, missingSecret.Validate())

	devSecret := base()
	devSecret.AppEnv = EnvDevelopment
	devSecret.JWTSecret = ""
	require.NoError(t, devSecret.Validate())
	assert.NotEmpty(t, devSecret.JWTSecret)

	badDriver := base()
	badDriver.StoreDriver = "mysql"
	assert.Error(t, badDriver.Validate())

	badMode := base()
	badMode.SecretMode = "md5"
	assert.Error(t, badMode.Validate())
}
