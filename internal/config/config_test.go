package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.ClientID = "client_id"
	cfg.ClientSecret = "client_secret"
	cfg.CallbackURLs = []string{"https://hackry.io/auth/callback"}
	return cfg
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.Listen = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = validConfig()
	cfg.ClientID = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = validConfig()
	cfg.ClientSecret = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = validConfig()
	cfg.CallbackURLs = nil
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultListen, cfg.Listen)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.EnableConsole)
	assert.False(t, cfg.Logging.EnableFile)
}

func TestUserToStoreUser(t *testing.T) {
	needs := "None"
	u := User{
		ID:              150,
		FirstName:       "Grace",
		Email:           "grace@example.com",
		School:          &School{ID: 3, Name: "MIT"},
		SpecialNeeds:    &needs,
		DidPermitScopes: []string{"email"},
	}

	su := u.ToStoreUser()
	assert.Equal(t, 150, su.ID)
	assert.Equal(t, "Grace", su.FirstName)
	assert.Equal(t, "grace@example.com", su.Email)
	require.NotNil(t, su.School)
	assert.Equal(t, "MIT", su.School.Name)
	require.NotNil(t, su.SpecialNeeds)
	assert.Equal(t, "None", *su.SpecialNeeds)
	assert.Equal(t, []string{"email"}, su.DidPermitScopes)
}
