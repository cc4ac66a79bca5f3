package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	var c Config
	c.Server.Address = "0.0.0.0"
	c.Server.HTTPPort = "8080"
	c.Auth.Secret = "unit-test-secret"
	c.Auth.TokenTTLMinutes = 30
	c.Auth.BcryptCost = 10
	c.Billing.DomainFee = 1.00
	c.Billing.VATRate = 0.20
	c.Database.Driver = "sqlite"
	c.Database.DSN = "file::memory:"
	return &c
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validate(validConfig()))
}

func TestValidate_RejectsPlaceholderSecret(t *testing.T) {
	c := validConfig()
	c.Auth.Secret = "CHANGE_ME"
	assert.Error(t, validate(c))

	c.Auth.Secret = "   "
	assert.Error(t, validate(c))
}

func TestValidate_Bounds(t *testing.T) {
	c := validConfig()
	c.Auth.TokenTTLMinutes = 0
	assert.Error(t, validate(c))

	c = validConfig()
	c.Auth.BcryptCost = 99
	assert.Error(t, validate(c))

	c = validConfig()
	c.Billing.VATRate = -0.1
	assert.Error(t, validate(c))

	c = validConfig()
	c.Database.Driver = ""
	assert.Error(t, validate(c))
}

func TestTokenTTL(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "30m0s", c.TokenTTL().String())
}
