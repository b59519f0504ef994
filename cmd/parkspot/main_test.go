package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/parkspot/internal/auth"
)

func TestRunAuth_Usage(t *testing.T) {
	assert.Error(t, runAuth(nil))
	assert.Error(t, runAuth([]string{"bogus"}))
}

func TestRunAuth_StoreRequiresEnvCredentials(t *testing.T) {
	t.Setenv(auth.EnvProjectURL, "")
	t.Setenv(auth.EnvAnonKey, "")

	err := runAuth([]string{"store"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), auth.EnvProjectURL)
}
