package auth

import (
	"errors"
	"os"

	"github.com/parkspot/parkspot/internal/models"
)

const (
	// Environment variable names
	EnvProjectURL  = "PARKSPOT_SUPABASE_URL"
	EnvAnonKey     = "PARKSPOT_SUPABASE_ANON_KEY"
	EnvAccessToken = "PARKSPOT_ACCESS_TOKEN"
)

// Common errors
var (
	ErrNoCredentials = errors.New("no credentials found")
)

// CredentialStore defines the interface for credential persistence.
type CredentialStore interface {
	// Get retrieves stored credentials.
	Get() (*models.Credentials, error)
	// Save persists credentials.
	Save(creds *models.Credentials) error
	// Delete removes stored credentials.
	Delete() error
	// Exists returns true if credentials are stored.
	Exists() bool
}

// GetCredentials retrieves credentials from all available sources.
// Priority: environment variables > keychain
func GetCredentials() (*models.Credentials, error) {
	// First, try environment variables
	envCreds := GetCredentialsFromEnv()
	if envCreds.IsValid() {
		return envCreds, nil
	}

	// Then try keychain
	keychainStore := NewKeychainStore()
	if keychainStore.Exists() {
		return keychainStore.Get()
	}

	return nil, ErrNoCredentials
}

// GetCredentialsFromEnv reads credentials from environment variables.
func GetCredentialsFromEnv() *models.Credentials {
	return &models.Credentials{
		ProjectURL:  os.Getenv(EnvProjectURL),
		AnonKey:     os.Getenv(EnvAnonKey),
		AccessToken: os.Getenv(EnvAccessToken),
	}
}

// SaveCredentials saves credentials to the keychain.
func SaveCredentials(creds *models.Credentials) error {
	store := NewKeychainStore()
	return store.Save(creds)
}

// DeleteCredentials removes credentials from the keychain.
func DeleteCredentials() error {
	store := NewKeychainStore()
	return store.Delete()
}

// HasCredentials returns true if credentials exist in env or keychain.
func HasCredentials() bool {
	creds := GetCredentialsFromEnv()
	if creds.IsValid() {
		return true
	}

	store := NewKeychainStore()
	return store.Exists()
}
