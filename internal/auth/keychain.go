package auth

import (
	"github.com/zalando/go-keyring"

	"github.com/parkspot/parkspot/internal/models"
)

const (
	// KeychainService is the service name used in the system keychain.
	KeychainService = "parkspot"
	// Keychain item names
	keychainProjectURL  = "project_url"
	keychainAnonKey     = "anon_key"
	keychainAccessToken = "access_token"
)

// KeychainStore implements CredentialStore using the system keychain.
type KeychainStore struct{}

// NewKeychainStore creates a new KeychainStore.
func NewKeychainStore() *KeychainStore {
	return &KeychainStore{}
}

// Get retrieves credentials from the keychain.
func (s *KeychainStore) Get() (*models.Credentials, error) {
	projectURL, err := keyring.Get(KeychainService, keychainProjectURL)
	if err != nil {
		return nil, err
	}

	anonKey, err := keyring.Get(KeychainService, keychainAnonKey)
	if err != nil {
		return nil, err
	}

	// The access token is optional; an anonymous session has none.
	accessToken, err := keyring.Get(KeychainService, keychainAccessToken)
	if err != nil {
		accessToken = ""
	}

	return &models.Credentials{
		ProjectURL:  projectURL,
		AnonKey:     anonKey,
		AccessToken: accessToken,
	}, nil
}

// Save stores credentials in the keychain.
func (s *KeychainStore) Save(creds *models.Credentials) error {
	if err := keyring.Set(KeychainService, keychainProjectURL, creds.ProjectURL); err != nil {
		return err
	}

	if err := keyring.Set(KeychainService, keychainAnonKey, creds.AnonKey); err != nil {
		// Try to clean up the project URL if the key save fails
		_ = keyring.Delete(KeychainService, keychainProjectURL)
		return err
	}

	if creds.AccessToken != "" {
		if err := keyring.Set(KeychainService, keychainAccessToken, creds.AccessToken); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes credentials from the keychain.
func (s *KeychainStore) Delete() error {
	// Delete all items, ignoring errors if they don't exist
	_ = keyring.Delete(KeychainService, keychainProjectURL)
	_ = keyring.Delete(KeychainService, keychainAnonKey)
	_ = keyring.Delete(KeychainService, keychainAccessToken)
	return nil
}

// Exists returns true if credentials are stored in the keychain.
func (s *KeychainStore) Exists() bool {
	_, err := keyring.Get(KeychainService, keychainProjectURL)
	if err != nil {
		return false
	}

	_, err = keyring.Get(KeychainService, keychainAnonKey)
	return err == nil
}
