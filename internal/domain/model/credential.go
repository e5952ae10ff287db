package model

import "strings"

// PlaceholderPrefix marks a credential token that the deployment step has not
// replaced yet, e.g. "__SUPABASE_URL__".
const PlaceholderPrefix = "__"

// Credentials holds the knowledge base endpoint and its API key. Both values
// are injected at construction and never mutated afterwards.
type Credentials struct {
	BaseURL string
	APIKey  string
}

// HasPlaceholder reports whether either value still carries the unreplaced
// placeholder prefix.
func (c Credentials) HasPlaceholder() bool {
	return strings.HasPrefix(c.BaseURL, PlaceholderPrefix) || strings.HasPrefix(c.APIKey, PlaceholderPrefix)
}

// State classifies the credentials. Placeholders take precedence over empty
// values so a half-substituted deployment is reported as such.
func (c Credentials) State() CredentialState {
	if c.HasPlaceholder() {
		return CredentialStatePlaceholder
	}
	if c.BaseURL == "" || c.APIKey == "" {
		return CredentialStateMissing
	}
	return CredentialStateConfigured
}

// IsConfigured returns true when the credentials can be sent to the backend.
func (c Credentials) IsConfigured() bool {
	return c.State() == CredentialStateConfigured
}
