package model

// CredentialState describes whether injected backend credentials are usable.
type CredentialState string

const (
	CredentialStateConfigured  CredentialState = "configured"
	CredentialStatePlaceholder CredentialState = "placeholder" // Deployment step did not substitute the token.
	CredentialStateMissing     CredentialState = "missing"
)
