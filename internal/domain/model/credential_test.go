package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentials_State(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  CredentialState
	}{
		{name: "configured", creds: Credentials{BaseURL: "https://x.supabase.co", APIKey: "anon"}, want: CredentialStateConfigured},
		{name: "url placeholder", creds: Credentials{BaseURL: "__SUPABASE_URL__", APIKey: "anon"}, want: CredentialStatePlaceholder},
		{name: "key placeholder", creds: Credentials{BaseURL: "https://x.supabase.co", APIKey: "__SUPABASE_ANON_KEY_DEV__"}, want: CredentialStatePlaceholder},
		{name: "placeholder wins over missing", creds: Credentials{APIKey: "__KEY__"}, want: CredentialStatePlaceholder},
		{name: "missing key", creds: Credentials{BaseURL: "https://x.supabase.co"}, want: CredentialStateMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.creds.State())
			assert.Equal(t, tt.want == CredentialStateConfigured, tt.creds.IsConfigured())
		})
	}
}
