package shared

import (
	"testing"

	"golang.org/x/oauth2"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Errorf("expected unique IDs, got %s twice", a)
	}
}

func TestTodoistConfigUpdate(t *testing.T) {
	tc := []struct {
		name    string
		token   *oauth2.Token
		wantErr bool
	}{
		{name: "valid token", token: &oauth2.Token{AccessToken: "abc123"}},
		{name: "empty token", token: &oauth2.Token{}, wantErr: true},
		{name: "nil token", token: nil, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			cfg := TodoistConfig{}
			err := cfg.Update(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.APIToken != tt.token.AccessToken {
				t.Errorf("expected token %s, got %s", tt.token.AccessToken, cfg.APIToken)
			}
		})
	}
}
