package config

import "testing"

func TestValidate_AuthMode(t *testing.T) {
	cfg := &Config{Env: "development", AuthMode: "permissive", TokenTTLDays: 30}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.AuthMode = "strict"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.AuthMode = "open"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown auth mode")
	}
}

func TestValidate_SecretRequiredOutsideDev(t *testing.T) {
	cfg := &Config{Env: "production", AuthMode: "permissive", TokenTTLDays: 30}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TokenTTL(t *testing.T) {
	cfg := &Config{Env: "development", AuthMode: "permissive", TokenTTLDays: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero TOKEN_TTL_DAYS")
	}
}

func TestStrictAuth(t *testing.T) {
	cfg := &Config{AuthMode: "permissive"}
	if cfg.StrictAuth() {
		t.Error("permissive mode should not be strict")
	}
	cfg.AuthMode = "strict"
	if !cfg.StrictAuth() {
		t.Error("strict mode should be strict")
	}
}
