package validator

import (
	"testing"

	platformvalidator "aptivai_backend/platform/validator"
)

func TestIsStrong(t *testing.T) {
	cases := map[string]bool{
		"Str0ng!pass": true,
		"short1!A":    true,
		"Sh0rt!":      false,
		"alllower1!":  false,
		"NoDigits!!":  false,
		"NoSpecial12": false,
	}
	for pw, want := range cases {
		if got := IsStrong(pw); got != want {
			t.Errorf("%q: expected %v, got %v", pw, want, got)
		}
	}
}

func TestRegister(t *testing.T) {
	val := platformvalidator.New()
	if err := Register(val); err != nil {
		t.Fatalf("register: %v", err)
	}
	type signUp struct {
		Password string `validate:"strongpassword"`
	}
	if err := val.Struct(signUp{Password: "weak"}); err == nil {
		t.Error("expected weak password to fail")
	}
	if err := val.Struct(signUp{Password: "Str0ng!pass"}); err != nil {
		t.Errorf("expected strong password to pass, got %v", err)
	}
}
