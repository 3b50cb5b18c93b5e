package controllers

import "testing"

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "secret1!pass", false},
		{"too short", "a1!bcde", true},
		{"no digit", "secret!!pass", true},
		{"no special", "secret11pass", true},
		{"digit and special only bare minimum", "abcdef1!", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if (err != nil) != tc.wantErr {
				t.Errorf("validatePassword(%q) error = %v, wantErr %v", tc.password, err, tc.wantErr)
			}
		})
	}
}

func TestValidateAndNormalizeRole(t *testing.T) {
	if role, err := validateAndNormalizeRole(""); err != nil || role != "user" {
		t.Errorf("empty role: got (%q, %v), want (user, nil)", role, err)
	}
	if role, err := validateAndNormalizeRole("admin"); err != nil || role != "admin" {
		t.Errorf("admin role: got (%q, %v)", role, err)
	}
	if _, err := validateAndNormalizeRole("superuser"); err == nil {
		t.Error("superuser role should be rejected")
	}
}
