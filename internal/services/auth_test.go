package services

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "password1", false},
		{"valid with symbols", "Str0ng!Pass", false},
		{"too short", "pass1", true},
		{"eight chars no digit", "password", true},
		{"seven chars with digit", "pass123", true},
		{"no digit", "longenoughpassword", true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if tc.wantErr && err == nil {
				t.Errorf("Expected error for %q, got nil", tc.password)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected no error for %q, got %v", tc.password, err)
			}
		})
	}
}

func TestEmailRegex(t *testing.T) {
	valid := []string{
		"student@school.edu",
		"first.last+tag@example.co.uk",
		"UPPER@EXAMPLE.COM",
	}
	invalid := []string{
		"not-an-email",
		"missing@tld",
		"@nodomain.com",
		"spaces in@example.com",
		"",
	}

	for _, email := range valid {
		if !emailRegex.MatchString(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if emailRegex.MatchString(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}
