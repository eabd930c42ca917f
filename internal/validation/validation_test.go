package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNickname(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "generated nickname",
			input:   "Brave Otter",
			wantErr: false,
		},
		{
			name:    "with apostrophe and hyphen",
			input:   "O'Brien-Smith",
			wantErr: false,
		},
		{
			name:    "unicode letters",
			input:   "Zoë",
			wantErr: false,
		},
		{
			name:    "too short",
			input:   "J",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "An Extremely Long Nickname Indeed",
			wantErr: true,
		},
		{
			name:    "markup",
			input:   "<script>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNickname(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNickname(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGuess(t *testing.T) {
	tests := []struct {
		name    string
		gameID  int64
		input   string
		wantErr bool
	}{
		{name: "catalog pick", gameID: 42, wantErr: false},
		{name: "free text", input: "Portal 2", wantErr: false},
		{name: "blank", input: "   ", wantErr: true},
		{name: "negative id", gameID: -1, wantErr: true},
		{name: "too long", input: strings.Repeat("a", 201), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGuess(tt.gameID, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGuess(%d, %q) error = %v, wantErr %v", tt.gameID, tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLevel(t *testing.T) {
	tests := []struct {
		level   int
		count   int
		wantErr bool
	}{
		{level: 1, count: 10, wantErr: false},
		{level: 10, count: 10, wantErr: false},
		{level: 0, count: 10, wantErr: true},
		{level: 11, count: 10, wantErr: true},
	}

	for _, tt := range tests {
		err := ValidateLevel(tt.level, tt.count)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLevel(%d, %d) error = %v, wantErr %v", tt.level, tt.count, err, tt.wantErr)
		}
	}
}
