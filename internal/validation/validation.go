// Package validation checks user-supplied input before it reaches the services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxGuessLength    = 200
	minNicknameLength = 2
	maxNicknameLength = 24
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nicknameRegex = regexp.MustCompile(`^[\p{L}\p{N} '\-_.]+$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateNickname checks a player-chosen display name
func ValidateNickname(nickname string) error {
	nickname = strings.TrimSpace(nickname)
	n := utf8.RuneCountInString(nickname)
	if n < minNicknameLength {
		return ValidationError{Field: "nickname", Message: fmt.Sprintf("nickname must be at least %d characters", minNicknameLength)}
	}
	if n > maxNicknameLength {
		return ValidationError{Field: "nickname", Message: fmt.Sprintf("nickname must be at most %d characters", maxNicknameLength)}
	}
	if !nicknameRegex.MatchString(nickname) {
		return ValidationError{Field: "nickname", Message: "nickname contains invalid characters"}
	}
	return nil
}

// ValidateGuess checks a guess submission. Either a catalog id or a name is required.
func ValidateGuess(gameID int64, name string) error {
	if gameID < 0 {
		return ValidationError{Field: "gameId", Message: "game id must be positive"}
	}
	name = strings.TrimSpace(name)
	if gameID == 0 && name == "" {
		return ValidationError{Field: "name", Message: "a game id or name is required"}
	}
	if utf8.RuneCountInString(name) > maxGuessLength {
		return ValidationError{Field: "name", Message: fmt.Sprintf("guess must be at most %d characters", maxGuessLength)}
	}
	return nil
}

// ValidateLevel checks a 1-indexed standard-mode level number
func ValidateLevel(level, levelCount int) error {
	if level < 1 || level > levelCount {
		return ValidationError{Field: "level", Message: fmt.Sprintf("level must be between 1 and %d", levelCount)}
	}
	return nil
}
