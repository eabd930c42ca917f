package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashAdminKey returns the bcrypt hash to put in ADMIN_KEY_HASH
func HashAdminKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckAdminKey reports whether key matches hash. An empty hash disables admin access.
func CheckAdminKey(hash, key string) bool {
	if hash == "" || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
