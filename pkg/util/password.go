package util

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps login latency acceptable while staying above the
// bcrypt default.
const passwordHashCost = 12

// HashPassword derives a bcrypt hash for storage. The returned string
// embeds the salt and cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether password matches the stored hash.
// Malformed hashes verify as false.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
