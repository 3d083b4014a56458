package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades ~100ms of CPU per hash for brute-force resistance.
const bcryptCost = 12

// HashPassword returns a salted bcrypt hash of the plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash.
// A malformed hash is treated as a mismatch, never as an error.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
