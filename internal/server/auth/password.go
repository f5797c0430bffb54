package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives an opaque salted hash from plaintext. The salt is
// random, so hashing the same password twice produces different outputs.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext is the password originally hashed
// into opaqueHash. The comparison is constant-time, and a malformed hash
// (e.g. from data corruption) simply reports false.
func CheckPassword(plaintext, opaqueHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(opaqueHash), []byte(plaintext)) == nil
}
