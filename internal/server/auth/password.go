package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt digest from password. Each call
// embeds a fresh random salt, so hashing the same password twice yields
// different digests that both verify.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt digest.
// Malformed digests simply verify as false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
