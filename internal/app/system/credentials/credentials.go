// internal/app/system/credentials/credentials.go
package credentials

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost used for stored user passwords.
const bcryptCost = 12

// Hash digests a plaintext password for storage.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches the stored digest.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
