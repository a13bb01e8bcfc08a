package utils

import "golang.org/x/crypto/bcrypt"

// HashPin returns a bcrypt hash of the provided PIN. Hashing is always an
// explicit service-layer step, never a persistence hook.
func HashPin(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPin compares a bcrypt hashed PIN with its possible plaintext
// equivalent.
func CheckPin(hashedPin, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPin), []byte(pin)) == nil
}
