package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var pinPattern = regexp.MustCompile(`^\d{6}$`)

// IsValidPINFormat reports whether pin is exactly six ASCII digits.
func IsValidPINFormat(pin string) bool {
	return pinPattern.MatchString(pin)
}

// IsWeakPIN flags PINs made of one repeated digit or of a run where every step is +1 or -1
// (e.g. 123456, 987654, 121212). Callers treat this as advice, not a rejection.
func IsWeakPIN(pin string) bool {
	if !IsValidPINFormat(pin) {
		return false
	}
	if strings.Count(pin, pin[:1]) == len(pin) {
		return true
	}
	for i := 1; i < len(pin); i++ {
		diff := int(pin[i]) - int(pin[i-1])
		if diff != 1 && diff != -1 {
			return false
		}
	}
	return true
}

// HashPIN hashes a PIN with bcrypt and a per-hash salt.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPIN compares a PIN with its stored hash. Hashes imported from the legacy
// store are unsalted base64(SHA-256) and are still accepted.
func VerifyPIN(pin, hash string) bool {
	if isBcryptHash(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(LegacyPINHash(pin)), []byte(hash)) == 1
}

// LegacyPINHash reproduces the unsalted hash format of imported data.
func LegacyPINHash(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}
