// internal/app/system/authutil/authutil.go
package authutil

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// ErrPasswordTooShort is returned by ValidatePassword.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces the registration password rule.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// PasswordRules describes the password requirements for display in forms.
func PasswordRules() string {
	return "At least 6 characters. Use 8+ with a mix of upper, lower, digits and symbols for a strong password."
}

// Strength tiers.
const (
	TierWeak   = "weak"
	TierMedium = "medium"
	TierStrong = "strong"
)

// PasswordStrength scores a password 0–5: one point each for length ≥ 8,
// a lowercase letter, an uppercase letter, a digit, and a symbol.
func PasswordStrength(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	for _, hit := range []bool{lower, upper, digit, symbol} {
		if hit {
			score++
		}
	}
	return score
}

// StrengthTier maps a 0–5 score to its display tier:
// 0–1 weak, 2–3 medium, 4–5 strong.
func StrengthTier(score int) string {
	switch {
	case score <= 1:
		return TierWeak
	case score <= 3:
		return TierMedium
	default:
		return TierStrong
	}
}
