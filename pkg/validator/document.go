package validator

import (
	"fmt"
	"strings"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

// DocumentValidator sanitizes and validates Brazilian identity documents
// (CPF for people, CNPJ for companies).
type DocumentValidator struct{}

// NewDocumentValidator creates a new document validator
func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{}
}

// SanitizeDigits strips everything that is not a digit.
func SanitizeDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCPF sanitizes a CPF and checks its length. Returns the
// digits-only form.
func (v *DocumentValidator) ValidateCPF(value string) (string, error) {
	digits := SanitizeDigits(value)
	if len(digits) != cpfLength {
		return "", fmt.Errorf("invalid CPF: expected %d digits, got %d", cpfLength, len(digits))
	}
	return digits, nil
}

// ValidateCNPJ sanitizes a CNPJ and checks its length. Returns the
// digits-only form.
func (v *DocumentValidator) ValidateCNPJ(value string) (string, error) {
	digits := SanitizeDigits(value)
	if len(digits) != cnpjLength {
		return "", fmt.Errorf("invalid CNPJ: expected %d digits, got %d", cnpjLength, len(digits))
	}
	return digits, nil
}
