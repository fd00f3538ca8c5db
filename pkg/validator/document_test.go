package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDigits(t *testing.T) {
	t.Run("Formatted CPF", func(t *testing.T) {
		assert.Equal(t, "12345678901", SanitizeDigits("123.456.789-01"))
	})

	t.Run("Formatted CNPJ", func(t *testing.T) {
		assert.Equal(t, "12345678000195", SanitizeDigits("12.345.678/0001-95"))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", SanitizeDigits(""))
	})

	t.Run("No Digits", func(t *testing.T) {
		assert.Equal(t, "", SanitizeDigits("abc-./"))
	})

	t.Run("Already Clean", func(t *testing.T) {
		assert.Equal(t, "12345678901", SanitizeDigits("12345678901"))
	})
}

func TestValidateCPF(t *testing.T) {
	v := NewDocumentValidator()

	t.Run("Valid", func(t *testing.T) {
		cpf, err := v.ValidateCPF("123.456.789-01")
		require.NoError(t, err)
		assert.Equal(t, "12345678901", cpf)
	})

	t.Run("Too Short", func(t *testing.T) {
		_, err := v.ValidateCPF("123456")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid CPF")
	})

	t.Run("Too Long", func(t *testing.T) {
		_, err := v.ValidateCPF("123456789012345")
		assert.Error(t, err)
	})
}

func TestValidateCNPJ(t *testing.T) {
	v := NewDocumentValidator()

	t.Run("Valid", func(t *testing.T) {
		cnpj, err := v.ValidateCNPJ("12.345.678/0001-95")
		require.NoError(t, err)
		assert.Equal(t, "12345678000195", cnpj)
	})

	t.Run("Wrong Length", func(t *testing.T) {
		_, err := v.ValidateCNPJ("12345678")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid CNPJ")
	})
}
