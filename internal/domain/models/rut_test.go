package models

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_NormalizeRut_StripsFormattingAndCheckDigit(t *testing.T) {
	assert.Equal(t, "12345678", NormalizeRut("12.345.678-9"))
	assert.Equal(t, "12345678", NormalizeRut("12345678-9"))
	assert.Equal(t, "12345678", NormalizeRut(" 12 345 678 9 "))
}

func Test_NormalizeRut_WhenNoDigits_ShouldReturnEmpty(t *testing.T) {
	assert.Equal(t, "", NormalizeRut("abc"))
	assert.Equal(t, "", NormalizeRut(""))
	assert.Equal(t, "", NormalizeRut("---"))
}

func Test_NormalizeRut_WhenFewerThanEightDigits_ShouldNotPad(t *testing.T) {
	assert.Equal(t, "123", NormalizeRut("123"))
	assert.Equal(t, "1234567", NormalizeRut("1.234.567"))
}

func Test_NormalizeRut_WhenMoreThanEightDigits_ShouldTruncate(t *testing.T) {
	assert.Equal(t, "12345678", NormalizeRut("123456789012"))
}

func Test_NormalizeRut_IsIdempotent(t *testing.T) {
	inputs := []string{"12.345.678-9", "11111111-9", "123", "98765432101"}
	for _, input := range inputs {
		once := NormalizeRut(input)
		assert.Equal(t, once, NormalizeRut(once))
	}
}

func Test_NormalizeRut_CosmeticVariantsCollide(t *testing.T) {
	assert.Equal(t, NormalizeRut("11.111.111-1"), NormalizeRut("11111111-9"))
}
