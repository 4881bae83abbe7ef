package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "maria.silva+tag@example.com.br", "x_1%@dom.io"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "a@b", "@dom.com", "a@.com", "a b@dom.com"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+5511988887777"))
	assert.True(t, ValidatePhone("(11) 98888-7777"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone(""))
}
