package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	assert.False(t, ValidateRegister("alice", "hunter22").HasErrors())

	errs := ValidateRegister("", "")
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")

	assert.Contains(t, ValidateRegister("ab", "hunter22"), "username")
	assert.Contains(t, ValidateRegister("has spaces", "hunter22"), "username")
	assert.Contains(t, ValidateRegister("alice", "short"), "password")
}

func TestValidateLogin(t *testing.T) {
	assert.False(t, ValidateLogin("alice", "pw").HasErrors())
	assert.True(t, ValidateLogin("  ", "pw").HasErrors())
	assert.True(t, ValidateLogin("alice", "").HasErrors())
}

func TestValidateGroup(t *testing.T) {
	assert.False(t, ValidateGroup("lounge").HasErrors())
	assert.True(t, ValidateGroup(" ").HasErrors())
	assert.True(t, ValidateGroup("x").HasErrors())
}

func TestValidateProfile(t *testing.T) {
	bio := "short bio"
	assert.False(t, ValidateProfile(&bio).HasErrors())
	assert.False(t, ValidateProfile(nil).HasErrors())

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	longBio := string(long)
	assert.True(t, ValidateProfile(&longBio).HasErrors())
}
