package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIdentNonStrict(t *testing.T) {
	opts := IdentOpts{}
	assert.NoError(t, ValidateIdent("users", opts))
	assert.NoError(t, ValidateIdent("  anything at all  ", opts))
	assert.Error(t, ValidateIdent("", opts))
	assert.Error(t, ValidateIdent("   ", opts))
}

func TestValidateIdentStrict(t *testing.T) {
	opts := IdentOpts{Strict: true}

	valid := []string{"users", "_private", "Users2", "snake_case", "  trimmed  "}
	for _, name := range valid {
		assert.NoError(t, ValidateIdent(name, opts), "name %q", name)
	}

	invalid := []string{"", "2users", "user-name", "users;drop", `us"ers`, "a b"}
	for _, name := range invalid {
		assert.Error(t, ValidateIdent(name, opts), "name %q", name)
	}
}

func TestValidateIdentQualifier(t *testing.T) {
	assert.NoError(t, ValidateIdent("public.users", IdentOpts{Strict: true, AllowQualifier: true}))
	assert.Error(t, ValidateIdent("public.users", IdentOpts{Strict: true}))
	assert.Error(t, ValidateIdent("a.b.c", IdentOpts{Strict: true, AllowQualifier: true}))
	assert.Error(t, ValidateIdent("public.", IdentOpts{Strict: true, AllowQualifier: true}))
}

func TestValidateIdentErrorsAreConfigErrors(t *testing.T) {
	err := ValidateIdent("1bad", IdentOpts{Strict: true})
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Error(), "1bad")
}
