package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTempPassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		pw, err := GenerateTempPassword()
		require.NoError(t, err)

		assert.GreaterOrEqual(t, len(pw), 12)
		for _, c := range pw {
			assert.True(t, strings.ContainsRune(passwordAlphabet, c), "unexpected character %q", c)
		}

		assert.False(t, seen[pw], "generated password repeated")
		seen[pw] = true
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleSupervisor))
	assert.True(t, ValidRole(RoleIntern))
	assert.False(t, ValidRole("MANAGER"))
	assert.False(t, ValidRole(""))
}

func TestRoleHelpers(t *testing.T) {
	u := User{Role: RoleSupervisor}
	assert.True(t, u.IsSupervisor())
	assert.False(t, u.IsAdmin())
	assert.False(t, u.IsIntern())
}
