package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role      Role
		canWrite  bool
		canReview bool
	}{
		{RoleUser, false, false},
		{RoleAuthor, true, false},
		{RoleAdmin, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.canWrite, tt.role.CanWrite())
			assert.Equal(t, tt.canReview, tt.role.CanReview())
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}
