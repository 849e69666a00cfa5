package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoleSet(t *testing.T) {
	t.Run("deduplicates roles", func(t *testing.T) {
		set := NewRoleSet("org:admin", "org:admin", "org:billing")
		assert.Equal(t, 2, set.Len())
	})

	t.Run("ignores blank roles", func(t *testing.T) {
		set := NewRoleSet("", "org:admin", "")
		assert.Equal(t, 1, set.Len())
		assert.False(t, set.Has(""))
	})

	t.Run("empty set", func(t *testing.T) {
		set := NewRoleSet()
		assert.Equal(t, 0, set.Len())
		assert.Empty(t, set.Values())
	})
}

func TestRoleSet_Has(t *testing.T) {
	set := NewRoleSet("org:admin", "org:billing")

	assert.True(t, set.Has("org:admin"))
	assert.True(t, set.Has("org:billing"))
	assert.False(t, set.Has("org:security"))
	assert.False(t, set.Has("ORG:ADMIN"), "membership is case sensitive")
}

func TestRoleSet_Values(t *testing.T) {
	set := NewRoleSet("org:security", "org:admin", "org:billing")

	assert.Equal(t, []string{"org:admin", "org:billing", "org:security"}, set.Values())
}
