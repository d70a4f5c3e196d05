package entity

import (
	"testing"

	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroup(t *testing.T) {
	t.Run("Valid group creation", func(t *testing.T) {
		g, err := NewGroup("abcd1234", "family plan")

		require.NoError(t, err)
		assert.Equal(t, "abcd1234", g.Code)
		assert.Equal(t, "family plan", g.Name)
	})

	t.Run("Empty name falls back to default", func(t *testing.T) {
		g, err := NewGroup("abcd1234", "")

		require.NoError(t, err)
		assert.Equal(t, DefaultGroupName, g.Name)
	})

	t.Run("Malformed code is rejected", func(t *testing.T) {
		for _, code := range []string{"", "short", "way-too-long-code"} {
			g, err := NewGroup(code, "name")
			assert.Equal(t, errs.ErrInvalidGroupCode, err)
			assert.Nil(t, g)
		}
	})
}

func TestGroupRename(t *testing.T) {
	g, err := NewGroup("abcd1234", "before")
	require.NoError(t, err)

	g.Rename("after")
	assert.Equal(t, "after", g.Name)

	// Empty rename is ignored, not applied
	g.Rename("")
	assert.Equal(t, "after", g.Name)
}
