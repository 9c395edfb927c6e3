package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	id, err := Generate("draft")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "draft-"))
	assert.Len(t, id, len("draft-")+21)
}

func TestLocal(t *testing.T) {
	id := Local()

	assert.True(t, IsLocal(id))
	assert.False(t, IsLocal("66f1c0ffee"))
	assert.NotEqual(t, id, Local())
}
