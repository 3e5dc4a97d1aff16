package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndCompare(t *testing.T) {
	var p Password
	require.NoError(t, p.set("pass1234"))

	assert.NotEmpty(t, p.hash)
	assert.NotEqual(t, "pass1234", string(p.hash))

	ok, err := p.compare("pass1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.compare("wrongpass")
	require.NoError(t, err)
	assert.False(t, ok)
}
