package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembership_KeepsInsertionOrder(t *testing.T) {
	var m Membership
	require.NoError(t, m.Add("zed", "later"))
	require.NoError(t, m.Add("amy", "first"))
	require.NoError(t, m.Add("zed", "again"))

	assert.Equal(t, []string{"zed", "amy"}, m.Owners())
	assert.Equal(t, []string{"later", "again"}, m.Names("zed"))
	assert.Equal(t, 2, m.Len())
}

func TestMembership_Set(t *testing.T) {
	var m Membership
	require.NoError(t, m.Set("misa", []string{"a", "b"}))
	require.NoError(t, m.Set("misa", []string{"c"}))

	assert.Equal(t, []string{"c"}, m.Names("misa"))
	assert.Error(t, m.Set("", []string{"a"}))
	assert.Error(t, m.Set("misa", []string{""}))
}

func TestMembership_CloneIsDeep(t *testing.T) {
	var m Membership
	require.NoError(t, m.Add("misa", "a"))

	c := m.Clone()
	require.NoError(t, c.Add("misa", "b"))

	assert.Equal(t, []string{"a"}, m.Names("misa"))
	assert.Equal(t, []string{"a", "b"}, c.Names("misa"))
	assert.False(t, m.Equal(c))
}

func TestMembership_Equal(t *testing.T) {
	var a, b Membership
	require.NoError(t, a.Add("x", "1"))
	require.NoError(t, a.Add("y", "2"))
	require.NoError(t, b.Add("y", "2"))
	require.NoError(t, b.Add("x", "1"))

	assert.False(t, a.Equal(b), "owner order matters")
	assert.True(t, a.Equal(a.Clone()))
	assert.True(t, Membership{}.Equal(Membership{}))
}
