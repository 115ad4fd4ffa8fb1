package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryPriorities(t *testing.T) {
	r := defaultRegistry(t)
	assert.Equal(t, 2, r.MaxPriority())
	assert.Equal(t, 1, r.MinPriority())
	assert.Equal(t, []int{2, 1}, r.tiers)
	assert.Equal(t, 4, r.Len())

	require.NoError(t, r.Register(Power()))
	require.NoError(t, r.Register(Operator{Symbol: "&", Priority: -4, Combine: ipow}))
	assert.Equal(t, 3, r.MaxPriority())
	assert.Equal(t, -4, r.MinPriority())
	assert.Equal(t, []int{3, 2, 1, -4}, r.tiers)
}

func TestRegistryOverride(t *testing.T) {
	r := defaultRegistry(t)
	times := Times()
	times.Priority = 7
	require.NoError(t, r.Register(times))
	op, ok := r.Lookup("*")
	require.True(t, ok)
	assert.Equal(t, 7, op.Priority)
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, 7, r.MaxPriority())
}

func TestRegistryEmpty(t *testing.T) {
	_, err := NewRegistry()
	assert.ErrorIs(t, err, ErrNoOperators)

	var r Registry
	assert.Equal(t, 0, r.MaxPriority())
	assert.Equal(t, 0, r.MinPriority())
	_, ok := r.Lookup("+")
	assert.False(t, ok)
	require.NoError(t, r.Register(Minus()))
	assert.Equal(t, 1, r.MaxPriority())
}

func TestRegistryRejects(t *testing.T) {
	_, err := NewRegistry(Plus(), Operator{Symbol: " ", Combine: ipow})
	assert.ErrorIs(t, err, ErrBadOperator)
	_, err = NewRegistry(Operator{Symbol: ")", Combine: ipow})
	assert.ErrorIs(t, err, ErrBadOperator)
}

func TestRegistryMatch(t *testing.T) {
	r := defaultRegistry(t, Operator{Symbol: "--", Priority: 0, Combine: ipow})
	sym, ok := r.match("--3")
	require.True(t, ok)
	assert.Equal(t, "--", sym)
	sym, ok = r.match("-3")
	require.True(t, ok)
	assert.Equal(t, "-", sym)
	_, ok = r.match("3-")
	assert.False(t, ok)
}
