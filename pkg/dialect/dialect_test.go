package dialect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderChaining(t *testing.T) {
	d := NewDialect("Test").
		Label("Test Language").
		Extension(".tst").
		Aliases("TESTLANG").
		FallsBackTo("JS").
		Build()

	require.NotNil(t, d)
	assert.Equal(t, "test", d.Name)
	assert.Equal(t, "Test Language", d.Label)
	assert.Equal(t, ".tst", d.Extension)
	assert.Equal(t, []string{"testlang"}, d.Aliases)
	assert.Equal(t, "js", d.FallsBackTo)
}

func TestRegistry(t *testing.T) {
	d := NewDialect("registry-test").Aliases("rt").Build()
	Register(d)

	got, ok := Get("REGISTRY-TEST")
	require.True(t, ok)
	assert.Same(t, d, got)

	got, ok = Get("rt")
	require.True(t, ok, "aliases resolve to the canonical dialect")
	assert.Same(t, d, got)

	_, ok = Get("nope")
	assert.False(t, ok)

	assert.Contains(t, List(), "registry-test")
}

func TestResolve(t *testing.T) {
	d := NewDialect("resolve-test").Build()
	Register(d)

	got, err := Resolve("resolve-test")
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = Resolve("missing-dialect")
	var unknown *UnknownDialectError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "missing-dialect", unknown.Name)
	assert.Contains(t, err.Error(), "resolve-test")

	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	SetDefault(nil)
	_, err = Resolve("")
	assert.ErrorIs(t, err, ErrDialectRequired)

	SetDefault(d)
	got, err = Resolve("  ")
	require.NoError(t, err)
	assert.Same(t, d, got)
}
