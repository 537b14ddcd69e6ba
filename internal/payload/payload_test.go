package payload

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type countable struct{ n int }

func (c countable) Len() int { return c.n }

func TestNew_KeepsStaticTypeTag(t *testing.T) {
	t.Parallel()

	c := New([]string{"a", "b"})
	require.Equal(t, reflect.TypeOf([]string{}), c.Type())
	require.Equal(t, []string{"a", "b"}, c.Value())
	require.False(t, c.IsEmpty())
}

func TestNew_NilPointerStillCarriesDeclaredType(t *testing.T) {
	t.Parallel()

	var p *countable
	c := New(p)
	require.Equal(t, reflect.TypeOf((*countable)(nil)), c.Type())
}

func TestEmpty_IsNoneSentinel(t *testing.T) {
	t.Parallel()

	c := Empty()
	require.True(t, c.IsEmpty())
	require.Equal(t, NoneType(), c.Type())
}

func TestLen_BestEffort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		container Container
		want      int
		counted   bool
	}{
		{"slice", New([]int{1, 2, 3}), 3, true},
		{"map", New(map[string]int{"a": 1}), 1, true},
		{"string", New("abcd"), 4, true},
		{"counter interface", New(countable{n: 7}), 7, true},
		{"uncountable scalar", New(42), 0, false},
		{"empty sentinel", Empty(), 0, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, counted := tc.container.Len()
			require.Equal(t, tc.counted, counted)
			require.Equal(t, tc.want, got)
		})
	}
}
