package tag

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssemblerConcatenatesDigits(t *testing.T) {
	var a Assembler
	for _, r := range "1234" {
		require.True(t, a.Push(r))
	}
	require.Equal(t, 4, a.Len())
	require.Equal(t, "1234", a.TakeAndReset())
	require.Zero(t, a.Len())
	require.Empty(t, a.TakeAndReset())
}

func TestAssemblerIgnoresNonDigits(t *testing.T) {
	var a Assembler
	for _, r := range "1a2 b-3\t٣" {
		a.Push(r)
	}
	require.Equal(t, "123", a.TakeAndReset())
}

func TestAssemblerRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	var a Assembler
	for i := 0; i < 200; i++ {
		var want strings.Builder
		for n := rng.IntN(24); n > 0; n-- {
			r := rune('0' + rng.IntN(10))
			want.WriteRune(r)
			a.Push(r)
		}
		require.Equal(t, want.String(), a.TakeAndReset())
		require.Zero(t, a.Len())
	}
}
