package heat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rvheat/rvheat/internal/asm"
)

func TestDecayIdempotentWhenCold(t *testing.T) {
	var v Vector
	v.Decay()
	require.Equal(t, Vector{}, v, "decay of an all-cold vector must be a no-op")
}

func TestRefreshThenDecayReturnsToZero(t *testing.T) {
	const maxHeat = 5

	var v Vector
	v.Refresh(asm.T0, maxHeat)
	require.Equal(t, maxHeat, v[asm.T0])

	for step := 1; step <= maxHeat; step++ {
		v.Decay()
		require.Equal(t, maxHeat-step, v[asm.T0], "after %d decay steps", step)
	}
	require.Equal(t, 0, v[asm.T0], "register must be cold after maxHeat decays and no sooner")
}

func TestVectorBoundsUnderRandomOperations(t *testing.T) {
	const maxHeat = 7
	rng := rand.New(rand.NewSource(1))

	var v Vector
	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			v.Decay()
		} else {
			v.Refresh(asm.Register(rng.Intn(asm.NumRegisters)), maxHeat)
		}
		for r, level := range v {
			require.GreaterOrEqual(t, level, 0, "register %d below zero", r)
			require.LessOrEqual(t, level, maxHeat, "register %d above max heat", r)
		}
	}
}

func TestMediateTruncatesTowardZero(t *testing.T) {
	a := Vector{0: 4}
	b := Vector{1: 4}
	mean := Mediate([]Vector{a, b})
	require.Equal(t, 2, mean[0])
	require.Equal(t, 2, mean[1])

	a = Vector{0: 1, 1: 2}
	b = Vector{0: 2, 1: 1}
	mean = Mediate([]Vector{a, b})
	require.Equal(t, 1, mean[0], "3/2 must truncate to 1, not round up")
	require.Equal(t, 1, mean[1])
}

func TestMediateSingleVectorIsIdentity(t *testing.T) {
	v := Vector{0: 3, 5: 1, 31: 7}
	require.Equal(t, v, Mediate([]Vector{v}))
}

func TestMediateEmptyInputPanics(t *testing.T) {
	require.Panics(t, func() { Mediate(nil) })
}
