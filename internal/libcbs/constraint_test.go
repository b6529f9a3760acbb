package libcbs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockedVertexConstraintBindsArrival(t *testing.T) {
	g := corridor(3)
	u, v := g.At(0, 0), g.At(1, 0)

	cs := Constraints{{Agent: 0, V: v, T: 2}}
	require.True(t, Blocked(cs, 0, u, v, 1), "a vertex constraint at T binds the transition arriving at T (departing at T-1)")
	require.False(t, Blocked(cs, 0, u, v, 2), "a vertex constraint at T=2 must not block a transition departing at t=2")
	require.False(t, Blocked(cs, 1, u, v, 1), "constraint on a different agent should not block")
}

func TestBlockedEdgeConstraintBindsDeparture(t *testing.T) {
	g := corridor(3)
	u, v := g.At(0, 0), g.At(1, 0)

	cs := Constraints{{Agent: 0, IsEdge: true, U: u, V: v, T: 1}}
	require.True(t, Blocked(cs, 0, u, v, 1), "edge constraint should block its exact departure timestep")
	require.False(t, Blocked(cs, 0, u, v, 0), "edge constraint at T=1 must not block a transition departing at t=0")
	require.False(t, Blocked(cs, 0, v, u, 1), "edge constraint should not block the reverse traversal")
}

func TestConstraintsForAndMaxTime(t *testing.T) {
	g := corridor(3)
	v := g.At(1, 0)
	cs := Constraints{
		{Agent: 0, V: v, T: 1},
		{Agent: 0, V: v, T: 4},
		{Agent: 1, V: v, T: 9},
	}
	require.Len(t, cs.For(0), 2)
	require.Equal(t, 4, cs.MaxTime(0))
	require.Equal(t, -1, cs.MaxTime(2), "an unconstrained agent should report -1")
}

func TestConstraintsMaxTimeAt(t *testing.T) {
	g := corridor(3)
	v, other := g.At(1, 0), g.At(2, 0)
	cs := Constraints{
		{Agent: 0, V: v, T: 3},
		{Agent: 0, V: other, T: 7},
	}
	require.Equal(t, 3, cs.MaxTimeAt(0, v))
	require.Equal(t, 7, cs.MaxTimeAt(0, other))
}
