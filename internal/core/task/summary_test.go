package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskedit/internal/core/waypoint"
)

func at(name string, lat, lon float64, shape ZoneShape) Point {
	return NewPoint(
		waypoint.Waypoint{Name: name, Location: waypoint.Location{Lat: lat, Lon: lon}},
		Zone{Shape: shape, Radius: 1000},
	)
}

func TestSequence_Labels(t *testing.T) {
	s := newSeq(t, TypeRacing, "Lasham", "Didcot", "Membury", "Lasham")

	assert.Equal(t, "S Lasham", s.Label(0))
	assert.Equal(t, "T1 Didcot", s.Label(1))
	assert.Equal(t, "T2 Membury", s.Label(2))
	assert.Equal(t, "F Lasham", s.Label(3))
	assert.Empty(t, s.Label(4))
}

func TestSequence_Distance(t *testing.T) {
	s, err := New(TypeFAIOutReturn)
	require.NoError(t, err)
	require.NoError(t, s.Append(at("A", 0, 0, ZoneLine)))
	require.NoError(t, s.Append(at("B", 0, 1, ZoneFAISector)))
	require.NoError(t, s.Append(at("C", 0, 0, ZoneLine)))

	assert.InDelta(t, 0, s.LegDistance(0), 1e-9, "start has no leg")
	assert.InDelta(t, 111195, s.LegDistance(1), 10)
	assert.InDelta(t, 2*111195, s.Distance(), 20)
	assert.InDelta(t, 0, s.LegDistance(5), 1e-9)
}

func TestSequence_Summarize(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		s, err := New(TypeFAIGoal)
		require.NoError(t, err)
		require.NoError(t, s.Append(at("A", 51, -1, ZoneLine)))
		require.NoError(t, s.Append(at("B", 52, -1, ZoneCylinder)))

		sum := s.Summarize()
		assert.True(t, sum.Valid())
		assert.Equal(t, TypeFAIGoal, sum.Type)
		assert.Equal(t, "FAI goal", sum.Title)
		assert.Equal(t, 2, sum.Points)
		assert.Equal(t, 2, sum.Capacity)
		assert.Greater(t, sum.Distance, 100000.0)
	})

	t.Run("too few points and disallowed zone", func(t *testing.T) {
		s, err := New(TypeFAITriangle)
		require.NoError(t, err)
		require.NoError(t, s.Append(at("A", 51, -1, ZoneKeyhole)))

		sum := s.Summarize()
		assert.False(t, sum.Valid())
		assert.Contains(t, sum.Problems, "needs at least 4 points")
		assert.Contains(t, sum.Problems, "S: keyhole zone not allowed for start")
	})
}

func TestRules_DefaultZone(t *testing.T) {
	rules, err := TypeAAT.Rules()
	require.NoError(t, err)

	assert.Equal(t, Zone{Shape: ZoneCylinder, Radius: 20000}, rules.DefaultZone(RoleTurn))
	assert.Equal(t, Zone{Shape: ZoneLine, Radius: 5000}, rules.DefaultZone(RoleStart))
	assert.True(t, rules.AllowsZone(RoleFinish, ZoneCylinder))
	assert.False(t, rules.AllowsZone(RoleTurn, ZoneKeyhole))
}

func TestTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(string(typ), func(t *testing.T) {
			rules, err := typ.Rules()
			require.NoError(t, err)
			assert.True(t, typ.IsValid())
			assert.NotEmpty(t, typ.Title())
			assert.GreaterOrEqual(t, rules.Capacity, rules.MinPoints)
			assert.NotNil(t, rules.Swap)
			for _, role := range []Role{RoleStart, RoleTurn, RoleFinish} {
				assert.NotEmpty(t, rules.Zones[role], "zones for %s", role)
			}
		})
	}
	assert.False(t, Type("nope").IsValid())
}
