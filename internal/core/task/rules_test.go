package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesTable(t *testing.T) {
	capacities := map[Type]int{
		TypeFAIGeneral:   13,
		TypeFAITriangle:  4,
		TypeFAIOutReturn: 3,
		TypeFAIGoal:      2,
		TypeRacing:       13,
		TypeAAT:          13,
		TypeMixed:        13,
		TypeTouring:      10,
	}

	require.Len(t, Types(), len(capacities))
	for _, typ := range Types() {
		rules, err := typ.Rules()
		require.NoError(t, err, typ)
		assert.Equal(t, capacities[typ], rules.Capacity, typ)
		assert.NotEmpty(t, rules.Title, typ)
		assert.NotNil(t, rules.Swap, typ)

		for _, role := range []Role{RoleStart, RoleTurn, RoleFinish} {
			zone := rules.DefaultZone(role)
			assert.True(t, rules.AllowsZone(role, zone.Shape), "%s %s default zone", typ, role)
			assert.Positive(t, zone.Radius, "%s %s default radius", typ, role)
		}
	}
}

func TestType_Unknown(t *testing.T) {
	typ := Type("balloon")
	assert.False(t, typ.IsValid())

	_, err := typ.Rules()
	assert.Error(t, err)
}

func TestRules_FAITypesSwapAcrossEnds(t *testing.T) {
	points := []Point{pt("S"), pt("T1"), pt("F")}
	for _, typ := range []Type{TypeFAIGeneral, TypeFAITriangle, TypeFAIOutReturn, TypeFAIGoal} {
		rules, err := typ.Rules()
		require.NoError(t, err)
		assert.True(t, rules.Swap(points, 0), "%s start swap", typ)
		assert.True(t, rules.Swap(points, 1), "%s finish swap", typ)
	}
}

func TestRules_FitZone(t *testing.T) {
	rules, err := TypeFAIGeneral.Rules()
	require.NoError(t, err)

	line := Zone{Shape: ZoneLine, Radius: 1000}
	assert.Equal(t, line, rules.FitZone(RoleStart, line))
	assert.Equal(t, Zone{Shape: ZoneFAISector, Radius: 10000}, rules.FitZone(RoleTurn, line))

	cyl := Zone{Shape: ZoneCylinder, Radius: 750}
	assert.Equal(t, cyl, rules.FitZone(RoleTurn, cyl), "allowed zones keep their radius")
	assert.Equal(t, line, Rules{}.FitZone(RoleTurn, line), "no zone table keeps the zone")
}

func TestAnySwap(t *testing.T) {
	assert.True(t, AnySwap(nil, 0))
}

func TestDefaultZone_Fallback(t *testing.T) {
	assert.Equal(t, Zone{Shape: ZoneCylinder, Radius: 500}, Rules{}.DefaultZone(RoleTurn))
}
