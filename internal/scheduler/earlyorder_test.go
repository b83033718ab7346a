package scheduler

import (
	"testing"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEarlyOrder_FlagsOrderBeforeDesignTransfer(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(100)) // order by day 35
	seq := gates(map[domain.GateKey]int{
		domain.GateBriefed:        0,
		domain.GateDesignApproval: 20,
		domain.GateDesignTransfer: 50,
		domain.GateSprint:         100,
	})

	res, err := CheckEarlyOrder(p, seq, day(10))
	require.NoError(t, err)

	assert.True(t, res.Evaluable)
	assert.True(t, res.NeedsEarlyOrder)
	assert.Equal(t, domain.PhaseSprint, res.Phase)
	require.NotNil(t, res.PrecedesGate)
	assert.Equal(t, domain.GateDesignTransfer, *res.PrecedesGate)
	require.NotNil(t, res.AuthorizingGate)
	assert.Equal(t, domain.GateDesignTransfer, *res.AuthorizingGate)
	require.NotNil(t, res.LastReachedGate)
	assert.Equal(t, domain.GateBriefed, *res.LastReachedGate)
}

func TestCheckEarlyOrder_NotFlaggedOnceGatePassed(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(100))
	seq := gates(map[domain.GateKey]int{domain.GateDesignTransfer: 50})

	res, err := CheckEarlyOrder(p, seq, day(50))
	require.NoError(t, err)
	assert.True(t, res.Evaluable)
	assert.False(t, res.NeedsEarlyOrder)
}

func TestCheckEarlyOrder_NotFlaggedWhenOrderByAfterGate(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(200)) // order by day 135
	seq := gates(map[domain.GateKey]int{domain.GateDesignTransfer: 50})

	res, err := CheckEarlyOrder(p, seq, day(10))
	require.NoError(t, err)
	assert.False(t, res.NeedsEarlyOrder)
	require.Len(t, res.Phases, 1)
	assert.Nil(t, res.Phases[0].PrecedesGate, "no dated gate after day 135")
}

func TestCheckEarlyOrder_FallsForwardToNextDatedGate(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(100))
	seq := gates(map[domain.GateKey]int{
		domain.GateDesignIntent: 5,
		domain.GateSprint:       60,
	})

	res, err := CheckEarlyOrder(p, seq, day(10))
	require.NoError(t, err)
	assert.True(t, res.NeedsEarlyOrder)
	require.NotNil(t, res.AuthorizingGate)
	assert.Equal(t, domain.GateSprint, *res.AuthorizingGate)
	require.NotNil(t, res.PrecedesGate)
	assert.Equal(t, domain.GateSprint, *res.PrecedesGate)
}

func TestCheckEarlyOrder_OnlyEarlierGatesDated(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(100))
	seq := gates(map[domain.GateKey]int{domain.GateBriefed: 0, domain.GateDesignIntent: 40})

	res, err := CheckEarlyOrder(p, seq, day(10))
	require.NoError(t, err)
	assert.False(t, res.Evaluable)
	assert.False(t, res.NeedsEarlyOrder)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnUnresolvableRisk, res.Warnings[0].Code)
}

func TestCheckEarlyOrder_ScenarioD_UndatedGates(t *testing.T) {
	p := newPart(withBaseDays(365), withSprintTarget(20), withProductionTarget(30))

	res, err := CheckEarlyOrder(p, domain.NewGateSequence(), day(0))
	require.NoError(t, err)

	assert.False(t, res.NeedsEarlyOrder)
	assert.False(t, res.Evaluable)
	assert.Nil(t, res.PrecedesGate)
	assert.Nil(t, res.LastReachedGate)
}

func TestCheckEarlyOrder_CommittedPhaseNotFlagged(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(100), withSprintPO("PO-1"))
	seq := gates(map[domain.GateKey]int{domain.GateDesignTransfer: 50})

	res, err := CheckEarlyOrder(p, seq, day(10))
	require.NoError(t, err)
	assert.False(t, res.NeedsEarlyOrder)
	require.Len(t, res.Phases, 1)
	assert.True(t, res.Phases[0].Committed)
}

func TestCheckEarlyOrder_ReportsEarliestFlaggedPhase(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(100), withProductionTarget(90))
	seq := gates(map[domain.GateKey]int{
		domain.GateDesignApproval: 30,
		domain.GateDesignTransfer: 80,
	})

	res, err := CheckEarlyOrder(p, seq, day(0))
	require.NoError(t, err)

	assert.True(t, res.NeedsEarlyOrder)
	assert.Equal(t, domain.PhaseProduction, res.Phase)
	require.NotNil(t, res.OrderByDate)
	assert.Equal(t, day(25), *res.OrderByDate)
	require.NotNil(t, res.PrecedesGate)
	assert.Equal(t, domain.GateDesignApproval, *res.PrecedesGate)
	assert.Len(t, res.Phases, 2)
}

func TestCheckEarlyOrder_PrecedesGateTieUsesProgramOrder(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(100))
	seq := gates(map[domain.GateKey]int{
		domain.GateSprint:         50,
		domain.GateDesignTransfer: 50,
	})

	res, err := CheckEarlyOrder(p, seq, day(0))
	require.NoError(t, err)
	require.NotNil(t, res.PrecedesGate)
	assert.Equal(t, domain.GateDesignTransfer, *res.PrecedesGate)
}

func TestCheckEarlyOrder_ConfigurableAuthorizingGate(t *testing.T) {
	p := newPart(withBaseDays(30), withSprintTarget(100))
	seq := gates(map[domain.GateKey]int{
		domain.GateDesignApproval: 30,
		domain.GateDesignTransfer: 50,
	})
	pol := DefaultPolicy()
	pol.AuthorizingGate = domain.GateDesignApproval

	res, err := pol.CheckEarlyOrder(p, seq, day(0))
	require.NoError(t, err)
	assert.False(t, res.NeedsEarlyOrder, "order by day 35 is after design approval on day 30")
}

func TestCheckEarlyOrder_NilPart(t *testing.T) {
	_, err := CheckEarlyOrder(nil, nil, day(0))
	assert.ErrorIs(t, err, ErrNilPart)
}
