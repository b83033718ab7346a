package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPart_Phase(t *testing.T) {
	p := &Part{Code: "P-1"}
	p.Sprint.PONumber = "PO-7"

	d, err := p.Phase(PhaseSprint)
	require.NoError(t, err)
	assert.True(t, d.HasPO())

	d, err = p.Phase(PhaseProduction)
	require.NoError(t, err)
	assert.False(t, d.HasPO())

	_, err = p.Phase("pilot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown phase")
}

func TestPart_DisplayCode(t *testing.T) {
	p := &Part{Code: "TBD-004"}
	assert.Equal(t, "TBD-004", p.DisplayCode())
	p.FinalCode = "100-2231-01"
	assert.Equal(t, "100-2231-01", p.DisplayCode())
}

func TestPart_Validate(t *testing.T) {
	assert.Error(t, (&Part{}).Validate())
	assert.NoError(t, (&Part{Code: "X", Stage: StageDesign, FreightType: FreightAir}).Validate())
	assert.Error(t, (&Part{Code: "X", Stage: "shipping"}).Validate())
	assert.Error(t, (&Part{Code: "X", FreightType: "rail"}).Validate())
}
