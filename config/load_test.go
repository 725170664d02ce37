package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpdsim/engine/rng"
)

func TestLoadAppliesOverridesOntoDefaults(t *testing.T) {
	input := `
# a run tuned for a small regional pool
output_folder=regional_output
max_cycle_size=4
pair_arrival_rate=2.5
allow_AB_bridge_donors=true
utility_scheme=5Y_SURVIVAL
planning_model=PARAMETERIZED
seed_selection=42
seed_expected_utility=99
`
	p, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "regional_output", p.OutputFolder)
	assert.Equal(t, 4, p.MaxCycleSize)
	assert.Equal(t, 2.5, p.PairArrivalRate)
	assert.True(t, p.AllowABBridgeDonors)
	assert.Equal(t, 1, p.UtilityScheme)
	assert.Equal(t, Parameterized, p.PlanningModel)
	assert.Equal(t, int64(42), p.Seeds.Get(rng.PurposeSelection))
	assert.Equal(t, int64(99), p.Seeds.Get(rng.PurposeExpectedUtility))

	// everything not mentioned keeps the documented default
	assert.Equal(t, 3, p.MaxChainLength)
	assert.Equal(t, "run", p.OutputSubfolder)
}

func TestLoadEmptyInputYieldsDefaults(t *testing.T) {
	p, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	_, err := Load(strings.NewReader("this line has no separator"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
}

func TestLoadRejectsUnknownOptimizationScheme(t *testing.T) {
	_, err := Load(strings.NewReader("optimization_scheme=NOT_A_SCHEME"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOptimizationScheme))
}

func TestLoadRejectsUnknownUtilityScheme(t *testing.T) {
	_, err := Load(strings.NewReader("utility_scheme=NOT_A_SCHEME"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownUtilityScheme))
}

func TestLoadIgnoresUnrecognizedKeys(t *testing.T) {
	p, err := Load(strings.NewReader("some_future_key=some_future_value"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}
