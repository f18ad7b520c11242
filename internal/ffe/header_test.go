package ffe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emcli/pkg/contracts/domain"
)

func TestIsHeaderLine(t *testing.T) {
	assert.True(t, isHeaderLine("#Frequency: 1e9"))
	assert.True(t, isHeaderLine("** Exported by FEKO"))
	assert.False(t, isHeaderLine("0.0 0.0 1.23"))
	assert.False(t, isHeaderLine(""))
}

func TestInterpretHeaderColumnRow(t *testing.T) {
	as, err := interpretHeader(`#"Theta" "Phi"`, 1)
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, "data", as[0].key)
	assert.Equal(t, scopeDataset, as[0].scope)

	cols := as[0].value.([]domain.Column)
	require.Len(t, cols, 2)
	assert.Equal(t, "theta", cols[0].VectorComponent)
	assert.Equal(t, "phi", cols[1].VectorComponent)
}

func TestInterpretHeaderKeyValue(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKey   string
		wantScope scope
		wantValue any
	}{
		{"source", "#Source: Vendor X", "source", scopeTopLevel, "Vendor X"},
		{"date", "*Date: 2024-05-01", "date", scopeTopLevel, "2024-05-01"},
		{"frequency", "#Frequency:   1e9", "frequency", scopeDataset, &domain.Measurement{Value: 1e9, Units: "Hz"}},
		{"origin", "#Origin: (0, 0, 1.5)", "position", scopeDataset, &domain.Position{Units: "meters", X: 0, Y: 0, Z: 1.5}},
		{"request name", "#Request Name: Sweep1", "Request Name", scopeDataset, "Sweep1"},
		{"antenna name", "#Antenna Name: Horn A", "Antenna Name", scopeDataset, "Horn A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as, err := interpretHeader(tt.line, 1)
			require.NoError(t, err)
			require.Len(t, as, 1)
			assert.Equal(t, tt.wantKey, as[0].key)
			assert.Equal(t, tt.wantScope, as[0].scope)
			assert.Equal(t, tt.wantValue, as[0].value)
		})
	}
}

func TestInterpretHeaderKeyCaseInsensitive(t *testing.T) {
	as, err := interpretHeader("#FREQUENCY: 2.5e9", 1)
	require.NoError(t, err)
	require.Len(t, as, 1)
	m := as[0].value.(*domain.Measurement)
	assert.Equal(t, 2.5e9, m.Value)
}

func TestInterpretHeaderUnrecognizedKeyDropped(t *testing.T) {
	as, err := interpretHeader("#Coordinate System: Spherical", 1)
	require.NoError(t, err)
	assert.Empty(t, as)
}

func TestInterpretHeaderFrequencyNotNumeric(t *testing.T) {
	_, err := interpretHeader("#Frequency: fast", 7)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 7, pe.Line)
}

func TestInterpretHeaderOriginErrors(t *testing.T) {
	_, err := interpretHeader("#Origin: (0, 0)", 3)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)

	_, err = interpretHeader("#Origin: (a, b, c)", 3)
	require.ErrorAs(t, err, &pe)
}

func TestInterpretHeaderOriginWhitespaceSeparated(t *testing.T) {
	as, err := interpretHeader("#Origin: (1.0 2.0 3.0)", 1)
	require.NoError(t, err)
	pos := as[0].value.(*domain.Position)
	assert.Equal(t, &domain.Position{Units: "meters", X: 1, Y: 2, Z: 3}, pos)
}

func TestInterpretHeaderExportedBy(t *testing.T) {
	as, err := interpretHeader("** Exported by FEKO v2024", 1)
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, "source", as[0].key)
	assert.Equal(t, scopeTopLevel, as[0].scope)
	assert.Equal(t, "FEKO v2024", as[0].value)
}

func TestInterpretHeaderDescriptionFallback(t *testing.T) {
	as, err := interpretHeader("## File format version 3", 1)
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, "description", as[0].key)
	assert.Equal(t, scopeDataset, as[0].scope)
	assert.Equal(t, "File format version 3", as[0].value)
}

func TestInterpretHeaderColonWithoutValue(t *testing.T) {
	// A colon not followed by whitespace cannot split into key/value; the
	// line degrades to a freeform description instead of failing.
	as, err := interpretHeader("#Timestamp 12:30", 1)
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, "description", as[0].key)
}

func TestInterpretHeaderStripsMarkers(t *testing.T) {
	as, err := interpretHeader("**## \t banner text", 1)
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, "banner text", as[0].value)
}
