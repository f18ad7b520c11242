package ffe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emcli/pkg/contracts/domain"
)

func TestMatchColumn(t *testing.T) {
	tests := []struct {
		label string
		want  domain.Column
	}{
		{"Theta", domain.Column{Quantity: "coordinate", VectorComponent: "theta", Units: "degrees"}},
		{"Phi", domain.Column{Quantity: "coordinate", VectorComponent: "phi", Units: "degrees"}},
		{"Re(Etheta)", domain.Column{Quantity: "electric field", VectorComponent: "theta", PhasorComponent: "real", Units: "V/m"}},
		{"Im(Etheta)", domain.Column{Quantity: "electric field", VectorComponent: "theta", PhasorComponent: "imaginary", Units: "V/m"}},
		{"Re(Ephi)", domain.Column{Quantity: "electric field", VectorComponent: "phi", PhasorComponent: "real", Units: "V/m"}},
		{"Im(Ephi)", domain.Column{Quantity: "electric field", VectorComponent: "phi", PhasorComponent: "imaginary", Units: "V/m"}},
		{"Directivity(Theta)", domain.Column{Quantity: "directivity", VectorComponent: "theta", PhasorComponent: "magnitude", Units: "dBi"}},
		{"Directivity(Phi)", domain.Column{Quantity: "directivity", VectorComponent: "phi", PhasorComponent: "magnitude", Units: "dBi"}},
		{"Directivity(Total)", domain.Column{Quantity: "directivity", VectorComponent: "total", PhasorComponent: "magnitude", Units: "dBi"}},
		{"Gain(Theta)", domain.Column{Quantity: "gain", VectorComponent: "theta", PhasorComponent: "magnitude", Units: "dBi"}},
		{"Gain(Total)", domain.Column{Quantity: "gain", VectorComponent: "total", PhasorComponent: "magnitude", Units: "dBi"}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, matchColumn(tt.label))
		})
	}
}

func TestMatchColumnCaseInsensitive(t *testing.T) {
	got := matchColumn("re(etheta)")
	assert.Equal(t, "electric field", got.Quantity)
	assert.Equal(t, "real", got.PhasorComponent)
}

func TestMatchColumnUnknown(t *testing.T) {
	got := matchColumn("Foo")
	assert.Equal(t, domain.QuantityUnknown, got.Quantity)
	assert.Equal(t, "Foo", got.Description)
	assert.Empty(t, got.Units)
}

func TestMatchColumnTemplateIsolation(t *testing.T) {
	// Each match must yield an independent column; appending values to one
	// dataset's columns must not leak into another parse.
	a := matchColumn("Theta")
	a.Values = append(a.Values, domain.Num(1))

	b := matchColumn("Theta")
	assert.Empty(t, b.Values)
}

func TestSplitColumnLabels(t *testing.T) {
	labels := splitColumnLabels(`"Theta" "Phi" "Re(Etheta)" "Foo"`)
	require.Equal(t, []string{"Theta", "Phi", "Re(Etheta)", "Foo"}, labels)
}

func TestColumnHeaderRowFourLabels(t *testing.T) {
	// Every label yields a descriptor, matched or not.
	cols := matchColumns(splitColumnLabels(`"Theta" "Phi" "Re(Etheta)" "Foo"`))
	require.Len(t, cols, 4)
	assert.Equal(t, "coordinate", cols[0].Quantity)
	assert.Equal(t, "theta", cols[0].VectorComponent)
	assert.Equal(t, "coordinate", cols[1].Quantity)
	assert.Equal(t, "phi", cols[1].VectorComponent)
	assert.Equal(t, "electric field", cols[2].Quantity)
	assert.Equal(t, "real", cols[2].PhasorComponent)
	assert.Equal(t, "V/m", cols[2].Units)
	assert.Equal(t, domain.QuantityUnknown, cols[3].Quantity)
	assert.Equal(t, "Foo", cols[3].Description)
}
