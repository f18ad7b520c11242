package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emcli/pkg/contracts/domain"
)

func sampleDocument() *domain.Document {
	return &domain.Document{
		Type:   "far field",
		Source: []string{"FEKO"},
		Data: []domain.Dataset{{
			Frequency: &domain.Measurement{Value: 1e9, Units: "Hz"},
			Position:  &domain.Position{Units: "meters"},
			Names:     map[string]string{"Request Name": "Sweep1"},
			Data: []domain.Column{
				{Quantity: "coordinate", VectorComponent: "theta", Units: "degrees", Values: []domain.Value{domain.Num(0), domain.Num(1)}},
				{Quantity: "electric field", VectorComponent: "theta", PhasorComponent: "real", Units: "V/m", Values: []domain.Value{domain.Num(1.23), domain.Num(1.45)}},
			},
		}},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pattern.json")
	doc := sampleDocument()

	require.NoError(t, SaveDocument(path, doc))

	loaded, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)

	// Numbers must come back as numbers, not strings.
	assert.False(t, loaded.Data[0].Data[0].Values[0].IsText)
}

func TestLoadDocumentMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadDocument(path)
	assert.Error(t, err)
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadDocumentInvalid(t *testing.T) {
	// Deserializes fine but violates the alignment invariant.
	payload := `{"data":[{"data":[
		{"quantity":"coordinate","vectorComponent":"theta","data":[0,1]},
		{"quantity":"coordinate","vectorComponent":"phi","data":[0]}
	]}]}`
	path := filepath.Join(t.TempDir(), "misaligned.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	_, err := LoadDocument(path)
	assert.Error(t, err)
}
