package filetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFiletype(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"pattern.ffe", FiletypeFEKO},
		{"nearfield.EFE", FiletypeFEKO},
		{"probe.hfe", FiletypeFEKO},
		{"run.out", FiletypeFEKO},
		{"antenna.fz", FiletypeXGTD},
		{"antenna.uan", FiletypeXGTD},
	}
	for _, tt := range tests {
		got, err := DetectFiletype(tt.filename, "")
		require.NoError(t, err, tt.filename)
		assert.Equal(t, tt.want, got, tt.filename)
	}
}

func TestDetectFiletypeOverride(t *testing.T) {
	got, err := DetectFiletype("whatever.bin", "FEKO")
	require.NoError(t, err)
	assert.Equal(t, FiletypeFEKO, got)
}

func TestDetectFiletypeUnknown(t *testing.T) {
	_, err := DetectFiletype("report.pdf", "")
	assert.Error(t, err)
}

func TestDetectDatatype(t *testing.T) {
	got, err := DetectDatatype("pattern.ffe", "")
	require.NoError(t, err)
	assert.Equal(t, DatatypeFarField, got)

	got, err = DetectDatatype("probe.efe", "")
	require.NoError(t, err)
	assert.Equal(t, DatatypeNearField, got)

	// .out files carry no default datatype
	got, err = DetectDatatype("run.out", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKnownExtensions(t *testing.T) {
	exts := KnownExtensions()
	assert.Len(t, exts, 6)
	assert.Contains(t, exts, "ffe")
}
