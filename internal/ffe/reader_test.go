package ffe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emcli/pkg/contracts/domain"
)

const sampleBlock = `** Exported by FEKO
#Frequency: 1e9
#Origin: (0,0,0)
#"Theta" "Phi" "Re(Etheta)"
0.0 0.0 1.23
1.0 0.0 1.45
`

func TestParseSingleDataset(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleBlock))
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)

	assert.Equal(t, []string{"FEKO"}, doc.Source)

	ds := doc.Data[0]
	require.NotNil(t, ds.Frequency)
	assert.Equal(t, 1e9, ds.Frequency.Value)
	assert.Equal(t, "Hz", ds.Frequency.Units)
	assert.Equal(t, &domain.Position{Units: "meters", X: 0, Y: 0, Z: 0}, ds.Position)

	require.Len(t, ds.Data, 3)
	assert.Equal(t, []domain.Value{domain.Num(0), domain.Num(1)}, ds.Data[0].Values)
	assert.Equal(t, []domain.Value{domain.Num(1.23), domain.Num(1.45)}, ds.Data[2].Values)
	assert.Equal(t, 2, ds.RowCount())
	require.NoError(t, doc.Validate())
}

func TestParseRepeatedBlockYieldsTwoDatasets(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleBlock + sampleBlock))
	require.NoError(t, err)
	require.Len(t, doc.Data, 2)

	for _, ds := range doc.Data {
		assert.Equal(t, 2, ds.RowCount())
		require.NotNil(t, ds.Frequency)
		assert.Equal(t, 1e9, ds.Frequency.Value)
	}
	// The repeated banner accumulates; nothing is overwritten.
	assert.Equal(t, []string{"FEKO", "FEKO"}, doc.Source)
}

func TestParseBoundaryLaw(t *testing.T) {
	// Consecutive header lines with no intervening data belong to one
	// dataset; a header after an accepted data row starts the next.
	input := `#Request Name: Sweep1
#Frequency: 1e9
#"Theta" "Phi"
0.0 0.0
#Request Name: Sweep2
#Frequency: 2e9
#"Theta" "Phi"
1.0 0.0
`
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Data, 2)
	assert.Equal(t, "Sweep1", doc.Data[0].Names["Request Name"])
	assert.Equal(t, "Sweep2", doc.Data[1].Names["Request Name"])
	assert.Equal(t, 2e9, doc.Data[1].Frequency.Value)
}

func TestParseShapeMismatchedRowDropped(t *testing.T) {
	input := `#"Theta" "Phi" "Re(Etheta)"
0.0 0.0 1.23
1.0 0.0
2.0 0.0 1.99
`
	doc, stats, err := ParseWithStats(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)

	ds := doc.Data[0]
	assert.Equal(t, 2, ds.RowCount())
	assert.Equal(t, []domain.Value{domain.Num(0), domain.Num(2)}, ds.Data[0].Values)
	assert.Equal(t, 1, stats.DroppedRows)
}

func TestParseFrequencyFailureIsTotal(t *testing.T) {
	input := sampleBlock + "#Frequency: not-a-number\n"
	doc, err := Parse(strings.NewReader(input))
	assert.Nil(t, doc)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseTextualRowsStoredAsStrings(t *testing.T) {
	input := `#"Theta" "Phi"
0.0 pending
1.0 2.0
`
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	ds := doc.Data[0]
	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, domain.Str("0.0"), ds.Data[0].Values[0])
	assert.Equal(t, domain.Str("pending"), ds.Data[1].Values[0])
	assert.Equal(t, domain.Num(1.0), ds.Data[0].Values[1])
}

func TestParseSecondColumnHeaderIgnored(t *testing.T) {
	// Layout is fixed by the first column-header row of a dataset; a second
	// one without intervening data is malformed header content.
	input := `#"Theta" "Phi"
#"Theta" "Phi" "Re(Etheta)"
0.0 0.0
`
	doc, stats, err := ParseWithStats(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	assert.Len(t, doc.Data[0].Data, 2)
	assert.Equal(t, 1, doc.Data[0].RowCount())
	assert.Equal(t, 1, stats.DiscardedHeaders)
}

func TestParseBlankLinesIgnored(t *testing.T) {
	input := `#"Theta" "Phi"

0.0 0.0

1.0 0.0
`
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, 2, doc.Data[0].RowCount())
}

func TestParseHeaderOnlyDatasetSealed(t *testing.T) {
	input := "#Frequency: 5e8\n"
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, 5e8, doc.Data[0].Frequency.Value)
	assert.Equal(t, 0, doc.Data[0].RowCount())
}

func TestParseEmptyInput(t *testing.T) {
	doc, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Data)
}

func TestParseDataBeforeAnyHeaderDropped(t *testing.T) {
	input := "0.0 0.0\n" + sampleBlock
	doc, stats, err := ParseWithStats(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, 2, doc.Data[0].RowCount())
	assert.Equal(t, 1, stats.DroppedRows)
}

func TestParseDescriptionLastWriteWins(t *testing.T) {
	input := `#banner one
#banner two
#"Theta"
0.0
`
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "banner two", doc.Data[0].Description)
}

func TestColumnsEqualLengthInvariant(t *testing.T) {
	// Property: every sealed dataset has all columns the same length, equal
	// to the number of shape-accepted rows.
	input := `#"Theta" "Phi" "Re(Etheta)" "Im(Etheta)"
0.0 0.0 1.0 2.0
1.0 0.0
1.0 0.0 1.1 2.1
2.0 0.0 1.2 2.2 9.9
3.0 0.0 1.3 2.3
`
	doc, stats, err := ParseWithStats(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)

	ds := doc.Data[0]
	for _, col := range ds.Data {
		assert.Len(t, col.Values, 3)
	}
	assert.Equal(t, 2, stats.DroppedRows)
	require.NoError(t, doc.Validate())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.ffe")
	require.NoError(t, os.WriteFile(path, []byte(sampleBlock), 0644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Data, 1)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.ffe"))
	assert.Error(t, err)
}
