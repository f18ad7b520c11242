package ffe

import (
	"strconv"
	"strings"

	"emcli/pkg/contracts/domain"
)

// dataRow is one parsed data line. Coercion is all-or-nothing: the row is
// numeric only if every token parses as a float, otherwise the whole row is
// kept as raw string tokens.
type dataRow struct {
	values []domain.Value
	text   bool
}

func (r *dataRow) len() int { return len(r.values) }

// parseDataLine parses a line classified as data. Blank lines yield nil and
// are ignored by the caller.
func parseDataLine(line string) *dataRow {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	numeric := make([]domain.Value, 0, len(tokens))
	for _, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			// One bad token forces the whole row to text.
			text := make([]domain.Value, 0, len(tokens))
			for _, t := range tokens {
				text = append(text, domain.Str(t))
			}
			return &dataRow{values: text, text: true}
		}
		numeric = append(numeric, domain.Num(f))
	}
	return &dataRow{values: numeric}
}
