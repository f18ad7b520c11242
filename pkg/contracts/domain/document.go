package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Document is the normalized representation of one simulation export file.
// Top-level metadata keys accumulate: every occurrence of a "source" or
// "date" header in the file appends an entry, so nothing is silently
// overwritten when a vendor repeats a banner.
type Document struct {
	ID     string    `json:"id,omitempty" validate:"omitempty,uuid"`
	Type   string    `json:"type,omitempty"`
	Source []string  `json:"source,omitempty"`
	Date   []string  `json:"date,omitempty"`
	Data   []Dataset `json:"data" validate:"dive"`
}

// Dataset is one coherent block of metadata plus column data, typically one
// sweep/frequency/configuration of the simulation.
type Dataset struct {
	Frequency   *Measurement      `json:"frequency,omitempty"`
	Position    *Position         `json:"position,omitempty"`
	Description string            `json:"description,omitempty"`
	Names       map[string]string `json:"names,omitempty"`
	Data        []Column          `json:"data" validate:"dive"`
}

// Column is a typed data column: a quantity descriptor plus the ordered
// values appended from accepted data rows. Values are uniform within one
// dataset: all numeric or all textual.
type Column struct {
	Quantity        string  `json:"quantity" validate:"required"`
	VectorComponent string  `json:"vectorComponent,omitempty" validate:"omitempty,oneof=theta phi total"`
	PhasorComponent string  `json:"phasorComponent,omitempty" validate:"omitempty,oneof=real imaginary magnitude"`
	Units           string  `json:"units,omitempty"`
	Description     string  `json:"description,omitempty"`
	Values          []Value `json:"data"`
}

// Measurement is a scalar physical value tagged with its unit string.
type Measurement struct {
	Value float64 `json:"value"`
	Units string  `json:"units" validate:"required"`
}

// Position is a cartesian coordinate tagged with its unit string.
type Position struct {
	Units string  `json:"units" validate:"required"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// QuantityUnknown marks a column whose label matched no known pattern. The
// column still participates in the layout so data stays aligned with the
// source file.
const QuantityUnknown = "unknown"

// Value is a single cell. Columns built from an all-numeric data section hold
// numbers; a data section that failed numeric coercion holds raw tokens.
type Value struct {
	Number float64
	Text   string
	IsText bool
}

// Num returns a numeric Value.
func Num(f float64) Value { return Value{Number: f} }

// Str returns a textual Value.
func Str(s string) Value { return Value{Text: s, IsText: true} }

// MarshalJSON keeps numbers as JSON numbers and tokens as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsText {
		return json.Marshal(v.Text)
	}
	return json.Marshal(v.Number)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (v *Value) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*v = Value{Number: f}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("value must be a number or a string: %w", err)
	}
	*v = Value{Text: s, IsText: true}
	return nil
}

// String renders the cell the way it would appear in a report.
func (v Value) String() string {
	if v.IsText {
		return v.Text
	}
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

// RowCount returns the number of accepted data rows in the dataset. All
// columns of a sealed dataset have this length.
func (ds *Dataset) RowCount() int {
	if len(ds.Data) == 0 {
		return 0
	}
	return len(ds.Data[0].Values)
}

var documentValidator = newDocumentValidator()

func newDocumentValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateDataset, Dataset{})
	return v
}

// validateDataset enforces the cross-column rules field tags cannot express:
// equal column lengths, and units on every column whose quantity was matched.
func validateDataset(sl validator.StructLevel) {
	ds := sl.Current().Interface().(Dataset)
	if len(ds.Data) == 0 {
		return
	}
	want := len(ds.Data[0].Values)
	for i, col := range ds.Data {
		if len(col.Values) != want {
			sl.ReportError(ds.Data, "Data", "data", "aligned", "")
			return
		}
		if col.Quantity != QuantityUnknown && col.Units == "" {
			sl.ReportError(ds.Data[i].Units, "Units", "units", "required_with_quantity", "")
			return
		}
	}
}

// Validate checks the document against its structural rules: known descriptor
// vocabulary and aligned column lengths within each dataset.
func (d *Document) Validate() error {
	if err := documentValidator.Struct(d); err != nil {
		return fmt.Errorf("document validation failed: %w", err)
	}
	return nil
}
