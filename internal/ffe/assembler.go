package ffe

import (
	"fmt"

	"emcli/pkg/contracts/domain"
)

// assembler is the stateful core of the parser. It consumes classified lines
// in file order and decides dataset boundaries with a single armed flag: a
// header line seen while armed seals the in-progress dataset and begins a new
// one. The flag is armed at file start and re-armed by every data row, so
// consecutive header lines extend one dataset while a header after data
// starts the next.
type assembler struct {
	doc     *domain.Document
	current *domain.Dataset
	armed   bool

	// tolerance bookkeeping, reported once per file at debug level
	droppedRows      int
	discardedHeaders int
}

func newAssembler() *assembler {
	return &assembler{
		doc:   &domain.Document{},
		armed: true,
	}
}

// consumeLine advances the state machine by one trimmed input line.
func (a *assembler) consumeLine(line string, lineNo int) error {
	if isHeaderLine(line) {
		return a.consumeHeader(line, lineNo)
	}
	a.consumeData(line)
	return nil
}

func (a *assembler) consumeHeader(line string, lineNo int) error {
	if a.armed {
		a.seal()
		a.current = &domain.Dataset{}
		a.armed = false
	}

	assignments, err := interpretHeader(line, lineNo)
	if err != nil {
		return err
	}
	for _, as := range assignments {
		a.apply(as)
	}
	return nil
}

// apply merges one assignment into its scope. Top-level keys accumulate as
// ordered sequences; dataset-level keys are last-write-wins, except the
// column layout which is fixed by the first column-header row of the dataset.
func (a *assembler) apply(as assignment) {
	if as.scope == scopeTopLevel {
		v := as.value.(string)
		switch as.key {
		case "source":
			a.doc.Source = append(a.doc.Source, v)
		case "date":
			a.doc.Date = append(a.doc.Date, v)
		}
		return
	}

	switch as.key {
	case "data":
		if a.current.Data != nil {
			// Layout is established exactly once per dataset; a repeated
			// column-header row is malformed header content, not a re-layout.
			a.discardedHeaders++
			return
		}
		a.current.Data = as.value.([]domain.Column)
	case "frequency":
		a.current.Frequency = as.value.(*domain.Measurement)
	case "position":
		a.current.Position = as.value.(*domain.Position)
	case "description":
		a.current.Description = as.value.(string)
	default:
		// a "*Name" key, preserved verbatim
		if a.current.Names == nil {
			a.current.Names = make(map[string]string)
		}
		a.current.Names[as.key] = as.value.(string)
	}
}

func (a *assembler) consumeData(line string) {
	row := parseDataLine(line)
	if row == nil {
		return
	}
	// Any parsed row arms the boundary: the next header line begins a new
	// dataset even if this row's shape was rejected.
	defer func() { a.armed = true }()

	if a.current == nil || row.len() != len(a.current.Data) {
		a.droppedRows++
		return
	}
	for i := range a.current.Data {
		a.current.Data[i].Values = append(a.current.Data[i].Values, row.values[i])
	}
}

// seal appends the in-progress dataset, if any, to the document.
func (a *assembler) seal() {
	if a.current == nil {
		return
	}
	a.doc.Data = append(a.doc.Data, *a.current)
	a.current = nil
}

// finish seals the trailing dataset and hands back the completed document.
func (a *assembler) finish() *domain.Document {
	a.seal()
	return a.doc
}

// ParseError is a fatal failure inside the parser core. The whole file fails;
// no partial document is returned.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
