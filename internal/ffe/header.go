package ffe

import (
	"regexp"
	"strconv"
	"strings"

	"emcli/pkg/contracts/domain"
)

// scope tags an assignment as document-wide or dataset-scoped.
type scope int

const (
	scopeTopLevel scope = iota
	scopeDataset
)

// assignment is the ephemeral output of header interpretation: a key, a
// value, and the scope it belongs to. Consumed immediately by the assembler.
type assignment struct {
	key   string
	scope scope
	value any
}

var (
	headerMark = regexp.MustCompile(`^(#|\*)`)
	// keyValueSplit separates a key/value header on the first colon that is
	// followed by whitespace.
	keyValueSplit = regexp.MustCompile(`\s*:\s+`)
	exportedBy    = regexp.MustCompile(`(?i).*exported by\s*`)
	originTokens  = regexp.MustCompile(`[\s,]+`)
	originParens  = strings.NewReplacer("(", "", ")", "")
)

// isHeaderLine classifies a trimmed line: header lines start with '#' or '*',
// everything else is data. Every line classifies unambiguously.
func isHeaderLine(line string) bool {
	return headerMark.MatchString(line)
}

// interpretHeader turns one header line into zero or more assignments.
// Dispatch order: column-header row (leading quote), key/value (colon),
// export banner ("exported by"), then freeform description as the fallback.
func interpretHeader(line string, lineNo int) ([]assignment, error) {
	l := strings.TrimLeft(line, "#* \t")

	switch {
	case strings.HasPrefix(l, `"`):
		cols := matchColumns(splitColumnLabels(l))
		return []assignment{{key: "data", scope: scopeDataset, value: cols}}, nil

	case strings.Contains(l, ":"):
		return interpretKeyValue(l, lineNo)

	case exportedBy.MatchString(l):
		return []assignment{{key: "source", scope: scopeTopLevel, value: exportedBy.ReplaceAllString(l, "")}}, nil

	default:
		return []assignment{{key: "description", scope: scopeDataset, value: l}}, nil
	}
}

// interpretKeyValue handles headers of the form "Key: value". Keys outside
// the recognized set contribute nothing; that metadata is deliberately
// dropped.
func interpretKeyValue(l string, lineNo int) ([]assignment, error) {
	loc := keyValueSplit.FindStringIndex(l)
	if loc == nil {
		// A colon with no value portion ("Configured:" or "12:30") is not a
		// usable key/value header; treat it as freeform description.
		return []assignment{{key: "description", scope: scopeDataset, value: l}}, nil
	}
	key := l[:loc[0]]
	val := strings.TrimSpace(l[loc[1]:])
	lower := strings.ToLower(key)

	switch {
	case strings.HasPrefix(lower, "source"):
		return []assignment{{key: "source", scope: scopeTopLevel, value: val}}, nil

	case strings.HasPrefix(lower, "date"):
		return []assignment{{key: "date", scope: scopeTopLevel, value: val}}, nil

	case strings.HasPrefix(lower, "frequency"):
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: "frequency value is not numeric: " + strconv.Quote(val)}
		}
		m := &domain.Measurement{Value: f, Units: "Hz"}
		return []assignment{{key: "frequency", scope: scopeDataset, value: m}}, nil

	case strings.HasPrefix(lower, "origin"):
		pos, err := parseOrigin(val, lineNo)
		if err != nil {
			return nil, err
		}
		return []assignment{{key: "position", scope: scopeDataset, value: pos}}, nil

	case strings.HasSuffix(lower, "name"):
		// Any "*Name" header is kept under its observed key so datasets can
		// be named later regardless of the vendor's convention.
		return []assignment{{key: key, scope: scopeDataset, value: val}}, nil

	default:
		return nil, nil
	}
}

// parseOrigin extracts x, y, z from a value like "(0, 0, 1.5)". Parentheses
// are stripped and the remainder split on commas and whitespace; fewer than
// three numeric components is a fatal parse error.
func parseOrigin(val string, lineNo int) (*domain.Position, error) {
	var nums []float64
	for _, tok := range originTokens.Split(originParens.Replace(val), -1) {
		if tok == "" {
			continue
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: "origin component is not numeric: " + strconv.Quote(tok)}
		}
		nums = append(nums, f)
	}
	if len(nums) < 3 {
		return nil, &ParseError{Line: lineNo, Msg: "origin needs three numeric components, got " + strconv.Itoa(len(nums))}
	}
	return &domain.Position{Units: "meters", X: nums[0], Y: nums[1], Z: nums[2]}, nil
}
