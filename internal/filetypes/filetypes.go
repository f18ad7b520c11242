// Package filetypes maps simulation export file names to the producing tool
// and the kind of data the file carries by default. Extensions only give the
// default; callers can override both when they know better.
package filetypes

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Known producing tools, typically the simulation software name.
const (
	FiletypeFEKO = "feko"
	FiletypeXGTD = "xgtd"
)

// Default data-type labels.
const (
	DatatypeFarField  = "far field"
	DatatypeNearField = "near field"
)

// Default carries the defaults an extension implies. Datatype may be empty
// when the extension alone cannot tell (e.g. FEKO .out files).
type Default struct {
	Filetype string
	Datatype string
}

// extensions maps lowercase extensions (without the dot) to their defaults.
var extensions = map[string]Default{
	"ffe": {Filetype: FiletypeFEKO, Datatype: DatatypeFarField},
	"efe": {Filetype: FiletypeFEKO, Datatype: DatatypeNearField},
	"hfe": {Filetype: FiletypeFEKO, Datatype: DatatypeNearField},
	"out": {Filetype: FiletypeFEKO},
	"fz":  {Filetype: FiletypeXGTD, Datatype: DatatypeFarField},
	"uan": {Filetype: FiletypeXGTD, Datatype: DatatypeFarField},
}

// DetectFiletype resolves the producing tool for a file. An explicit override
// wins; otherwise the extension decides.
func DetectFiletype(filename, override string) (string, error) {
	if override != "" {
		return strings.ToLower(override), nil
	}
	d, ok := lookup(filename)
	if !ok {
		return "", fmt.Errorf("unrecognized file extension for %q", filename)
	}
	return d.Filetype, nil
}

// DetectDatatype resolves the default data-type label for a file. An explicit
// override wins; an empty result means the extension alone cannot tell.
func DetectDatatype(filename, override string) (string, error) {
	if override != "" {
		return strings.ToLower(override), nil
	}
	d, ok := lookup(filename)
	if !ok {
		return "", fmt.Errorf("unrecognized file extension for %q", filename)
	}
	return d.Datatype, nil
}

// KnownExtensions returns the recognized extensions (without dots).
func KnownExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	return exts
}

func lookup(filename string) (Default, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	d, ok := extensions[ext]
	return d, ok
}
