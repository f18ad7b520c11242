package ffe

import (
	"regexp"

	"emcli/pkg/contracts/domain"
)

// columnPattern maps a column-label regular expression to the descriptor it
// denotes. Matching is case-insensitive and unanchored unless the pattern
// anchors itself.
type columnPattern struct {
	re       *regexp.Regexp
	template domain.Column
}

// columnPatterns is the table of every recognized physical quantity a column
// label can denote. Scanned in declaration order, first match wins, so keep
// specific patterns ahead of anything that could shadow them. Read-only after
// init; safe to share across concurrent parses.
var columnPatterns = []columnPattern{
	{
		re:       regexp.MustCompile(`(?i)^theta`),
		template: domain.Column{Quantity: "coordinate", VectorComponent: "theta", Units: "degrees"},
	},
	{
		re:       regexp.MustCompile(`(?i)^phi`),
		template: domain.Column{Quantity: "coordinate", VectorComponent: "phi", Units: "degrees"},
	},
	{
		re:       regexp.MustCompile(`(?i)re.*etheta`),
		template: domain.Column{Quantity: "electric field", VectorComponent: "theta", PhasorComponent: "real", Units: "V/m"},
	},
	{
		re:       regexp.MustCompile(`(?i)im.*etheta`),
		template: domain.Column{Quantity: "electric field", VectorComponent: "theta", PhasorComponent: "imaginary", Units: "V/m"},
	},
	{
		re:       regexp.MustCompile(`(?i)re.*ephi`),
		template: domain.Column{Quantity: "electric field", VectorComponent: "phi", PhasorComponent: "real", Units: "V/m"},
	},
	{
		re:       regexp.MustCompile(`(?i)im.*ephi`),
		template: domain.Column{Quantity: "electric field", VectorComponent: "phi", PhasorComponent: "imaginary", Units: "V/m"},
	},
	{
		re:       regexp.MustCompile(`(?i)dir.*theta`),
		template: domain.Column{Quantity: "directivity", VectorComponent: "theta", PhasorComponent: "magnitude", Units: "dBi"},
	},
	{
		re:       regexp.MustCompile(`(?i)dir.*phi`),
		template: domain.Column{Quantity: "directivity", VectorComponent: "phi", PhasorComponent: "magnitude", Units: "dBi"},
	},
	{
		re:       regexp.MustCompile(`(?i)dir.*total`),
		template: domain.Column{Quantity: "directivity", VectorComponent: "total", PhasorComponent: "magnitude", Units: "dBi"},
	},
	{
		re:       regexp.MustCompile(`(?i)gain.*theta`),
		template: domain.Column{Quantity: "gain", VectorComponent: "theta", PhasorComponent: "magnitude", Units: "dBi"},
	},
	{
		re:       regexp.MustCompile(`(?i)gain.*phi`),
		template: domain.Column{Quantity: "gain", VectorComponent: "phi", PhasorComponent: "magnitude", Units: "dBi"},
	},
	{
		re:       regexp.MustCompile(`(?i)gain.*total`),
		template: domain.Column{Quantity: "gain", VectorComponent: "total", PhasorComponent: "magnitude", Units: "dBi"},
	},
}
