// dialect.go — dialect capability records and preset lookup.
//
// A Capabilities value is the sole authority on what the parser accepts.
// Each boolean gates one syntactic feature; the presets mirror the three
// named dialects plus the unrestricted default used when no tag is given.
package jsonc

import "strings"

// Capabilities enumerates the syntactic features a dialect permits.
// The zero value is the strict-JSON dialect (everything disabled).
type Capabilities struct {
	TrailingCommas                 bool
	Comments                       bool
	PlusSigns                      bool
	SpacedSigns                    bool
	LeadingOrTrailingDecimalPoints bool
	Infinities                     bool
	NaNs                           bool
	InvalidJSONNumbers             bool
	MultilineStrings               bool
	UnquoteProperties              bool
	SingleQuotes                   bool
	NumberProperties               bool
	UndefinedKeywords              bool
	SparseArrays                   bool
	RegExpLiterals                 bool
	TemplateLiterals               bool
	BigintLiterals                 bool
	BinaryExpressions              bool
}

// ContextFor maps a dialect tag to its capability record. Matching is
// case-insensitive; an unknown or empty tag yields the all-true default.
func ContextFor(tag string) Capabilities {
	switch strings.ToLower(tag) {
	case "json":
		return Capabilities{}
	case "jsonc":
		return Capabilities{
			TrailingCommas: true,
			Comments:       true,
		}
	case "json5":
		return Capabilities{
			TrailingCommas:                 true,
			Comments:                       true,
			PlusSigns:                      true,
			SpacedSigns:                    true,
			LeadingOrTrailingDecimalPoints: true,
			Infinities:                     true,
			NaNs:                           true,
			InvalidJSONNumbers:             true,
			MultilineStrings:               true,
			UnquoteProperties:              true,
			SingleQuotes:                   true,
		}
	default:
		return Capabilities{
			TrailingCommas:                 true,
			Comments:                       true,
			PlusSigns:                      true,
			SpacedSigns:                    true,
			LeadingOrTrailingDecimalPoints: true,
			Infinities:                     true,
			NaNs:                           true,
			InvalidJSONNumbers:             true,
			MultilineStrings:               true,
			UnquoteProperties:              true,
			SingleQuotes:                   true,
			NumberProperties:               true,
			UndefinedKeywords:              true,
			SparseArrays:                   true,
			RegExpLiterals:                 true,
			TemplateLiterals:               true,
			BigintLiterals:                 true,
			BinaryExpressions:              true,
		}
	}
}
