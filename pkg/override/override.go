// Package override parses the inside of a {...} override block into tags.
package override

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	blockLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Backslash", Pattern: `\\`},
		{Name: "Ident", Pattern: `[0-9]?[A-Za-z]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "Punct", Pattern: `[(),]`},
		{Name: "Other", Pattern: `[^\\(),\s]+`},
	})

	blockParser = participle.MustBuild[Block](
		participle.Lexer(blockLexer),
		participle.Elide("Whitespace"),
	)
)

// Block is the content of one override block.
type Block struct {
	Tags []*Tag `parser:"@@*"`
}

// Tag is a single \name, \nameARG or \name(arg, ...) directive.
type Tag struct {
	Name string   `parser:"Backslash @Ident"`
	Args []string `parser:"( '(' ( @(Number | Ident | Other) ( ',' @(Number | Ident | Other) )* )? ')' | @(Number | Other) )?"`
}

// Parse parses the text between the braces of an override block.
func Parse(content string) (*Block, error) {
	b, err := blockParser.ParseString("", content)
	if err != nil {
		return nil, fmt.Errorf("override: %w", err)
	}
	return b, nil
}

// Floats converts the arguments of t to numbers.
func (t *Tag) Floats() ([]float64, bool) {
	out := make([]float64, len(t.Args))
	for i, a := range t.Args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
