package dtafile

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// intervalLexer tokenises the guard-interval syntax of spec.md §6:
// "[lo, hi]" | "[lo, hi)" | "(lo, hi]" | "(lo, hi)", where lo may be "-"
// and hi may be "+". Mirrors kanso-lang-kanso's grammar/lexer.go: a single
// stateful-lexer "Root" state listing token rules in priority order.
var intervalLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t]+`, Action: nil},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?(/[0-9]+)?`, Action: nil},
		{Name: "Minus", Pattern: `-`, Action: nil},
		{Name: "Plus", Pattern: `\+`, Action: nil},
		{Name: "Comma", Pattern: `,`, Action: nil},
		{Name: "LBracket", Pattern: `\[`, Action: nil},
		{Name: "LParen", Pattern: `\(`, Action: nil},
		{Name: "RBracket", Pattern: `\]`, Action: nil},
		{Name: "RParen", Pattern: `\)`, Action: nil},
	},
})

// intervalAST is the parsed shape of one guard-interval literal.
type intervalAST struct {
	Open  string `parser:"( @LBracket | @LParen )"`
	Lo    string `parser:"( @Minus | @Plus | @Number )"`
	Comma string `parser:"@Comma"`
	Hi    string `parser:"( @Minus | @Plus | @Number )"`
	Close string `parser:"( @RBracket | @RParen )"`
}

// parseInterval parses s into (lo, loClosed, hi, hiClosed). lo/hi are
// "-"/"+" for the unbounded sentinels or a numeric literal consumable by
// rational.Parse.
func parseInterval(s string) (lo string, loClosed bool, hi string, hiClosed bool, err error) {
	parser, err := participle.Build[intervalAST](participle.Lexer(intervalLexer), participle.Elide("Whitespace"))
	if err != nil {
		return "", false, "", false, fmt.Errorf("dtafile: building interval parser: %w", err)
	}
	ast, err := parser.ParseString("", s)
	if err != nil {
		return "", false, "", false, fmt.Errorf("%w: %q: %s", ErrBadInterval, s, err)
	}
	return ast.Lo, ast.Open == "[", ast.Hi, ast.Close == "]", nil
}

// formatInterval renders (lo, loClosed, hi, hiClosed) back to interval
// syntax, the inverse of parseInterval.
func formatInterval(lo string, loClosed bool, hi string, hiClosed bool) string {
	open := "("
	if loClosed {
		open = "["
	}
	shut := ")"
	if hiClosed {
		shut = "]"
	}
	return fmt.Sprintf("%s%s, %s%s", open, lo, hi, shut)
}
