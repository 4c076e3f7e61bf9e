package schema

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// modelLexer tokenizes the compact model-declaration language.
var modelLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\bmodel\b`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Question", Pattern: `\?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// rawModel is the parse tree for a single model block:
//
//	model users {
//	  id    Int
//	  email String
//	  bio   String?  // optional
//	}
type rawModel struct {
	Name   string      `parser:"\"model\" @Ident \"{\""`
	Fields []*rawField `parser:"@@* \"}\""`
}

type rawField struct {
	Name     string `parser:"@Ident"`
	Type     string `parser:"@Ident"`
	Optional bool   `parser:"@Question?"`
}

var modelParser = participle.MustBuild[rawModel](
	participle.Lexer(modelLexer),
	participle.Elide("Whitespace", "Comment"),
)

var kindNames = map[string]Kind{
	"String":   KindString,
	"Int":      KindInt,
	"Float":    KindFloat,
	"Boolean":  KindBoolean,
	"DateTime": KindDateTime,
	"Json":     KindJson,
	"Uuid":     KindUuid,
}

// ParseModel parses one model declaration and returns the model name and its
// schema. Unknown field types and duplicate field names are errors.
func ParseModel(input string) (string, Schema, error) {
	raw, err := modelParser.ParseString("", input)
	if err != nil {
		return "", nil, fmt.Errorf("parse model: %w", err)
	}
	if len(raw.Fields) == 0 {
		return "", nil, fmt.Errorf("model %q declares no fields", raw.Name)
	}

	s := make(Schema, len(raw.Fields))
	var bad []string
	for _, f := range raw.Fields {
		kind, ok := kindNames[f.Type]
		if !ok {
			bad = append(bad, fmt.Sprintf("%s %s", f.Name, f.Type))
			continue
		}
		if _, dup := s[f.Name]; dup {
			return "", nil, fmt.Errorf("model %q declares field %q twice", raw.Name, f.Name)
		}
		s[f.Name] = Field{Kind: kind, Optional: f.Optional}
	}
	if len(bad) > 0 {
		return "", nil, fmt.Errorf("model %q has fields with unknown types: %s", raw.Name, strings.Join(bad, ", "))
	}
	return raw.Name, s, nil
}

// MustParseModel is ParseModel panicking on error; for statically known
// declarations.
func MustParseModel(input string) (string, Schema) {
	name, s, err := ParseModel(input)
	if err != nil {
		panic(err)
	}
	return name, s
}
