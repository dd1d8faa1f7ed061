package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Block is a parsed declaration list in source order.
type Block struct {
	Decls    []Decl
	Warnings []string // Warnings for unsupported constructs
}

// Map returns declarations as property -> value, later declarations win.
func (b *Block) Map() map[string]any {
	m := make(map[string]any, len(b.Decls))
	for _, d := range b.Decls {
		m[d.Prop] = d.Value
	}
	return m
}

// Parser parses CSS declaration lists ("color: red; margin: 0 4px") used
// to describe styles in text form.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses declaration list into a Block.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Block {
	block := &Block{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS declarations", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), true)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				block.Warnings = append(block.Warnings, "parse error: "+err.Error())
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return block

		case css.DeclarationGrammar:
			prop := strings.ToLower(string(data))
			raw, important := rawValue(parser.Values())
			if important {
				block.Warnings = append(block.Warnings, "!important ignored: "+prop)
				p.log.Debug("Ignoring !important", zap.String("property", prop))
			}
			if raw == "" {
				continue
			}
			block.Decls = append(block.Decls, Decl{Prop: prop, Value: raw})

		case css.CustomPropertyGrammar:
			raw, _ := rawValue(parser.Values())
			if raw == "" {
				continue
			}
			block.Decls = append(block.Decls, Decl{Prop: string(data), Value: raw})

		case css.CommentGrammar:
			continue

		default:
			block.Warnings = append(block.Warnings, "unsupported construct: "+strings.TrimSpace(string(data)))
			p.log.Debug("Skipping unsupported construct", zap.String("data", string(data)))
		}
	}
}

// rawValue rebuilds value text from tokens collapsing whitespace, and strips
// trailing "!important".
func rawValue(tokens []css.Token) (string, bool) {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			// Add space between non-whitespace tokens
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	before, after, found := strings.Cut(raw, "!")
	if found && strings.EqualFold(strings.TrimSpace(after), "important") {
		return strings.TrimSpace(before), true
	}
	return raw, false
}
