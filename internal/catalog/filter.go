package catalog

import (
	"strings"

	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
	"github.com/bertiqwerty/rvimage-sub001/internal/toolsdata"
)

// PredKind tags the variant a Predicate node holds.
type PredKind int

const (
	PredFilterStr PredKind = iota
	PredLabel
	PredTool
	PredAttribute
	PredNolabel
	PredAnylabel
	PredAnd
	PredOr
	PredNot
)

// Predicate is the filter-expression AST: a literal substring match, one of
// the three unary lookups (label/tool/attr), the two zero-argument
// constants, or a boolean combinator over child predicates.
type Predicate struct {
	Kind PredKind
	Str  string
	A, B *Predicate
}

func filterStr(s string) *Predicate { return &Predicate{Kind: PredFilterStr, Str: s} }

// Apply evaluates the predicate against path, using tdm and activeTool to
// resolve Label/Tool/Attribute/Nolabel/Anylabel lookups. tdm/activeTool may
// be empty, in which case every tool-data-dependent predicate behaves as
// the spec's "not present" default (Label/Tool/And/Or/Not still work,
// Nolabel defaults true, Anylabel defaults false).
func (p *Predicate) Apply(path string, tdm toolsdata.ToolsDataMap, activeTool string) (bool, error) {
	const op = "catalog.Predicate.Apply"
	switch p.Kind {
	case PredFilterStr:
		if path == "" {
			return true, nil
		}
		return strings.Contains(path, strings.TrimSpace(p.Str)), nil
	case PredAttribute:
		if p.A.Kind != PredFilterStr {
			return false, rverr.Newf(rverr.Parse, op, "attr must wrap a literal string")
		}
		name, val, ok := strings.Cut(p.A.Str, ":")
		if !ok {
			return false, rverr.Newf(rverr.Parse, op, "attribute must be of the form <name>:<val>, found %q", p.A.Str)
		}
		name, val = strings.TrimSpace(name), strings.TrimSpace(val)
		data, ok := attributesData(tdm)
		if !ok {
			return false, nil
		}
		attrVal, ok := data.GetAttr(path, name)
		if !ok {
			return false, nil
		}
		if strings.Contains(val, toolsdata.ParamIntervalSeparator) {
			if inDomain, err := attrVal.InDomainStr(val); err == nil {
				return inDomain, nil
			}
		}
		return attrVal.CorrespondsToStr(val), nil
	case PredLabel:
		if p.A.Kind != PredFilterStr {
			return false, rverr.Newf(rverr.Parse, op, "label must wrap a literal string")
		}
		if tdm == nil || activeTool == "" {
			return true, nil
		}
		specifics, ok := tdm[activeTool]
		if !ok {
			return true, nil
		}
		return containsLabel(specifics, path, p.A.Str), nil
	case PredTool:
		if p.A.Kind != PredFilterStr {
			return false, rverr.Newf(rverr.Parse, op, "tool must wrap a literal string")
		}
		if tdm == nil {
			return true, nil
		}
		specifics, ok := tdm[strings.TrimSpace(p.A.Str)]
		if !ok {
			return true, nil
		}
		return hasAnnos(specifics, path), nil
	case PredNolabel:
		if tdm == nil || activeTool == "" {
			return true, nil
		}
		specifics, ok := tdm[activeTool]
		if !ok {
			return true, nil
		}
		return !hasAnnos(specifics, path), nil
	case PredAnylabel:
		if tdm == nil || activeTool == "" {
			return false, nil
		}
		specifics, ok := tdm[activeTool]
		if !ok {
			return false, nil
		}
		return hasAnnos(specifics, path), nil
	case PredAnd:
		a, err := p.A.Apply(path, tdm, activeTool)
		if err != nil {
			return false, err
		}
		b, err := p.B.Apply(path, tdm, activeTool)
		if err != nil {
			return false, err
		}
		return a && b, nil
	case PredOr:
		a, err := p.A.Apply(path, tdm, activeTool)
		if err != nil {
			return false, err
		}
		b, err := p.B.Apply(path, tdm, activeTool)
		if err != nil {
			return false, err
		}
		return a || b, nil
	case PredNot:
		a, err := p.A.Apply(path, tdm, activeTool)
		return !a, err
	default:
		return true, nil
	}
}

func attributesData(tdm toolsdata.ToolsDataMap) (*toolsdata.AttributesData, bool) {
	if tdm == nil {
		return nil, false
	}
	specifics, ok := tdm["attributes"]
	if !ok || specifics.Kind != toolsdata.SpecificsAttributes {
		return nil, false
	}
	return specifics.Attributes, true
}

func hasAnnos(specifics toolsdata.ToolSpecifics, path string) bool {
	switch specifics.Kind {
	case toolsdata.SpecificsBbox:
		return specifics.Bbox.HasAnnos(path)
	case toolsdata.SpecificsBrush:
		return specifics.Brush.HasAnnos(path)
	case toolsdata.SpecificsAttributes:
		return specifics.Attributes.HasAnnos(path)
	default:
		return false
	}
}

func containsLabel(specifics toolsdata.ToolSpecifics, path, label string) bool {
	switch specifics.Kind {
	case toolsdata.SpecificsBbox:
		return specifics.Bbox.ContainsLabel(path, label)
	case toolsdata.SpecificsBrush:
		return specifics.Brush.ContainsLabel(path, label)
	default:
		return false
	}
}

// tokenizer

type tokKind int

const (
	tokEOF tokKind = iota
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokNot
	tokLabel
	tokTool
	tokAttr
	tokNolabel
	tokAnylabel
	tokLiteral
)

type token struct {
	kind tokKind
	text string
}

const breakChars = "()!&|"

func tokenize(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case c == '!':
			toks = append(toks, token{kind: tokNot})
			i++
		case c == '&' && i+1 < len(s) && s[i+1] == '&':
			toks = append(toks, token{kind: tokAnd})
			i += 2
		case c == '|' && i+1 < len(s) && s[i+1] == '|':
			toks = append(toks, token{kind: tokOr})
			i += 2
		default:
			start := i
			for i < len(s) && strings.IndexByte(breakChars, s[i]) < 0 {
				i++
			}
			literal := strings.TrimSpace(s[start:i])
			toks = append(toks, literalOrKeyword(literal))
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

func literalOrKeyword(literal string) token {
	switch literal {
	case "label":
		return token{kind: tokLabel}
	case "tool":
		return token{kind: tokTool}
	case "attr":
		return token{kind: tokAttr}
	case "nolabel":
		return token{kind: tokNolabel}
	case "anylabel":
		return token{kind: tokAnylabel}
	default:
		return token{kind: tokLiteral, text: literal}
	}
}

// parser

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// ParseFilter parses a filter expression per the grammar: `!` binds
// tighter than `&&`/`||`, which share precedence and associate left to
// right. A malformed expression is returned as an error so the caller can
// fall back to substring filtering by the raw string, per spec.
func ParseFilter(s string) (*Predicate, error) {
	const op = "catalog.ParseFilter"
	toks, err := tokenize(s)
	if err != nil {
		return nil, rverr.New(rverr.Parse, op, err)
	}
	p := &parser{toks: toks}
	pred, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, rverr.Newf(rverr.Parse, op, "unexpected trailing input in filter %q", s)
	}
	return pred, nil
}

func (p *parser) parseExpr() (*Predicate, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokAnd:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &Predicate{Kind: PredAnd, A: left, B: right}
		case tokOr:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &Predicate{Kind: PredOr, A: left, B: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (*Predicate, error) {
	if p.peek().kind == tokNot {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Predicate{Kind: PredNot, A: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*Predicate, error) {
	const op = "catalog.parsePrimary"
	tok := p.next()
	switch tok.kind {
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, rverr.Newf(rverr.Parse, op, "expected closing paren")
		}
		p.next()
		return inner, nil
	case tokLabel, tokTool, tokAttr:
		if p.peek().kind != tokLParen {
			return nil, rverr.Newf(rverr.Parse, op, "expected '(' after unary function")
		}
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, rverr.Newf(rverr.Parse, op, "expected closing paren")
		}
		p.next()
		kind := map[tokKind]PredKind{tokLabel: PredLabel, tokTool: PredTool, tokAttr: PredAttribute}[tok.kind]
		return &Predicate{Kind: kind, A: inner}, nil
	case tokNolabel:
		return &Predicate{Kind: PredNolabel}, nil
	case tokAnylabel:
		return &Predicate{Kind: PredAnylabel}, nil
	case tokLiteral:
		return filterStr(tok.text), nil
	default:
		return nil, rverr.Newf(rverr.Parse, op, "unexpected token in filter expression")
	}
}
