// Package parser implements the recursive-descent / Pratt parser of §4.1.
package parser

import (
	"strconv"

	"github.com/funvibe/golf/internal/ast"
	"github.com/funvibe/golf/internal/diagnostics"
	"github.com/funvibe/golf/internal/lexer"
	"github.com/funvibe/golf/internal/token"
)

// precedence levels, lowest to highest, per §3.1.
const (
	_ int = iota
	LOWEST
	PIPE     // >> <<
	LOGIC    // && ||
	COMPARE  // == != < > <= >=
	CONS     // ::
	CONCAT   // ++
	ADDITIVE // + -
	MUL      // * / %
	POWER    // ^
	UNARY    // unary -
	CALL     // function application (juxtaposition)
)

var precedences = map[token.Type]int{
	token.PIPE_FWD:  PIPE,
	token.PIPE_BACK: PIPE,
	token.AND:       LOGIC,
	token.OR:        LOGIC,
	token.EQ:        COMPARE,
	token.NOT_EQ:    COMPARE,
	token.LT:        COMPARE,
	token.GT:        COMPARE,
	token.LTE:       COMPARE,
	token.GTE:       COMPARE,
	token.CONS:      CONS,
	token.CONCAT:    CONCAT,
	token.PLUS:      ADDITIVE,
	token.MINUS:     ADDITIVE,
	token.ASTERISK:  MUL,
	token.SLASH:     MUL,
	token.PERCENT:   MUL,
	token.CARET:     POWER,
}

var binOpTags = map[token.Type]ast.BinOpTag{
	token.PIPE_FWD:  ast.OpPipeFwd,
	token.PIPE_BACK: ast.OpPipeBack,
	token.AND:       ast.OpAnd,
	token.OR:        ast.OpOr,
	token.EQ:        ast.OpEq,
	token.NOT_EQ:    ast.OpNotEq,
	token.LT:        ast.OpLt,
	token.GT:        ast.OpGt,
	token.LTE:       ast.OpLte,
	token.GTE:       ast.OpGte,
	token.CONS:      ast.OpCons,
	token.CONCAT:    ast.OpConcat,
	token.PLUS:      ast.OpAdd,
	token.MINUS:     ast.OpSub,
	token.ASTERISK:  ast.OpMul,
	token.SLASH:     ast.OpDiv,
	token.PERCENT:   ast.OpMod,
	token.CARET:     ast.OpPow,
}

// Parser turns a token stream into an Expr per §3.1.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []error
}

// New constructs a Parser over source and primes the two-token lookahead.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every ParseError accumulated while parsing.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expect(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(diagnostics.ErrUnexpectedToken, p.peekToken, string(t), string(p.peekToken.Type))
	return false
}

func (p *Parser) errorf(code diagnostics.Code, tok token.Token, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.New(diagnostics.PhaseParser, code, tok, args...))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses a single top-level Expression, per §4.1.
func ParseProgram(source string) (ast.Expr, []error) {
	p := New(source)
	expr := p.parseExpr(LOWEST)
	if !p.peekIs(token.EOF) {
		p.errorf(diagnostics.ErrUnexpectedToken, p.peekToken, "end of input", string(p.peekToken.Type))
	}
	return expr, p.errors
}

// parseExpr dispatches to the top-level forms (let/lambda/match/if) or
// falls through to the operator-precedence climb.
func (p *Parser) parseExpr(prec int) ast.Expr {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLet()
	case token.BACKSLASH:
		return p.parseLambda()
	case token.MATCH:
		return p.parseMatch()
	case token.IF:
		return p.parseIf()
	default:
		return p.parseBinary(prec)
	}
}

func (p *Parser) parseLet() ast.Expr {
	tok := p.curToken
	if !p.expect(token.IDENT) {
		return nil
	}
	name := p.curToken.Lexeme
	if !p.expect(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpr(LOWEST)
	if !p.expect(token.IN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpr(LOWEST)
	return &ast.Let{Token: tok, Name: name, Value: value, Body: body}
}

func (p *Parser) parseLambda() ast.Expr {
	tok := p.curToken
	var params []string
	for p.peekIs(token.IDENT) {
		p.nextToken()
		params = append(params, p.curToken.Lexeme)
	}
	if !p.expect(token.ARROW) {
		return nil
	}
	p.nextToken()
	body := p.parseExpr(LOWEST)
	return &ast.Lambda{Token: tok, Params: params, Body: body}
}

func (p *Parser) parseIf() ast.Expr {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpr(LOWEST)
	if !p.expect(token.THEN) {
		return nil
	}
	p.nextToken()
	then := p.parseExpr(LOWEST)
	if !p.expect(token.ELSE) {
		return nil
	}
	p.nextToken()
	els := p.parseExpr(LOWEST)
	return &ast.If{Token: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseMatch() ast.Expr {
	tok := p.curToken
	p.nextToken()
	scrutinee := p.parseExpr(LOWEST)
	if !p.expect(token.WITH) {
		return nil
	}
	p.nextToken()
	if p.curIs(token.PIPE) {
		p.nextToken()
	}
	var arms []ast.MatchArm
	arms = append(arms, p.parseMatchArm())
	for p.peekIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		arms = append(arms, p.parseMatchArm())
	}
	return &ast.Match{Token: tok, Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) parseMatchArm() ast.MatchArm {
	pat := p.parsePattern()
	p.expect(token.ARROW)
	p.nextToken()
	body := p.parseExpr(LOWEST)
	return ast.MatchArm{Pattern: pat, Body: body}
}

func (p *Parser) parsePattern() ast.Pattern {
	var head ast.Pattern
	tok := p.curToken
	switch p.curToken.Type {
	case token.UNDERSCORE:
		head = &ast.Wildcard{Token: tok}
	case token.IDENT:
		head = &ast.VarBind{Token: tok, Name: tok.Lexeme}
	case token.NUMBER:
		n, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		head = &ast.NumberLit{Token: tok, Value: n}
	case token.MINUS:
		p.nextToken()
		inner := p.curToken
		n, _ := strconv.ParseInt(inner.Lexeme, 10, 64)
		head = &ast.NumberLit{Token: tok, Value: -n}
	case token.TRUE:
		head = &ast.BoolLit{Token: tok, Value: true}
	case token.FALSE:
		head = &ast.BoolLit{Token: tok, Value: false}
	case token.STRING:
		head = &ast.StringLit{Token: tok, Value: tok.Lexeme}
	case token.LBRACKET:
		head = p.parseListPattern()
	default:
		p.errorf(diagnostics.ErrNoPrefixParse, tok, string(tok.Type))
		return &ast.Wildcard{Token: tok}
	}

	if p.peekIs(token.CONS) {
		p.nextToken()
		p.nextToken()
		tail := p.parsePattern()
		return &ast.Cons{Token: tok, Head: head, Tail: tail}
	}
	return head
}

func (p *Parser) parseListPattern() ast.Pattern {
	tok := p.curToken
	var elems []ast.Pattern
	if p.peekIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLit{Token: tok, Elements: elems}
	}
	p.nextToken()
	elems = append(elems, p.parsePattern())
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elems = append(elems, p.parsePattern())
	}
	p.expect(token.RBRACKET)
	return &ast.ListLit{Token: tok, Elements: elems}
}

// parseBinary climbs operator precedence, then bottoms out at parseUnary.
func (p *Parser) parseBinary(prec int) ast.Expr {
	left := p.parseUnary()

	for prec < p.peekPrecedence() {
		opTok := p.peekToken
		tag, ok := binOpTags[opTok.Type]
		if !ok {
			break
		}
		opPrec := precedences[opTok.Type]
		p.nextToken()
		p.nextToken()

		// cons and concat are right-associative; climb at opPrec-1 so a
		// trailing same-precedence operator nests to the right instead of
		// being consumed at this level.
		nextPrec := opPrec
		if tag == ast.OpCons || tag == ast.OpConcat || opTok.Type == token.CARET {
			nextPrec = opPrec - 1
		}
		right := p.parseBinary(nextPrec)
		left = &ast.BinOp{Token: opTok, Op: tag, Left: left, Right: right}

		// Comparison operators are non-associative (§3.1): `a == b == c`
		// is a parse error, not (a == b) == c.
		if isCompareTag(tag) && p.peekPrecedence() == COMPARE {
			if _, ok := binOpTags[p.peekToken.Type]; ok {
				p.errorf(diagnostics.ErrUnexpectedToken, p.peekToken, "end of comparison", string(p.peekToken.Type))
				break
			}
		}
	}
	return left
}

func isCompareTag(tag ast.BinOpTag) bool {
	switch tag {
	case ast.OpEq, ast.OpNotEq, ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		return true
	}
	return false
}

func (p *Parser) parseUnary() ast.Expr {
	if p.curIs(token.MINUS) {
		tok := p.curToken
		p.nextToken()
		operand := p.parseUnary()
		return &ast.UnOp{Token: tok, Operand: operand}
	}
	return p.parseApp()
}

// parseApp parses a sequence of juxtaposed primaries as a left-associative
// function application, per §4.1's greedy app_expr rule.
func (p *Parser) parseApp() ast.Expr {
	fn := p.parsePrimary()

	var args []ast.Expr
	for p.startsPrimary(p.peekToken.Type) {
		p.nextToken()
		args = append(args, p.parsePrimary())
	}
	if len(args) == 0 {
		return fn
	}
	return &ast.App{Token: fn.GetToken(), Fn: fn, Args: args}
}

func (p *Parser) startsPrimary(t token.Type) bool {
	switch t {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.IDENT,
		token.LBRACKET, token.LPAREN:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.curToken
	switch tok.Type {
	case token.NUMBER:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errorf(diagnostics.ErrBadInteger, tok, tok.Lexeme)
		}
		return &ast.Number{Token: tok, Value: n}
	case token.TRUE:
		return &ast.Bool{Token: tok, Value: true}
	case token.FALSE:
		return &ast.Bool{Token: tok, Value: false}
	case token.STRING:
		return &ast.String{Token: tok, Value: tok.Lexeme}
	case token.IDENT:
		return &ast.Var{Token: tok, Name: tok.Lexeme}
	case token.LPAREN:
		p.nextToken()
		expr := p.parseExpr(LOWEST)
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseListOrRangeOrComp()
	default:
		p.errorf(diagnostics.ErrNoPrefixParse, tok, string(tok.Type))
		p.nextToken()
		return &ast.Number{Token: tok, Value: 0}
	}
}

// parseListOrRangeOrComp disambiguates `[...]`, `[a..b]`, and
// `[expr | ident <- source, guards]` once the first expression is parsed.
func (p *Parser) parseListOrRangeOrComp() ast.Expr {
	tok := p.curToken
	if p.peekIs(token.RBRACKET) {
		p.nextToken()
		return &ast.List{Token: tok, Elements: nil}
	}
	p.nextToken()
	first := p.parseExpr(LOWEST)

	switch p.peekToken.Type {
	case token.DOTDOT:
		p.nextToken()
		p.nextToken()
		end := p.parseExpr(LOWEST)
		p.expect(token.RBRACKET)
		return &ast.Range{Token: tok, Start: first, End: end}
	case token.PIPE:
		p.nextToken() // consume '|'
		p.expect(token.IDENT)
		iterVar := p.curToken.Lexeme
		p.expect(token.LARROW)
		p.nextToken()
		source := p.parseExpr(LOWEST)
		var guards []ast.Expr
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			guards = append(guards, p.parseExpr(LOWEST))
		}
		p.expect(token.RBRACKET)
		return &ast.ListComp{Token: tok, Result: first, Var: iterVar, Source: source, Guards: guards}
	case token.COMMA:
		elems := []ast.Expr{first}
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			elems = append(elems, p.parseExpr(LOWEST))
		}
		p.expect(token.RBRACKET)
		return &ast.List{Token: tok, Elements: elems}
	default:
		p.expect(token.RBRACKET)
		return &ast.List{Token: tok, Elements: []ast.Expr{first}}
	}
}
