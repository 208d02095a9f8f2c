// Package parser implements the pure recursive-descent parser described in
// spec.md §4.4: a random-access token array with a cursor that never
// rewinds, building an ast.Tree through the standard precedence cascade.
package parser

import (
	"fmt"

	"minilang/ast"
	"minilang/token"
)

var comparisonKinds = []token.Kind{token.LARGER, token.LARGER_EQUAL, token.LESS, token.LESS_EQUAL}
var equalityKinds = []token.Kind{token.EQUAL_EQUAL, token.NOT_EQUAL}
var termKinds = []token.Kind{token.ADD, token.SUB}
var factorKinds = []token.Kind{token.MULT, token.DIV, token.MOD}
var unaryKinds = []token.Kind{token.BANG, token.SUB}

// Parser holds the token stream and the Tree being built from it.
type Parser struct {
	tokens []token.Token
	pos    int
	tree   *ast.Tree
}

// New returns a Parser over tokens (the final one must be EOF, as
// produced by lexer.Scan), building its AST under the given Limits.
func New(tokens []token.Token, limits ast.Limits) *Parser {
	return &Parser{tokens: tokens, tree: ast.NewTree(limits)}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) isFinished() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	return !p.isFinished() && p.peek().Kind == kind
}

// match advances and returns true if the current token's kind is one of
// kinds; otherwise it leaves the cursor untouched.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// consumeOptional advances past kind if present. Semicolons and most
// closing delimiters are always optional in this grammar (spec.md §4.4:
// missing `)`/`}` degrade gracefully rather than aborting), so this never
// produces an error.
func (p *Parser) consumeOptional(kind token.Kind) {
	p.match(kind)
}

// consumeRequired advances past kind if present, otherwise returns a
// SyntaxError. Reserved for the few spots (an identifier after `var` or
// `function`, the `{` that opens a block) where there is nothing sensible
// to fall back to.
func (p *Parser) consumeRequired(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	cur := p.peek()
	return token.Token{}, CreateSyntaxError(cur.Line, cur.Column, message)
}

// Parse parses the full token stream into a Program node. Parsing
// continues past errors: after a failed statement the cursor skips at
// least one token and then on to just past the next `;` or up to the next
// statement keyword, so a single malformed statement never prevents the
// rest of the program from parsing (spec.md §4.4 and §7's permissive model).
func (p *Parser) Parse() (ast.Ref, *ast.Tree, []error) {
	root := p.tree.NewProgram()
	var statements []ast.Ref
	var errs []error

	for !p.isFinished() {
		stmt, err := p.declaration()
		if err != nil {
			errs = append(errs, err)
			if !p.isFinished() {
				p.advance()
			}
			for !p.isFinished() && p.previous().Kind != token.SEMICOLON &&
				!p.check(token.VAR) && !p.check(token.FUNCTION) && !p.check(token.IF) &&
				!p.check(token.WHILE) && !p.check(token.RETURN) {
				p.advance()
			}
			continue
		}
		statements = append(statements, stmt)
	}

	if err := p.tree.SetChildren(root, statements); err != nil {
		errs = append(errs, err)
	}
	return root, p.tree, errs
}

func (p *Parser) declaration() (ast.Ref, error) {
	if p.match(token.VAR) {
		return p.varDeclaration()
	}
	if p.match(token.FUNCTION) {
		return p.funcDeclaration()
	}
	return p.statement()
}

// varDeclaration parses `var IDENT ('=' expression)? ';'?`.
func (p *Parser) varDeclaration() (ast.Ref, error) {
	nameTok, err := p.consumeRequired(token.IDENTIFIER, "expected variable name after 'var'")
	if err != nil {
		return ast.NoRef, err
	}

	init := ast.NoRef
	if p.match(token.ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return ast.NoRef, err
		}
	}

	p.consumeOptional(token.SEMICOLON)
	return p.tree.NewVarDecl(nameTok, nameTok.Lexeme, init), nil
}

// funcDeclaration parses `function IDENT '(' (IDENT (',' IDENT)*)? ')' block`.
func (p *Parser) funcDeclaration() (ast.Ref, error) {
	nameTok, err := p.consumeRequired(token.IDENTIFIER, "expected function name after 'function'")
	if err != nil {
		return ast.NoRef, err
	}

	p.consumeOptional(token.LPA)
	var params []string
	for !p.check(token.RPA) && !p.isFinished() {
		if p.check(token.IDENTIFIER) {
			params = append(params, p.advance().Lexeme)
			p.consumeOptional(token.COMMA)
		} else {
			break
		}
	}
	p.consumeOptional(token.RPA)

	body, err := p.blockStatement()
	if err != nil {
		return ast.NoRef, err
	}

	return p.tree.NewFuncDecl(nameTok, nameTok.Lexeme, params, body)
}

// statement dispatches on the current token to one of the statement
// productions, falling back to an expression statement.
func (p *Parser) statement() (ast.Ref, error) {
	switch {
	case p.check(token.LCUR):
		return p.blockStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) blockStatement() (ast.Ref, error) {
	lbrace, err := p.consumeRequired(token.LCUR, "expected '{' to start block")
	if err != nil {
		return ast.NoRef, err
	}

	var statements []ast.Ref
	for !p.check(token.RCUR) && !p.isFinished() {
		stmt, err := p.declaration()
		if err != nil {
			return ast.NoRef, err
		}
		statements = append(statements, stmt)
	}
	p.consumeOptional(token.RCUR)

	return p.tree.NewBlock(lbrace, statements)
}

func (p *Parser) ifStatement() (ast.Ref, error) {
	ifTok := p.previous()
	p.consumeOptional(token.LPA)
	cond, err := p.expression()
	if err != nil {
		return ast.NoRef, err
	}
	p.consumeOptional(token.RPA)

	thenBranch, err := p.statement()
	if err != nil {
		return ast.NoRef, err
	}

	elseBranch := ast.NoRef
	if p.match(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return ast.NoRef, err
		}
	}

	return p.tree.NewIf(ifTok, cond, thenBranch, elseBranch), nil
}

func (p *Parser) whileStatement() (ast.Ref, error) {
	whileTok := p.previous()
	p.consumeOptional(token.LPA)
	cond, err := p.expression()
	if err != nil {
		return ast.NoRef, err
	}
	p.consumeOptional(token.RPA)

	body, err := p.statement()
	if err != nil {
		return ast.NoRef, err
	}

	return p.tree.NewWhile(whileTok, cond, body), nil
}

func (p *Parser) returnStatement() (ast.Ref, error) {
	returnTok := p.previous()
	value := ast.NoRef
	if !p.check(token.SEMICOLON) && !p.check(token.RCUR) && !p.isFinished() {
		var err error
		value, err = p.expression()
		if err != nil {
			return ast.NoRef, err
		}
	}
	p.consumeOptional(token.SEMICOLON)
	return p.tree.NewReturn(returnTok, value), nil
}

func (p *Parser) expressionStatement() (ast.Ref, error) {
	expr, err := p.expression()
	if err != nil {
		return ast.NoRef, err
	}
	p.consumeOptional(token.SEMICOLON)
	return expr, nil
}

func (p *Parser) expression() (ast.Ref, error) {
	return p.assignment()
}

// assignment parses right-associative `target = value`, reusing the
// or-level expression as the assignment target and requiring it to be a
// bare Identifier (spec.md §3: assignment only ever targets a bare
// identifier).
func (p *Parser) assignment() (ast.Ref, error) {
	left, err := p.or()
	if err != nil {
		return ast.NoRef, err
	}

	if p.match(token.ASSIGN) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return ast.NoRef, err
		}

		target := p.tree.Node(left)
		if target.Kind != ast.KindIdentifier {
			return ast.NoRef, CreateSyntaxError(equals.Line, equals.Column, "invalid assignment target")
		}
		return p.tree.NewAssignment(equals, target.Name, value), nil
	}

	return left, nil
}

func (p *Parser) or() (ast.Ref, error) {
	return p.leftAssocBinary(p.and, token.OR)
}

func (p *Parser) and() (ast.Ref, error) {
	return p.leftAssocBinary(p.equality, token.AND)
}

func (p *Parser) equality() (ast.Ref, error) {
	return p.leftAssocBinary(p.comparison, equalityKinds...)
}

func (p *Parser) comparison() (ast.Ref, error) {
	return p.leftAssocBinary(p.term, comparisonKinds...)
}

func (p *Parser) term() (ast.Ref, error) {
	return p.leftAssocBinary(p.factor, termKinds...)
}

func (p *Parser) factor() (ast.Ref, error) {
	return p.leftAssocBinary(p.unary, factorKinds...)
}

// leftAssocBinary folds next(), (op next())* into a left-associative chain
// of BinaryOp nodes. Every precedence level above unary shares this shape,
// differing only in which sub-rule and which operator kinds it matches.
func (p *Parser) leftAssocBinary(next func() (ast.Ref, error), kinds ...token.Kind) (ast.Ref, error) {
	left, err := next()
	if err != nil {
		return ast.NoRef, err
	}

	for p.match(kinds...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return ast.NoRef, err
		}
		left = p.tree.NewBinaryOp(op, string(op.Kind), left, right)
	}

	return left, nil
}

func (p *Parser) unary() (ast.Ref, error) {
	if p.match(unaryKinds...) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return ast.NoRef, err
		}
		return p.tree.NewUnaryOp(op, string(op.Kind), operand), nil
	}
	return p.call()
}

// call parses a primary expression followed by zero or more argument
// lists: `primary ('(' arg_list? ')')*`, allowing chained call syntax like
// `f()()` even though only a call whose callee is a bare identifier does
// anything at evaluation time.
func (p *Parser) call() (ast.Ref, error) {
	expr, err := p.primary()
	if err != nil {
		return ast.NoRef, err
	}

	for p.match(token.LPA) {
		lparen := p.previous()
		var args []ast.Ref
		for !p.check(token.RPA) && !p.isFinished() {
			arg, err := p.expression()
			if err != nil {
				return ast.NoRef, err
			}
			args = append(args, arg)
			p.consumeOptional(token.COMMA)
		}
		p.consumeOptional(token.RPA)

		expr, err = p.tree.NewCall(lparen, expr, args)
		if err != nil {
			return ast.NoRef, err
		}
	}

	return expr, nil
}

func (p *Parser) primary() (ast.Ref, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		return p.tree.NewNumber(tok, tok.Literal.(float64)), nil
	case token.STRING:
		p.advance()
		return p.tree.NewString(tok, tok.Literal.(string)), nil
	case token.IDENTIFIER:
		p.advance()
		return p.tree.NewIdentifier(tok, tok.Lexeme), nil
	case token.LPA:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return ast.NoRef, err
		}
		p.consumeOptional(token.RPA)
		return expr, nil
	default:
		return ast.NoRef, CreateSyntaxError(tok.Line, tok.Column, fmt.Sprintf("unrecognized expression starting with %q", tok.Lexeme))
	}
}
