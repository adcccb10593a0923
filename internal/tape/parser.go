package tape

import (
	"errors"
	"fmt"
	"strconv"
)

// Parser parses .tape files into commands
type Parser struct {
	lexer   *Lexer
	curTok  Token
	peekTok Token
	errors  []string
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{lexer: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse lexes and parses a whole script. Every syntax error is reported.
func Parse(input string) ([]Command, error) {
	p := NewParser(New(input))
	cmds := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = errors.New(e)
		}
		return nil, errors.Join(joined...)
	}
	return cmds, nil
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextToken()
}

// Errors returns the errors collected while parsing
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d:%d: %s", p.curTok.Line, p.curTok.Column, msg))
}

// skipToNextLine drops the rest of a bad line
func (p *Parser) skipToNextLine() {
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.nextToken()
	}
}

// endLine requires the command to end here
func (p *Parser) endLine() bool {
	if p.curTok.Type == TOKEN_NEWLINE || p.curTok.Type == TOKEN_EOF {
		return true
	}
	p.addError(fmt.Sprintf("unexpected %s %q at end of command", p.curTok.Type, p.curTok.Literal))
	p.skipToNextLine()
	return false
}

// Parse parses the entire tape file and returns all commands
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}
		if cmd, ok := p.parseCommand(); ok {
			commands = append(commands, cmd)
		}
	}

	return commands
}

func (p *Parser) parseCommand() (Command, bool) {
	cmd := Command{
		Type:   CommandType(p.curTok.Type),
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}
	tt := p.curTok.Type

	var ok bool
	switch {
	case tt.IsKey():
		ok = p.parseKey(&cmd)
	case tt == TOKEN_TYPE:
		ok = p.parseType(&cmd)
	case tt == TOKEN_CTRL:
		ok = p.parseKeyCombo(&cmd)
	case tt == TOKEN_MOVE, tt == TOKEN_CLICK, tt == TOKEN_RIGHT_CLICK:
		ok = p.parseNumbers(&cmd, 2)
	case tt == TOKEN_DRAG:
		ok = p.parseNumbers(&cmd, 4)
	case tt == TOKEN_SLEEP:
		ok = p.parseSleep(&cmd)
	case tt == TOKEN_TICK:
		ok = p.parseTick(&cmd)
	case tt == TOKEN_OPEN, tt == TOKEN_SCREENSHOT, tt == TOKEN_OUTPUT:
		ok = p.parseString(&cmd)
	case tt == TOKEN_SET:
		ok = p.parseSet(&cmd)
	default:
		p.addError(fmt.Sprintf("unexpected token %s %q", tt, p.curTok.Literal))
		p.skipToNextLine()
		return cmd, false
	}
	if !ok {
		return cmd, false
	}
	return cmd, p.endLine()
}

// parseDelay reads an optional @<duration> modifier
func (p *Parser) parseDelay(cmd *Command) bool {
	if p.curTok.Type != TOKEN_AT {
		return true
	}
	p.nextToken()
	if p.curTok.Type != TOKEN_DURATION {
		p.addError("expected duration after @")
		p.skipToNextLine()
		return false
	}
	d, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		p.skipToNextLine()
		return false
	}
	cmd.Delay = d
	p.nextToken()
	return true
}

// parseKey parses Enter, Up, ... with optional delay and repeat count
func (p *Parser) parseKey(cmd *Command) bool {
	p.nextToken()
	if !p.parseDelay(cmd) {
		return false
	}
	if p.curTok.Type == TOKEN_NUMBER {
		if _, ok := p.positive(); !ok {
			return false
		}
		cmd.Args = []string{p.curTok.Literal}
		p.nextToken()
	}
	return true
}

func (p *Parser) parseType(cmd *Command) bool {
	p.nextToken()
	if !p.parseDelay(cmd) {
		return false
	}
	if p.curTok.Type != TOKEN_STRING {
		p.addError(fmt.Sprintf("Type expects a string, got %s", p.curTok.Type))
		p.skipToNextLine()
		return false
	}
	cmd.Args = []string{p.curTok.Literal}
	p.nextToken()
	return true
}

// parseKeyCombo parses Ctrl+X
func (p *Parser) parseKeyCombo(cmd *Command) bool {
	cmd.Type = CommandType_KeyCombo
	p.nextToken()
	if p.curTok.Type != TOKEN_PLUS {
		p.addError("expected + after Ctrl")
		p.skipToNextLine()
		return false
	}
	p.nextToken()
	combo := "Ctrl+" + p.curTok.Literal
	if _, err := ParseKeyCombo(combo); err != nil {
		p.addError(err.Error())
		p.skipToNextLine()
		return false
	}
	cmd.Args = []string{combo}
	p.nextToken()
	return true
}

func (p *Parser) parseNumbers(cmd *Command, n int) bool {
	p.nextToken()
	for range n {
		if p.curTok.Type != TOKEN_NUMBER {
			p.addError(fmt.Sprintf("%s expects %d coordinates, got %s", cmd.Type, n, p.curTok.Type))
			p.skipToNextLine()
			return false
		}
		if _, err := strconv.Atoi(p.curTok.Literal); err != nil {
			p.addError(fmt.Sprintf("invalid coordinate %s", p.curTok.Literal))
			p.skipToNextLine()
			return false
		}
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		p.nextToken()
	}
	return true
}

func (p *Parser) parseSleep(cmd *Command) bool {
	p.nextToken()
	if p.curTok.Type != TOKEN_DURATION {
		p.addError(fmt.Sprintf("Sleep expects a duration, got %s", p.curTok.Type))
		p.skipToNextLine()
		return false
	}
	d, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		p.skipToNextLine()
		return false
	}
	cmd.Delay = d
	p.nextToken()
	return true
}

func (p *Parser) parseTick(cmd *Command) bool {
	p.nextToken()
	if p.curTok.Type == TOKEN_NUMBER {
		if _, ok := p.positive(); !ok {
			return false
		}
		cmd.Args = []string{p.curTok.Literal}
		p.nextToken()
	}
	return true
}

func (p *Parser) parseString(cmd *Command) bool {
	p.nextToken()
	if p.curTok.Type != TOKEN_STRING || p.curTok.Literal == "" {
		p.addError(fmt.Sprintf("%s expects a quoted path", cmd.Type))
		p.skipToNextLine()
		return false
	}
	cmd.Args = []string{p.curTok.Literal}
	p.nextToken()
	return true
}

// parseSet parses Set <name> <value>
func (p *Parser) parseSet(cmd *Command) bool {
	p.nextToken()
	if p.curTok.Type != TOKEN_IDENTIFIER {
		p.addError("Set expects a setting name")
		p.skipToNextLine()
		return false
	}
	name := p.curTok.Literal
	p.nextToken()

	switch name {
	case SettingFPS:
		if p.curTok.Type != TOKEN_NUMBER {
			p.addError("Set FPS expects a number")
			p.skipToNextLine()
			return false
		}
		if _, ok := p.positive(); !ok {
			return false
		}
	case SettingTypingSpeed:
		if p.curTok.Type != TOKEN_DURATION {
			p.addError("Set TypingSpeed expects a duration")
			p.skipToNextLine()
			return false
		}
		if _, err := ParseDuration(p.curTok.Literal); err != nil {
			p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
			p.skipToNextLine()
			return false
		}
	default:
		p.addError(fmt.Sprintf("unknown setting %q", name))
		p.skipToNextLine()
		return false
	}
	cmd.Args = []string{name, p.curTok.Literal}
	p.nextToken()
	return true
}

// positive validates the current NUMBER token as an integer above zero
func (p *Parser) positive() (int, bool) {
	n, err := strconv.Atoi(p.curTok.Literal)
	if err != nil || n < 1 {
		p.addError(fmt.Sprintf("expected a positive count, got %s", p.curTok.Literal))
		p.skipToNextLine()
		return 0, false
	}
	return n, true
}
