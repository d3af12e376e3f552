package svgpath

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/tdewolff/parse/v2"
)

var (
	// ErrUnknownCommand is returned for a letter which is not a path command.
	ErrUnknownCommand = errors.New("unknown path command")
	// ErrParamCount is returned when the number of parameters
	// does not match the arity of a command.
	ErrParamCount = errors.New("parameter count mismatch")
)

// SyntaxError reports a malformed path data attribute.
type SyntaxError struct {
	Offset  int  // byte offset of the faulty command in the input
	Command byte // faulty letter, or 0
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("svgpath: %s at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("svgpath: %s for command %q at offset %d", e.Err, e.Command, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// scanner splits path data into command letters and number tokens.
// Numbers glued together ("1.2.3" is 1.2 and .3) or glued
// to a command letter ("l10") are separated.
type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) skipSeparators() {
	for s.pos < len(s.data) && isSeparator(s.data[s.pos]) {
		s.pos++
	}
}

func (s *scanner) done() bool { return s.pos >= len(s.data) }

// atCommand returns true if the next token is a letter.
func (s *scanner) atCommand() bool {
	return !s.done() && isLetter(s.data[s.pos])
}

// token reads the next number token, which may be followed by a percent sign.
// When `isFlag` is true, a single 0 or 1 digit is read, since arc flags
// may be written without separators.
// An invalid character is returned as a one byte token, which will not
// parse as a number.
func (s *scanner) token(isFlag bool) string {
	start := s.pos
	if isFlag && (s.data[s.pos] == '0' || s.data[s.pos] == '1') {
		s.pos++
		return string(s.data[start:s.pos])
	}
	n := parse.Number(s.data[s.pos:])
	if n == 0 {
		s.pos++
		return string(s.data[start:s.pos])
	}
	s.pos += n
	if s.pos < len(s.data) && s.data[s.pos] == '%' {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

type parser struct {
	sc       scanner
	viewport *svgunit.Viewport

	current, subpathStart Point
	commands              []Command
}

// Parse reads the path data `content`. The viewport is used to resolve
// percentages, which resolve to 0 if it is nil.
// Unknown commands and parameter count mismatches are reported as
// a *SyntaxError; malformed numbers resolve to 0.
func Parse(content string, viewport *svgunit.Viewport) (Path, error) {
	pr := parser{sc: scanner{data: []byte(content)}, viewport: viewport}
	for {
		pr.sc.skipSeparators()
		if pr.sc.done() {
			break
		}
		offset := pr.sc.pos
		letter := pr.sc.data[offset]
		if !isLetter(letter) {
			return Path{}, &SyntaxError{Offset: offset, Err: fmt.Errorf("%w: number before any command", ErrParamCount)}
		}
		kind, relative, ok := kindFromLetter(letter)
		if !ok {
			return Path{}, &SyntaxError{Offset: offset, Command: letter, Err: ErrUnknownCommand}
		}
		pr.sc.pos++

		tokens := pr.readTokens(kind)
		arity := kind.Arity()
		if arity == 0 {
			if len(tokens) != 0 {
				return Path{}, &SyntaxError{Offset: offset, Command: letter, Err: ErrParamCount}
			}
			pr.emit(kind, relative, nil)
			continue
		}
		if len(tokens) == 0 || len(tokens)%arity != 0 {
			return Path{}, &SyntaxError{Offset: offset, Command: letter, Err: ErrParamCount}
		}
		for group := 0; group*arity < len(tokens); group++ {
			args := pr.resolveParams(kind, tokens[group*arity:(group+1)*arity])
			k := kind
			if kind == MoveTo && group > 0 {
				k = LineTo // implicit lineto after the first pair
			}
			pr.emit(k, relative, args)
		}
	}
	return Path{Commands: pr.commands, Vertices: vertices(pr.commands)}, nil
}

// readTokens reads the number tokens up to the next command letter.
func (pr *parser) readTokens(kind Kind) []string {
	params := commandParams[kind]
	var tokens []string
	for {
		pr.sc.skipSeparators()
		if pr.sc.done() || pr.sc.atCommand() {
			return tokens
		}
		isFlag := len(params) != 0 && params[len(tokens)%len(params)] == flag
		tokens = append(tokens, pr.sc.token(isFlag))
	}
}

// resolveParams converts the tokens to values, according to their semantic.
func (pr *parser) resolveParams(kind Kind, tokens []string) []float64 {
	out := make([]float64, len(tokens))
	for i, tok := range tokens {
		var (
			v   float64
			err error
		)
		switch commandParams[kind][i] {
		case xLength:
			var l svgunit.Length
			l, err = svgunit.ParseLength(tok, svgunit.Width, pr.viewport, nil)
			v = l.Value
		case yLength:
			var l svgunit.Length
			l, err = svgunit.ParseLength(tok, svgunit.Height, pr.viewport, nil)
			v = l.Value
		case number:
			v, err = svgunit.ParseNumber(tok)
		case flag:
			v, err = svgunit.ParseNumber(tok)
			if v != 0 {
				v = 1
			}
		}
		if err != nil {
			logx.Logger().Debug("svgpath: invalid number, using 0", "token", tok, "command", kind.String())
		}
		out[i] = v
	}
	return out
}

// emit appends a command, updating the current point.
func (pr *parser) emit(kind Kind, relative bool, args []float64) {
	cmd := Command{Kind: kind, Relative: relative, Params: args, Start: pr.current}
	var offset Point
	if relative {
		offset = pr.current
	}
	end := pr.current
	switch kind {
	case MoveTo, LineTo, SmoothQuadraticCurveTo:
		end = Point{args[0] + offset.X, args[1] + offset.Y}
	case HorizontalLineTo:
		end.X = args[0] + offset.X
	case VerticalLineTo:
		end.Y = args[0] + offset.Y
	case CubicCurveTo:
		end = Point{args[4] + offset.X, args[5] + offset.Y}
	case SmoothCubicCurveTo, QuadraticCurveTo:
		end = Point{args[2] + offset.X, args[3] + offset.Y}
	case EllipticalArc:
		end = Point{args[5] + offset.X, args[6] + offset.Y}
	case ClosePath:
		end = pr.subpathStart
	}
	if kind == MoveTo {
		pr.subpathStart = end
	}
	cmd.End = end
	pr.current = end
	pr.commands = append(pr.commands, cmd)
}
