package formula

import (
	"strconv"
	"strings"
)

// token is an element of a tokenized formula: an operator if op is non-nil,
// otherwise an integer value.
type token struct {
	op  *Operator
	val int
}

func (t token) String() string {
	if t.op != nil {
		return t.op.Symbol
	}
	return strconv.Itoa(t.val)
}

// piece is a run of formula text, or the value of a parenthesized group that
// has already been evaluated if done is set.
type piece struct {
	text string
	val  int
	done bool
}

func (p piece) String() string {
	if p.done {
		return strconv.Itoa(p.val)
	}
	return p.text
}

// text is a shortcut to create a text piece.
func text(s string) piece {
	return piece{text: s}
}

// split cuts the text pieces of a parenthesis-free formula before and after
// every registered symbol, preferring the longest symbol at each position.
// Text is trimmed of whitespace, and empty text is dropped. Evaluated pieces
// pass through unchanged.
func (r *Registry) split(segs ...piece) []piece {
	var v []piece
	var buf strings.Builder
	flush := func() {
		if p := strings.TrimSpace(buf.String()); p != "" {
			v = append(v, text(p))
		}
		buf.Reset()
	}
	for _, seg := range segs {
		if seg.done {
			flush()
			v = append(v, seg)
			continue
		}
		s := seg.text
		for i := 0; i < len(s); {
			if sym, ok := r.match(s[i:]); ok {
				flush()
				v = append(v, text(sym))
				i += len(sym)
				continue
			}
			buf.WriteByte(s[i])
			i++
		}
		flush()
	}
	return v
}

// tokenize converts a parenthesis-free formula into alternating values and
// operators. The result is empty if the formula is blank. It may end with an
// operator; reduce reports that as a missing operand.
func (r *Registry) tokenize(segs ...piece) ([]token, error) {
	pieces := r.split(segs...)
	toks := make([]token, 0, len(pieces))
	for i := 0; i < len(pieces); i++ {
		if len(toks)%2 == 0 {
			v, k, err := r.value(pieces, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{val: v})
			i = k
			continue
		}
		p := pieces[i]
		op, ok := r.ops[p.text]
		if p.done || !ok {
			return nil, perr(ExpectedOperator, p.String(), "expected operator")
		}
		toks = append(toks, token{op: &op})
	}
	return toks, nil
}

// value parses the value starting at pieces[i], with any signs preceding it.
// It returns the value and the index of its last piece.
func (r *Registry) value(pieces []piece, i int) (int, int, error) {
	p := pieces[i]
	if p.done {
		return p.val, i, nil
	}
	if op, ok := r.ops[p.text]; ok {
		if !op.Unary {
			return 0, i, perr(UnexpectedOperator, p.text, "expected value, got operator")
		}
		if i+1 >= len(pieces) {
			return 0, i, perr(MissingOperand, p.text, "unexpected end of formula after operator")
		}
		v, k, err := r.value(pieces, i+1)
		if err != nil {
			return 0, k, err
		}
		return op.apply(v), k, nil
	}
	if !isDigits(p.text) {
		return 0, i, perr(InvalidValue, p.text, "invalid value")
	}
	v, err := strconv.Atoi(p.text)
	if err != nil {
		e := perr(InvalidValue, p.text, "invalid value")
		e.Err = err
		return 0, i, e
	}
	return v, i, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || '9' < s[i] {
			return false
		}
	}
	return s != ""
}
