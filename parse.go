package formula

import (
	"log/slog"
	"strings"
)

// resolve evaluates each parenthesized group in s, innermost first and then
// left to right, and returns the formula as text interleaved with the values
// of its top-level groups. An unmatched parenthesis is an error.
func (c *Calculator) resolve(s string) ([]piece, error) {
	var (
		cur   []piece
		outer [][]piece
		opens []int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			cur = append(cur, text(s[start:i]))
			outer = append(outer, cur)
			opens = append(opens, i)
			cur = nil
			start = i + 1
		case ')':
			if len(opens) == 0 {
				return nil, perr(UnbalancedParens, s[:i+1], "close parenthesis with no open parenthesis")
			}
			cur = append(cur, text(s[start:i]))
			v, err := c.flat(cur...)
			if err != nil {
				return nil, err
			}
			open := opens[len(opens)-1]
			c.debug("group", slog.String("expr", s[open+1:i]), slog.Int("value", v))
			cur = append(outer[len(outer)-1], piece{val: v, done: true})
			outer = outer[:len(outer)-1]
			opens = opens[:len(opens)-1]
			start = i + 1
		}
	}
	if len(opens) != 0 {
		return nil, perr(UnbalancedParens, s[opens[0]:], "open parenthesis with no close parenthesis")
	}
	return append(cur, text(s[start:])), nil
}

// flat evaluates a formula with no parentheses.
func (c *Calculator) flat(segs ...piece) (int, error) {
	toks, err := c.ops.tokenize(segs...)
	if err != nil {
		return 0, err
	}
	return c.reduce(toks)
}

// reduce collapses toks to a single value, tier by tier from the highest
// priority down. Within a tier, operators apply from left to right.
func (c *Calculator) reduce(toks []token) (int, error) {
	for _, p := range c.ops.tiers {
		for i := 0; i < len(toks); {
			op := toks[i].op
			if op == nil || op.Priority != p {
				i++
				continue
			}
			if i == 0 || i+1 >= len(toks) || toks[i-1].op != nil || toks[i+1].op != nil {
				return 0, perr(MissingOperand, op.Symbol, "operand(s) not found for binary operator")
			}
			l, r := toks[i-1].val, toks[i+1].val
			v := op.Combine(l, r)
			c.debug("reduce", slog.Int("left", l), slog.String("op", op.Symbol), slog.Int("right", r), slog.Int("value", v))
			toks[i-1] = token{val: v}
			toks = append(toks[:i], toks[i+2:]...)
		}
	}
	switch len(toks) {
	case 0:
		return 0, nil
	case 1:
		if toks[0].op != nil {
			return 0, perr(MissingOperand, toks[0].op.Symbol, "operand(s) not found for binary operator")
		}
		return toks[0].val, nil
	default:
		return 0, perr(LeftoverValues, joinTokens(toks), "more than one value left after processing formula")
	}
}

func joinTokens(toks []token) string {
	v := make([]string, len(toks))
	for i, t := range toks {
		v[i] = t.String()
	}
	return strings.Join(v, " ")
}
