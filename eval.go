package formula

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
)

// Calculator evaluates integer formulas with a fixed set of operators. A
// Calculator is safe for concurrent use.
type Calculator struct {
	ops *Registry
	log *slog.Logger
}

// New creates a calculator. Without options, it has the operators +, -, *,
// and /. Operator options are applied in order, so later operators replace
// earlier ones with the same symbol.
func New(opts ...Option) (*Calculator, error) {
	defaults := true
	for _, opt := range opts {
		if _, ok := opt.(nodefopt); ok {
			defaults = false
		}
	}
	var ops []Operator
	if defaults {
		ops = Defaults()
	}
	c := Calculator{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case opopt:
			ops = append(ops, Operator(opt))
		case opsopt:
			ops = append(ops, opt...)
		case nodefopt:
			// Already done. Do nothing.
		case logopt:
			c.log = opt.l
		default:
			panic("formula: unknown option type")
		}
	}
	r, err := NewRegistry(ops...)
	if err != nil {
		return nil, err
	}
	c.ops = r
	return &c, nil
}

// Compute reads a formula from src and evaluates it. If src is nil, or is a
// nil pointer, the error is ErrInvalidArgument. If the formula is malformed,
// the error is a *ParseError. An empty formula evaluates to 0.
func (c *Calculator) Compute(src io.Reader) (int, error) {
	if isNil(src) {
		return 0, ErrInvalidArgument
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return 0, fmt.Errorf("formula: reading formula: %w", err)
	}
	return c.ComputeString(string(b))
}

// ComputeString evaluates a formula. If the formula is malformed, the error is
// a *ParseError. An empty formula evaluates to 0.
func (c *Calculator) ComputeString(formula string) (r int, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		d, ok := p.(DomainError)
		if !ok {
			panic(p)
		}
		r, err = 0, &ParseError{Reason: Domain, Token: d.Func, Msg: "operand outside domain", Err: d}
	}()
	segs, err := c.resolve(formula)
	if err != nil {
		return 0, err
	}
	return c.flat(segs...)
}

// isNil reports whether src is absent, including a typed nil.
func isNil(src io.Reader) bool {
	if src == nil {
		return true
	}
	switch v := reflect.ValueOf(src); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Lookup returns the operator the calculator uses for a symbol.
func (c *Calculator) Lookup(sym string) (Operator, bool) {
	return c.ops.Lookup(sym)
}

// Operators returns the calculator's operators ordered by descending
// priority, then by symbol.
func (c *Calculator) Operators() []Operator {
	return c.ops.Operators()
}

// debug logs an evaluation step if the calculator has a logger.
func (c *Calculator) debug(msg string, attrs ...slog.Attr) {
	if c.log == nil {
		return
	}
	c.log.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

// Eval is a shortcut to create a calculator and evaluate a formula with it.
func Eval(src io.Reader, opts ...Option) (int, error) {
	c, err := New(opts...)
	if err != nil {
		return 0, err
	}
	return c.Compute(src)
}

// EvalString is a shortcut to evaluate a string formula.
func EvalString(src string, opts ...Option) (int, error) {
	return Eval(strings.NewReader(src), opts...)
}
