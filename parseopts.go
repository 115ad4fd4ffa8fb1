package formula

import "log/slog"

// Option is an option used when creating a Calculator.
type Option interface {
	calcOption()
}

type (
	opopt    Operator
	opsopt   []Operator
	nodefopt struct{}
	logopt   struct{ l *slog.Logger }
)

func (opopt) calcOption()    {}
func (opsopt) calcOption()   {}
func (nodefopt) calcOption() {}
func (logopt) calcOption()   {}

// WithOperator adds an operator to the calculator, replacing any default or
// earlier operator with the same symbol.
func WithOperator(op Operator) Option {
	return opopt(op)
}

// WithOperators adds any number of operators. Later operators replace earlier
// ones with the same symbol.
func WithOperators(ops ...Operator) Option {
	return opsopt(ops)
}

// NoDefaults starts the calculator with no operators instead of the defaults
// +, -, *, and /. The calculator must still be given at least one operator.
func NoDefaults() Option {
	return nodefopt{}
}

// WithLogger traces evaluation at debug level to l.
func WithLogger(l *slog.Logger) Option {
	return logopt{l}
}
