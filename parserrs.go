package formula

import (
	"errors"
	"strconv"
)

// ErrInvalidArgument is returned when a formula is absent, as opposed to
// empty. It indicates a misuse of the API rather than bad input.
var ErrInvalidArgument = errors.New("formula: nil formula")

// Reason classifies a ParseError.
type Reason int

const (
	reasonNone Reason = iota
	// InvalidValue is a piece that should be an integer but isn't.
	InvalidValue
	// UnexpectedOperator is an operator where a value was expected, e.g. a
	// leading operator that can't be a sign.
	UnexpectedOperator
	// ExpectedOperator is a value where an operator was expected.
	ExpectedOperator
	// MissingOperand is an operator with nothing on one of its sides.
	MissingOperand
	// UnbalancedParens is a parenthesis with no partner.
	UnbalancedParens
	// LeftoverValues is a formula which did not reduce to a single value.
	LeftoverValues
	// Domain is an operator applied to operands outside its domain.
	Domain
)

var reasonNames = [...]string{
	reasonNone:         "none",
	InvalidValue:       "invalid value",
	UnexpectedOperator: "unexpected operator",
	ExpectedOperator:   "expected operator",
	MissingOperand:     "missing operand",
	UnbalancedParens:   "unbalanced parentheses",
	LeftoverValues:     "leftover values",
	Domain:             "domain error",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "Reason(" + strconv.Itoa(int(r)) + ")"
	}
	return reasonNames[r]
}

// ParseError is the error returned for any formula that can't be evaluated.
type ParseError struct {
	// Reason classifies the error.
	Reason Reason
	// Token is the offending piece of the formula, if there is one.
	Token string
	// Msg is a human-readable description.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (err *ParseError) Error() string {
	s := "formula: " + err.Msg
	if err.Token != "" {
		s += ": " + strconv.Quote(err.Token)
	}
	if err.Err != nil {
		s += " (" + err.Err.Error() + ")"
	}
	return s
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// perr is a shortcut to create a ParseError.
func perr(r Reason, tok, msg string) *ParseError {
	return &ParseError{Reason: r, Token: tok, Msg: msg}
}
