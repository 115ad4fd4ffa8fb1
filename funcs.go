package formula

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Operator is a binary operator on integers.
type Operator struct {
	// Symbol is the literal text of the operator in formulas. It is the
	// operator's identity within a Registry.
	Symbol string
	// Priority is the operator's tier. Higher priorities bind tighter.
	Priority int
	// Unary is whether the operator may also prefix a value as a sign. A
	// unary operator applied to v evaluates Combine(0, v), so the unary form
	// of - is negation.
	Unary bool
	// Combine computes the operator's result. If it is called with operands
	// outside its domain, it should panic with a DomainError.
	Combine func(a, b int) int
}

func (op Operator) String() string {
	return "operator " + strconv.Quote(op.Symbol)
}

// apply evaluates op as a sign on v.
func (op Operator) apply(v int) int {
	return op.Combine(0, v)
}

// Plus returns the + operator at priority 1.
func Plus() Operator {
	return Operator{Symbol: "+", Priority: 1, Combine: func(a, b int) int { return a + b }}
}

// Minus returns the - operator at priority 1. It is also a unary negation.
func Minus() Operator {
	return Operator{Symbol: "-", Priority: 1, Unary: true, Combine: func(a, b int) int { return a - b }}
}

// Times returns the * operator at priority 2.
func Times() Operator {
	return Operator{Symbol: "*", Priority: 2, Combine: func(a, b int) int { return a * b }}
}

// Divide returns the / operator at priority 2. Division truncates toward
// zero, and division by zero panics with a DomainError.
func Divide() Operator {
	return Operator{Symbol: "/", Priority: 2, Combine: func(a, b int) int {
		if b == 0 {
			panic(DomainError{X: b, Arg: 2, Func: "/"})
		}
		return a / b
	}}
}

// Modulo returns the % operator at priority 2, the remainder of truncated
// division.
func Modulo() Operator {
	return Operator{Symbol: "%", Priority: 2, Combine: func(a, b int) int {
		if b == 0 {
			panic(DomainError{X: b, Arg: 2, Func: "%"})
		}
		return a % b
	}}
}

// Power returns the ^ operator at priority 3. Like every operator, it
// associates to the left, so 2^3^2 is 64. Negative exponents are outside its
// domain.
func Power() Operator {
	return Operator{Symbol: "^", Priority: 3, Combine: ipow}
}

// Root returns the √ operator at priority 3. n√x is the largest integer r
// such that r^n <= x. n must be positive and x must be non-negative.
func Root() Operator {
	return Operator{Symbol: "√", Priority: 3, Combine: iroot}
}

// Defaults returns the operators every Calculator starts with unless
// NoDefaults is given: +, -, *, and /.
func Defaults() []Operator {
	return []Operator{Plus(), Minus(), Times(), Divide()}
}

// Extras returns the optional operators ^, %, and √.
func Extras() []Operator {
	return []Operator{Power(), Modulo(), Root()}
}

func ipow(x, n int) int {
	if n < 0 {
		panic(DomainError{X: n, Arg: 2, Func: "^"})
	}
	r := 1
	for n > 0 {
		if n&1 != 0 {
			r *= x
		}
		x *= x
		n >>= 1
	}
	return r
}

// rootPrec is the precision used to estimate integer roots.
const rootPrec = 128

func iroot(n, x int) int {
	switch {
	case n <= 0:
		panic(DomainError{X: n, Arg: 1, Func: "√"})
	case x < 0:
		panic(DomainError{X: x, Arg: 2, Func: "√"})
	case n == 1, x < 2:
		return x
	}
	// Estimate with floats, then fix the estimate so the result is exact.
	bx := new(big.Float).SetPrec(rootPrec).SetInt64(int64(x))
	e := new(big.Float).SetPrec(rootPrec).SetInt64(int64(n))
	e.Quo(big.NewFloat(1).SetPrec(rootPrec), e)
	z := new(big.Float).SetPrec(rootPrec)
	bigfloat.Pow(z, bx, e)
	r, _ := z.Int64()
	if r < 1 {
		r = 1
	}
	for r > 1 && !powAtMost(int(r), n, x) {
		r--
	}
	for powAtMost(int(r+1), n, x) {
		r++
	}
	return int(r)
}

// powAtMost reports whether r^n <= x for r >= 0, n >= 1, without overflowing.
func powAtMost(r, n, x int) bool {
	if r <= 1 {
		return r <= x
	}
	p := 1
	for i := 0; i < n; i++ {
		if p > x/r {
			return false
		}
		p *= r
	}
	return p <= x
}

// DomainError is a panic value used by operators called on operands outside
// their domain. The evaluator recovers it and reports it as the cause of a
// ParseError.
type DomainError struct {
	// X is the out-of-domain operand.
	X int
	// Arg is the 1-based index of the operand.
	Arg int
	// Func names the operator, usually by its symbol.
	Func string
}

func (err DomainError) Error() string {
	r := strconv.Itoa(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (operand " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
