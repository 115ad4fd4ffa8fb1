package formula

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

var (
	// ErrNoOperators is returned when building a registry or calculator with
	// no operators, which leaves the priority tiers undefined.
	ErrNoOperators = errors.New("formula: no operators registered")
	// ErrBadOperator is returned when registering an operator that can't be
	// matched or evaluated.
	ErrBadOperator = errors.New("formula: invalid operator")
)

// Registry maps operator symbols to operators. The zero value is an empty
// registry ready for Register. A Registry may be read concurrently, but
// Register must not be called concurrently with any other method.
type Registry struct {
	ops map[string]Operator
	// syms holds the registered symbols, longest first, for matching.
	syms []string
	// tiers holds the distinct priorities in descending order.
	tiers []int
}

// NewRegistry creates a registry holding ops. Later operators override
// earlier ones with the same symbol.
func NewRegistry(ops ...Operator) (*Registry, error) {
	var r Registry
	for _, op := range ops {
		if err := r.Register(op); err != nil {
			return nil, err
		}
	}
	if len(r.ops) == 0 {
		return nil, ErrNoOperators
	}
	return &r, nil
}

// Register adds op to the registry, replacing any operator with the same
// symbol. The symbol must be non-empty and must not contain whitespace,
// parentheses, or decimal digits, and Combine must be non-nil.
func (r *Registry) Register(op Operator) error {
	if err := checkOperator(op); err != nil {
		return err
	}
	if r.ops == nil {
		r.ops = make(map[string]Operator)
	}
	r.ops[op.Symbol] = op
	r.index()
	return nil
}

func checkOperator(op Operator) error {
	if op.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrBadOperator)
	}
	if op.Combine == nil {
		return fmt.Errorf("%w: %q has no combine function", ErrBadOperator, op.Symbol)
	}
	for _, c := range op.Symbol {
		if unicode.IsSpace(c) || c == '(' || c == ')' || '0' <= c && c <= '9' {
			return fmt.Errorf("%w: %q contains %q", ErrBadOperator, op.Symbol, c)
		}
	}
	return nil
}

// index recomputes the symbol and tier caches.
func (r *Registry) index() {
	r.syms = r.syms[:0]
	seen := make(map[int]bool, len(r.tiers))
	r.tiers = r.tiers[:0]
	for sym, op := range r.ops {
		r.syms = append(r.syms, sym)
		if !seen[op.Priority] {
			seen[op.Priority] = true
			r.tiers = append(r.tiers, op.Priority)
		}
	}
	sort.Slice(r.syms, func(i, j int) bool {
		a, b := r.syms[i], r.syms[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	sort.Sort(sort.Reverse(sort.IntSlice(r.tiers)))
}

// Lookup returns the operator registered with the given symbol.
func (r *Registry) Lookup(sym string) (Operator, bool) {
	op, ok := r.ops[sym]
	return op, ok
}

// Len returns the number of registered operators.
func (r *Registry) Len() int {
	return len(r.ops)
}

// MaxPriority returns the highest registered priority, or 0 if the registry
// is empty.
func (r *Registry) MaxPriority() int {
	if len(r.tiers) == 0 {
		return 0
	}
	return r.tiers[0]
}

// MinPriority returns the lowest registered priority, or 0 if the registry is
// empty.
func (r *Registry) MinPriority() int {
	if len(r.tiers) == 0 {
		return 0
	}
	return r.tiers[len(r.tiers)-1]
}

// Operators returns the registered operators ordered by descending priority,
// then by symbol.
func (r *Registry) Operators() []Operator {
	v := make([]Operator, 0, len(r.ops))
	for _, op := range r.ops {
		v = append(v, op)
	}
	sort.Slice(v, func(i, j int) bool {
		if v[i].Priority != v[j].Priority {
			return v[i].Priority > v[j].Priority
		}
		return v[i].Symbol < v[j].Symbol
	})
	return v
}

// match returns the longest registered symbol which prefixes s.
func (r *Registry) match(s string) (string, bool) {
	for _, sym := range r.syms {
		if strings.HasPrefix(s, sym) {
			return sym, true
		}
	}
	return "", false
}
