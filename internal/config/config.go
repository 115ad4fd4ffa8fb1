// Package config loads operator definitions for a formula calculator from
// YAML files.
//
// A file looks like:
//
//	defaults: true
//	extras: false
//	operators:
//	  - symbol: "&"
//	    priority: 0
//	    func: concat
//
// Each operator names one of the built-in combine functions listed by Funcs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/formula"
)

// MaxFileSize is the largest configuration file Load accepts.
const MaxFileSize = 1 << 20

// ErrUnknownFunc is returned for an operator naming a combine function that
// doesn't exist.
var ErrUnknownFunc = errors.New("config: unknown func")

// File is a parsed configuration file.
type File struct {
	// Defaults is whether to keep the default operators. A missing value
	// means true.
	Defaults *bool `yaml:"defaults"`
	// Extras adds ^, %, and √.
	Extras bool `yaml:"extras"`
	// Operators are added after the defaults and extras, so they can
	// override them.
	Operators []Operator `yaml:"operators"`
}

// Operator is the configuration of a single operator.
type Operator struct {
	Symbol   string `yaml:"symbol"`
	Priority int    `yaml:"priority"`
	Unary    bool   `yaml:"unary"`
	Func     string `yaml:"func"`
}

var funcs = map[string]func(a, b int) int{
	"add":    formula.Plus().Combine,
	"sub":    formula.Minus().Combine,
	"mul":    formula.Times().Combine,
	"div":    formula.Divide().Combine,
	"mod":    formula.Modulo().Combine,
	"pow":    formula.Power().Combine,
	"root":   formula.Root().Combine,
	"concat": concat,
	"min": func(a, b int) int {
		if a < b {
			return a
		}
		return b
	},
	"max": func(a, b int) int {
		if a > b {
			return a
		}
		return b
	},
}

// Funcs returns the names of the combine functions operators may use.
func Funcs() []string {
	v := make([]string, 0, len(funcs))
	for k := range funcs {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

// concat glues the decimal digits of a and b together.
func concat(a, b int) int {
	if b < 0 {
		panic(formula.DomainError{X: b, Arg: 2, Func: "concat"})
	}
	r, err := strconv.Atoi(strconv.Itoa(a) + strconv.Itoa(b))
	if err != nil {
		panic(formula.DomainError{X: b, Arg: 2, Func: "concat"})
	}
	return r
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if len(b) > MaxFileSize {
		return nil, fmt.Errorf("config: %s is larger than %d bytes", path, MaxFileSize)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return c, nil
}

// Parse parses configuration from YAML. Unknown fields are errors.
func Parse(b []byte) (*File, error) {
	var c File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

// Options converts the configuration to calculator options.
func (c *File) Options() ([]formula.Option, error) {
	var opts []formula.Option
	if c.Defaults != nil && !*c.Defaults {
		opts = append(opts, formula.NoDefaults())
	}
	if c.Extras {
		opts = append(opts, formula.WithOperators(formula.Extras()...))
	}
	for _, o := range c.Operators {
		fn := funcs[o.Func]
		if fn == nil {
			return nil, fmt.Errorf("%w %q for operator %q", ErrUnknownFunc, o.Func, o.Symbol)
		}
		opts = append(opts, formula.WithOperator(formula.Operator{
			Symbol:   o.Symbol,
			Priority: o.Priority,
			Unary:    o.Unary,
			Combine:  fn,
		}))
	}
	return opts, nil
}
