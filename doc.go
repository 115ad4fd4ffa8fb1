// Package formula implements an integer calculator with an extensible set of
// binary operators.
//
// Operators have priorities. A formula is evaluated by applying every
// operator of the highest priority from left to right, then every operator of
// the next priority, and so on, so "8 - 3 - 2" is 3 and "3 + 15 * 2" is 33.
// Parenthesized groups are evaluated first, innermost first. An operator
// marked Unary may also be used as a sign, as in "-5 + 17" or "2 * -3"; runs
// of signs compose, so "--5" is 5.
//
// Whitespace is insignificant except inside numbers. A blank formula is 0.
package formula
