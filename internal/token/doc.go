// Package token defines the token vocabulary of unit-of-measure
// formulas: unit identifiers, integer exponents and the handful of
// operators that combine them.
package token
