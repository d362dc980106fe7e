package units

// Mul multiplies two formulas: per-atom power addition, zero powers
// cancelled.
func Mul(a, b Formula) Formula {
	if a.IsDimensionless() {
		return b
	}
	if b.IsDimensionless() {
		return a
	}

	acc := make(map[AtomID]int64, len(a.terms)+len(b.terms))
	for _, tm := range a.terms {
		acc[tm.Atom] += int64(tm.Power)
	}
	for _, tm := range b.terms {
		acc[tm.Atom] += int64(tm.Power)
	}
	return fromAccumulated(acc)
}

// Div divides a by b; equivalent to Mul(a, Invert(b)).
func Div(a, b Formula) Formula {
	return Mul(a, Invert(b))
}

// Invert flips the sign of every power.
func Invert(f Formula) Formula {
	if f.IsDimensionless() {
		return One
	}
	out := make([]Exponent, len(f.terms))
	for i, tm := range f.terms {
		out[i] = Exponent{Atom: tm.Atom, Power: -tm.Power}
	}
	return Formula{terms: out}
}

// Pow scales every power by n. n = 0 yields the dimensionless
// formula. Powers that leave int32 range produce an
// ExponentOverflowError, since n is user input.
func Pow(f Formula, n int32) (Formula, error) {
	if n == 0 || f.IsDimensionless() {
		return One, nil
	}
	if n == 1 {
		return f, nil
	}

	out := make([]Exponent, len(f.terms))
	for i, tm := range f.terms {
		p := int64(tm.Power) * int64(n)
		if p > maxPower || p < -maxPower {
			return One, &ExponentOverflowError{Power: p}
		}
		out[i] = Exponent{Atom: tm.Atom, Power: int32(p)}
	}
	return Formula{terms: out}, nil
}

// maxPower bounds any single accumulated power. The limit is far
// beyond anything a physical dimension needs while leaving headroom
// for further accumulation in int64.
const maxPower = 1 << 30
