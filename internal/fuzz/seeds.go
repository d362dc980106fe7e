package fuzztests

import "testing"

// addCorpusSeeds registers formula shapes every harness starts from:
// plain atoms, exponents, division chains, grouping, and the inputs
// that stress the sign-state grammar.
func addCorpusSeeds(f *testing.F) {
	seeds := []string{
		"",
		"1",
		"m",
		"kg m/s^2",
		"m /s s * kg",
		"m^-2",
		"(kg m)/(s^2)",
		"kg*m*s^-2",
		"kg·m/s^2",
		"m^2147483647",
		"m/1/1/1",
		"((((m))))",
		"µm",
		"m^",
		"/s",
		"m s^",
		"(m",
		"m)",
		"1.5",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}
