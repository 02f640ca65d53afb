package sparam

// Label formats the S-parameter label for the pair (a, b). Names are used
// verbatim.
func Label(a, b string) string {
	return "S(" + a + "," + b + ")"
}
