package sparam

// AllPairs returns a label for every (names[i], names[j]) with i <= j,
// ordered by i and then by j. The result has n(n+1)/2 entries.
func AllPairs(names []string) []string {
	n := len(names)
	out := make([]string, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out = append(out, Label(names[i], names[j]))
		}
	}
	return out
}

// ReturnLoss returns "S(e,e)" for every name containing prefix, ignoring
// case. An empty prefix selects every name.
func ReturnLoss(names []string, prefix string) []string {
	selected := FilterFold(names, prefix)
	out := make([]string, 0, len(selected))
	for _, e := range selected {
		out = append(out, Label(e, e))
	}
	return out
}

// InsertionLoss pairs drivers and receivers by position.
// Lists of different length fail with a *LengthMismatchError and no labels.
func InsertionLoss(drivers, receivers []string) ([]string, error) {
	if len(drivers) != len(receivers) {
		return nil, &LengthMismatchError{Drivers: len(drivers), Receivers: len(receivers)}
	}
	out := make([]string, 0, len(drivers))
	for i := range drivers {
		out = append(out, Label(drivers[i], receivers[i]))
	}
	return out, nil
}

// NearEndCrosstalk returns a label for every (drivers[i], drivers[j]) with
// i < j. The result has n(n-1)/2 entries.
func NearEndCrosstalk(drivers []string) []string {
	n := len(drivers)
	size := 0
	if n > 1 {
		size = n * (n - 1) / 2
	}
	out := make([]string, 0, size)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, Label(drivers[i], drivers[j]))
		}
	}
	return out
}

// FarEndCrosstalk returns a label for every driver/receiver combination,
// drivers outer and receivers inner. When skipSameIndex is set, the pair at
// equal positions in both lists is an insertion loss and is left out.
func FarEndCrosstalk(drivers, receivers []string, skipSameIndex bool) []string {
	out := make([]string, 0, len(drivers)*len(receivers))
	for i, t := range drivers {
		for j, r := range receivers {
			if skipSameIndex && i == j {
				continue
			}
			out = append(out, Label(t, r))
		}
	}
	return out
}
