package gate

import "strconv"

func toSet(files []string) map[string]bool {
	if len(files) == 0 {
		return nil
	}
	s := make(map[string]bool, len(files))
	for _, f := range files {
		s[f] = true
	}
	return s
}

func itoa(n int) string { return strconv.Itoa(n) }

// scorePercent scales a [0,1] compliance ratio to spec §4.7's fixed
// "[0,100]" GateResult/QualityGateResult score shape.
func scorePercent(ratio float64) float64 { return ratio * 100 }
