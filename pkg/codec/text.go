package codec

// Printable-ratio bars for the meaningful-text heuristic. LZString uses the
// stricter bar because its false positives are both likelier and costlier
// than Base64/URL's.
const (
	textRatioDefault = 0.90
	textRatioStrict  = 0.95
)

// printableRatio returns the fraction of characters in s that are printable
// ASCII (0x20-0x7E) or tab, newline, carriage return.
func printableRatio(s string) float64 {
	if s == "" {
		return 0
	}
	total, printable := 0, 0
	for _, r := range s {
		total++
		if (r >= 0x20 && r <= 0x7e) || r == '\t' || r == '\n' || r == '\r' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

// isMeaningfulText reports whether s reads as human text: more than ratio of
// its characters must be printable. Empty strings are never meaningful.
func isMeaningfulText(s string, ratio float64) bool {
	return s != "" && printableRatio(s) > ratio
}
