package classify

import "regexp"

// deadlineMatcher is one entry in the ordered extraction list. The
// first matcher that hits decides the result; there is no scoring
// across matchers.
type deadlineMatcher struct {
	name string
	re   *regexp.Regexp
}

// monthDate matches dates like "March 15, 2025" or "Mar 15 2025".
const monthDate = `[A-Za-z]{3,9}\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}`

// numericDate matches dates like "15/03/2025", "3-15-25" or "2025-03-15".
const numericDate = `\d{1,4}[/-]\d{1,2}[/-]\d{1,4}`

// deadlineMatchers is evaluated in order. Labeled patterns come first
// so "Deadline: March 15, 2025" resolves through its label rather than
// the bare-date catch-alls.
var deadlineMatchers = []deadlineMatcher{
	{"deadline-month", regexp.MustCompile(`(?i)deadline[:\s-]+\s*(` + monthDate + `)`)},
	{"deadline-numeric", regexp.MustCompile(`(?i)deadline[:\s-]+\s*(` + numericDate + `)`)},
	{"due-month", regexp.MustCompile(`(?i)due[:\s-]+\s*(` + monthDate + `)`)},
	{"due-numeric", regexp.MustCompile(`(?i)due[:\s-]+\s*(` + numericDate + `)`)},
	{"by-month", regexp.MustCompile(`(?i)\bby[:\s]+\s*(` + monthDate + `)`)},
	{"by-numeric", regexp.MustCompile(`(?i)\bby[:\s]+\s*(` + numericDate + `)`)},
	{"expires-month", regexp.MustCompile(`(?i)expires?[:\s-]+\s*(` + monthDate + `)`)},
	{"expires-numeric", regexp.MustCompile(`(?i)expires?[:\s-]+\s*(` + numericDate + `)`)},
	{"closes-month", regexp.MustCompile(`(?i)closes?[:\s-]+\s*(` + monthDate + `)`)},
	{"closes-numeric", regexp.MustCompile(`(?i)closes?[:\s-]+\s*(` + numericDate + `)`)},
	{"bare-month", regexp.MustCompile(monthDate)},
	{"bare-numeric", regexp.MustCompile(numericDate)},
}

// ExtractDeadline applies the ordered matcher list to text and returns
// the first hit. The result is the pattern's first capture group, or
// the whole match for the bare catch-alls. The extracted text is kept
// verbatim; no date parsing or normalization happens here, so a stored
// deadline re-extracts to itself.
func ExtractDeadline(text string) (string, bool) {
	for _, m := range deadlineMatchers {
		loc := m.re.FindStringSubmatch(text)
		if loc == nil {
			continue
		}
		if len(loc) > 1 && loc[1] != "" {
			return loc[1], true
		}
		return loc[0], true
	}
	return "", false
}
