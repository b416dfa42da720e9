package classify

import "strings"

// GeneralFormType is assigned when a page looks like a form but matches
// no specific form-type rule.
const GeneralFormType = "general"

// FormMatch is the result of form detection for a single tab.
type FormMatch struct {
	IsForm   bool
	FormType string

	// Deadline is extracted from the original title, not the
	// lower-cased search string, so its casing survives.
	Deadline string
}

// DetectForm tests a tab's title and URL against the form-type tables.
// Form types are checked in table order and the first keyword hit wins;
// matching is plain substring containment, no fuzziness or scoring.
func (c *Classifier) DetectForm(title, url string) FormMatch {
	search := strings.ToLower(title) + " " + strings.ToLower(url)

	for _, rule := range c.rules.Forms {
		for _, kw := range rule.Keywords {
			if strings.Contains(search, kw) {
				return c.formMatch(rule.Type, title)
			}
		}
	}

	// No specific type; fall back to the generic indicator list.
	for _, kw := range c.rules.FormIndicators {
		if strings.Contains(search, kw) {
			return c.formMatch(GeneralFormType, title)
		}
	}

	return FormMatch{}
}

func (c *Classifier) formMatch(formType, title string) FormMatch {
	m := FormMatch{IsForm: true, FormType: formType}
	if deadline, ok := ExtractDeadline(title); ok {
		m.Deadline = deadline
	}
	return m
}
