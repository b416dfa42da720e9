package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDeadline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labeled month date",
			text: "Job Application Deadline: March 15, 2025",
			want: "March 15, 2025",
		},
		{
			name: "labeled numeric date",
			text: "Deadline: 2025-03-15",
			want: "2025-03-15",
		},
		{
			name: "due label",
			text: "Assignment due: April 1, 2025",
			want: "April 1, 2025",
		},
		{
			name: "due numeric",
			text: "Invoice due 04/30/2025",
			want: "04/30/2025",
		},
		{
			name: "by label",
			text: "Submit by May 31, 2025",
			want: "May 31, 2025",
		},
		{
			name: "by numeric beats earlier bare date",
			text: "report 03/01/2024, submit by 04/30/2025",
			want: "04/30/2025",
		},
		{
			name: "closes numeric",
			text: "Submissions close 12/01/2025",
			want: "12/01/2025",
		},
		{
			name: "expires label",
			text: "Offer expires: June 1, 2025",
			want: "June 1, 2025",
		},
		{
			name: "closes label",
			text: "Applications close: July 4, 2025",
			want: "July 4, 2025",
		},
		{
			name: "bare month date",
			text: "GopherCon September 10, 2025 schedule",
			want: "September 10, 2025",
		},
		{
			name: "ordinal day",
			text: "Deadline: March 3rd, 2025",
			want: "March 3rd, 2025",
		},
		{
			name: "abbreviated month",
			text: "Due: Mar. 15, 2025",
			want: "Mar. 15, 2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDeadline(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDeadline_NoMatch(t *testing.T) {
	for _, text := range []string{
		"",
		"Hacker News",
		"no dates here at all",
		"version 1.2 released",
	} {
		got, ok := ExtractDeadline(text)
		assert.False(t, ok, "text %q", text)
		assert.Empty(t, got)
	}
}

// An extracted deadline is stored verbatim and may be run through the
// matchers again later; it must re-extract to itself.
func TestExtractDeadline_Idempotent(t *testing.T) {
	inputs := []string{
		"Job Application Deadline: March 15, 2025",
		"Deadline: 2025-03-15",
		"Submit by May 31, 2025",
		"Invoice due 04/30/2025",
	}

	for _, text := range inputs {
		first, ok := ExtractDeadline(text)
		assert.True(t, ok)

		second, ok := ExtractDeadline(first)
		assert.True(t, ok, "re-extracting %q", first)
		assert.Equal(t, first, second)
	}
}
