package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownCategory(t *testing.T) {
	for _, c := range DisplayOrder {
		assert.True(t, KnownCategory(c), "category %q", c)
	}

	assert.False(t, KnownCategory("Bogus"))
	assert.False(t, KnownCategory(""))
}

func TestDisplayOrder_ApplicationsFirst(t *testing.T) {
	assert.Equal(t, CategoryApplications, DisplayOrder[0])
	assert.Equal(t, CategoryUncategorized, DisplayOrder[len(DisplayOrder)-1])
}
