package services

import (
	"testing"

	"resortbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInput(t *testing.T) {
	assert.Equal(t, "kubo sa dagat", normalizeInput("  Kubo sa Dágat "))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.Equal(t, 1.0, calculateSimilarity("tent", "tent"))
	assert.InDelta(t, 0.833, calculateSimilarity("famly", "family"), 0.01)
	assert.Less(t, calculateSimilarity("tent", "cottage"), nameSimilarityThreshold)
}

func TestSearchByNameSuggestsClosest(t *testing.T) {
	accs := []models.Accommodation{
		{ID: 1, Name: "Nipa Hut"},
		{ID: 2, Name: "Family Room"},
	}

	matches, suggestion := searchByName(accs, "hutt nipaa")
	assert.Empty(t, matches)
	require.NotNil(t, suggestion)
	assert.Equal(t, uint(1), suggestion.ID)

	matches, suggestion = searchByName(accs, "")
	assert.Len(t, matches, 2)
	assert.Nil(t, suggestion)
}
