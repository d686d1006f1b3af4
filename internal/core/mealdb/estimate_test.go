package mealdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "stir"
	}
	return strings.Join(parts, " ")
}

func TestEstimateCookingTime_Absent(t *testing.T) {
	assert.Nil(t, EstimateCookingTime(nil))

	empty := ""
	assert.Nil(t, EstimateCookingTime(&empty))
}

func TestEstimateCookingTime_MinutesPhrase(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		want         int
	}{
		{"minutes", "Simmer for 45 minutes until thick.", 45},
		{"minute", "Rest for 1 minute.", 1},
		{"mins", "Bake 25 mins at 180C.", 25},
		{"min", "Fry for 5 min per side.", 5},
		{"phrase anywhere in long text", words(500) + " then cook for 45 minutes", 45},
		{"minutes win over hours", "Cook 2 hours, stirring every 10 minutes.", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCookingTime(&tt.instructions)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestEstimateCookingTime_HoursPhrase(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		want         int
	}{
		{"hours", "Slow roast for 2 hours.", 120},
		{"hour", "Prove the dough for 1 hour.", 60},
		{"hrs", "Marinate 3 hrs.", 180},
		{"hr", "Chill for 1 hr before serving.", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCookingTime(&tt.instructions)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestEstimateCookingTime_WordCountBands(t *testing.T) {
	tests := []struct {
		wordCount int
		want      int
	}{
		{99, 15},
		{100, 30},
		{199, 30},
		{200, 45},
		{399, 45},
		{400, 60},
	}

	for _, tt := range tests {
		text := words(tt.wordCount)
		got := EstimateCookingTime(&text)
		require.NotNil(t, got)
		assert.Equalf(t, tt.want, *got, "%d words", tt.wordCount)
	}
}
