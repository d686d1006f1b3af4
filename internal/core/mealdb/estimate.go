package mealdb

import (
	"regexp"
	"strconv"
	"strings"
)

// TheMealDB does not carry preparation times, so we estimate one from
// the instructions text.
var (
	minutesPattern = regexp.MustCompile(`(?i)(\d+)\s*min(?:ute)?s?`)
	hoursPattern   = regexp.MustCompile(`(?i)(\d+)\s*h(?:ou)?rs?`)
)

// EstimateCookingTime derives approximate preparation minutes from
// free-text instructions. A minutes phrase anywhere in the text wins
// over an hours phrase; with neither present the estimate falls back to
// word-count bands. Returns nil when instructions are absent.
func EstimateCookingTime(instructions *string) *int {
	if instructions == nil || *instructions == "" {
		return nil
	}

	if m := minutesPattern.FindStringSubmatch(*instructions); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return &n
		}
	}

	if m := hoursPattern.FindStringSubmatch(*instructions); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			minutes := n * 60
			return &minutes
		}
	}

	// Longer instructions usually mean a longer cook.
	wordCount := len(strings.Fields(*instructions))
	var estimate int
	switch {
	case wordCount < 100:
		estimate = 15
	case wordCount < 200:
		estimate = 30
	case wordCount < 400:
		estimate = 45
	default:
		estimate = 60
	}
	return &estimate
}
