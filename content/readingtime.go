package content

import (
	"strings"

	"github.com/eringen/spacetraveling/richtext"
)

// WordsPerMinute is the reading speed used by EstimateReadingTime.
const WordsPerMinute = 200

// EstimateReadingTime returns the reading time of a post in minutes.
// Each section is rounded up on its own and the results are summed, so a
// post of many short sections reads longer than its total word count alone.
func EstimateReadingTime(sections []Section) int {
	minutes := 0
	for _, s := range sections {
		words := len(strings.Fields(richtext.AsText(s.Body)))
		minutes += (words + WordsPerMinute - 1) / WordsPerMinute
	}
	return minutes
}
