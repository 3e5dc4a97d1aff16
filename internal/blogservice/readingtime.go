package blogservice

import "strings"

// wordsPerMinute is the reading speed used for the reading time estimate.
const wordsPerMinute = 200

// estimateReadingTime returns the reading time of a body in whole minutes, never less
// than one.
func estimateReadingTime(body string) int {
	words := len(strings.Fields(body))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return minutes
}
