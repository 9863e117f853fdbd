package services

import "strings"

// CountWords derives the stored word count from plaintext story content:
// the number of maximal whitespace-delimited tokens, 0 for blank input.
// It always runs on plaintext at write time, never on ciphertext.
func CountWords(story string) int {
	return len(strings.Fields(story))
}
