// Package segment locates natural break points in accumulated model output so
// that speech chunks end at sentence or clause boundaries instead of mid-phrase.
package segment

import (
	"strings"
	"unicode"
)

// NoBreak is returned by FindBreakPoint when no candidate boundary exists.
const NoBreak = -1

// Acceptance windows around the target word count. Sentence breaks tolerate a
// wider band than clause breaks.
const (
	sentenceWindowLow  = 0.7
	sentenceWindowHigh = 1.3
	pauseWindowLow     = 0.8
	pauseWindowHigh    = 1.2
)

const (
	sentencePunctuation = ".!?"
	pausePunctuation    = ",;:"
)

// FindBreakPoint returns the byte offset of the best chunk boundary in text,
// or NoBreak. The offset always falls directly after a punctuation rune that
// is followed by whitespace, so the chunk keeps its terminal punctuation and
// the remainder starts with the whitespace.
//
// Sentence punctuation is preferred: the first candidate whose word count
// lands within 0.7-1.3x the target wins, falling back to the last candidate
// at or before the target. Pause punctuation is tried the same way with a
// 0.8-1.2x window. Pure function of its inputs.
func FindBreakPoint(text string, targetWords int) int {
	if text == "" || targetWords <= 0 {
		return NoBreak
	}

	if off := scanBreaks(text, targetWords, sentencePunctuation, sentenceWindowLow, sentenceWindowHigh); off != NoBreak {
		return off
	}
	return scanBreaks(text, targetWords, pausePunctuation, pauseWindowLow, pauseWindowHigh)
}

func scanBreaks(text string, targetWords int, punctuation string, windowLow, windowHigh float64) int {
	low := int(windowLow * float64(targetWords))
	high := int(windowHigh * float64(targetWords))

	fallback := NoBreak

	var prev rune
	words := 0
	inWord := false

	for i, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				words++
				inWord = false
			}
			// Candidate boundary: punctuation immediately before whitespace.
			if strings.ContainsRune(punctuation, prev) {
				if words >= low && words <= high {
					return i
				}
				if words <= targetWords {
					fallback = i
				}
			}
		} else {
			inWord = true
		}
		prev = r
	}

	return fallback
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// WordSliceOffset returns the byte offset just past the n-th word of text,
// for slicing a chunk by word count alone. When text holds fewer than n
// words the full length is returned.
func WordSliceOffset(text string, n int) int {
	if n <= 0 {
		return 0
	}

	words := 0
	inWord := false

	for i, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				words++
				inWord = false
				if words == n {
					return i
				}
			}
		} else {
			inWord = true
		}
	}

	return len(text)
}
