// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one text against a pattern.
// A zero Score means no match.
type FuzzyResult struct {
	Score int

	// Positions are rune offsets of the matched characters in the
	// text, in no particular order.
	Positions []int
}

var initScoring sync.Once

// FuzzyMatch scores text against pattern with fzf's V2 algorithm,
// case-insensitively. slab may be nil; passing a reused slab avoids
// allocation when matching many texts against the same pattern.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	initScoring.Do(func() { algo.Init("default") })

	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = *positions
	}
	return matched
}

// NewSlab returns a scratch buffer sized for matching short fields.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}
