// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "testing"

func TestFuzzyMatchBasic(t *testing.T) {
	result := FuzzyMatch("storefront-web-1", []rune("web"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if len(result.Positions) != 3 {
		t.Fatalf("expected 3 match positions, got %v", result.Positions)
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	result := FuzzyMatch("payments-worker", []rune("pwk"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for non-contiguous match")
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := FuzzyMatch("storefront-web-1", []rune("xyz"), nil)
	if result.Score != 0 || len(result.Positions) != 0 {
		t.Errorf("expected no match, got %+v", result)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	if FuzzyMatch("NGINX:1.27", []rune("nginx"), nil).Score <= 0 {
		t.Error("lowercase pattern did not match uppercase text")
	}
	if FuzzyMatch("nginx:1.27", []rune("NGINX"), nil).Score <= 0 {
		t.Error("uppercase pattern did not match lowercase text")
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	if result := FuzzyMatch("anything", nil, nil); result.Score != 0 {
		t.Errorf("expected zero score for empty pattern, got %d", result.Score)
	}
}

func TestFuzzyMatchSharedSlab(t *testing.T) {
	slab := NewSlab()
	for _, text := range []string{"web", "db", "cache"} {
		FuzzyMatch(text, []rune("b"), slab)
	}
	if FuzzyMatch("cache", []rune("ch"), slab).Score <= 0 {
		t.Error("reused slab broke matching")
	}
}

func TestFuzzyMatchRanksContiguousHigher(t *testing.T) {
	contiguous := FuzzyMatch("web-frontend", []rune("web"), nil)
	scattered := FuzzyMatch("wide-env-bridge", []rune("web"), nil)
	if contiguous.Score <= scattered.Score {
		t.Errorf("contiguous score %d not above scattered %d", contiguous.Score, scattered.Score)
	}
}
