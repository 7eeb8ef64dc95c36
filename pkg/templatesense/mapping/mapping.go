// Package mapping fuzzy-matches extracted labels to canonical field keys.
package mapping

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/ukaji3/templatesense-go/internal/logger"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/detect"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/dictionary"
)

// DefaultThreshold is the minimum score (0-100) for an automatic match.
const DefaultThreshold = 80.0

// MatchResult is the best dictionary match for one label.
type MatchResult struct {
	// OriginalText is the label as given.
	OriginalText string `json:"original_text"`
	// CanonicalKey is the matched dictionary key; empty when unmatched.
	CanonicalKey string `json:"canonical_key,omitempty"`
	// MatchScore is the best score found, 0-100, even when below threshold.
	MatchScore float64 `json:"match_score"`
	// MatchedVariant is the variant that produced the score; empty when unmatched.
	MatchedVariant string `json:"matched_variant,omitempty"`
	// Matched reports whether MatchScore reached the threshold.
	Matched bool `json:"matched"`
}

// Normalize folds width and case, drops surrounding punctuation and
// collapses whitespace so "ＩＮＶＯＩＣＥ  No:" compares equal to "invoice no".
func Normalize(s string) string {
	s = cases.Fold().String(norm.NFKC.String(s))
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return strings.Join(strings.Fields(s), " ")
}

func tokenSort(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Score returns the similarity of two labels on a 0-100 scale: the higher of
// the plain and the token-sorted Levenshtein similarity of their normalized forms.
func Score(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 100
	}
	s := math.Max(
		levenshtein.Similarity(na, nb, nil),
		levenshtein.Similarity(tokenSort(na), tokenSort(nb), nil),
	)
	return math.Round(s*10000) / 100
}

func validateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 100 {
		return &detect.ValidationError{Param: "threshold", Value: threshold, Reason: "in range 0-100"}
	}
	return nil
}

// MatchField returns the best match for label. Ties go to the
// alphabetically first key, then to the earlier variant.
func MatchField(label string, dict dictionary.Dictionary, threshold float64) (MatchResult, error) {
	if err := validateThreshold(threshold); err != nil {
		return MatchResult{}, err
	}
	return matchField(label, dict, dict.Keys(), threshold), nil
}

func matchField(label string, dict dictionary.Dictionary, keys []string, threshold float64) MatchResult {
	result := MatchResult{OriginalText: label}
	var bestKey, bestVariant string
	for _, key := range keys {
		for _, variant := range dict[key] {
			if s := Score(label, variant); s > result.MatchScore {
				result.MatchScore = s
				bestKey, bestVariant = key, variant
			}
		}
	}
	if bestKey != "" && result.MatchScore >= threshold {
		result.CanonicalKey = bestKey
		result.MatchedVariant = bestVariant
		result.Matched = true
	}
	return result
}

// MatchFields matches every label against dict, preserving label order.
func MatchFields(labels []string, dict dictionary.Dictionary, threshold float64) ([]MatchResult, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	keys := dict.Keys()
	results := make([]MatchResult, len(labels))
	matched := 0
	for i, label := range labels {
		results[i] = matchField(label, dict, keys, threshold)
		if results[i].Matched {
			matched++
		}
	}

	logger.For("mapping").Info("matched fields",
		"labels", len(labels),
		"matched", matched,
		"threshold", threshold,
	)
	return results, nil
}
