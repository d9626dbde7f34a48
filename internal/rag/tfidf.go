package rag

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrNotFitted is returned when encoding is attempted before the vector
// space has been fitted or loaded.
var ErrNotFitted = errors.New("vectorizer not fitted")

// DefaultMaxFeatures bounds the vocabulary to the most frequent terms.
const DefaultMaxFeatures = 4096

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Vectorizer is a TF-IDF vector space with a bounded vocabulary.
// Fields are exported for gob serialization of the index artifact.
type Vectorizer struct {
	MaxFeatures int
	Vocabulary  map[string]int
	IDF         []float64
}

// NewVectorizer creates an unfitted vectorizer. maxFeatures <= 0 selects the
// default vocabulary bound.
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// Fitted reports whether the vocabulary has been built.
func (v *Vectorizer) Fitted() bool { return len(v.Vocabulary) > 0 }

// Fit builds the vocabulary and IDF values from the corpus. When the corpus
// yields more distinct terms than MaxFeatures, the most frequent terms win,
// with lexicographic order breaking ties so re-fitting is deterministic.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF fit")
	}

	df := make(map[string]int)
	counts := make(map[string]int)
	for _, text := range corpus {
		tokens := tokenize(text)
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			counts[tok]++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(counts) == 0 {
		return errors.New("no tokens found in corpus")
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) > v.MaxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return counts[terms[i]] > counts[terms[j]]
		})
		terms = terms[:v.MaxFeatures]
		sort.Strings(terms)
	}

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		vocabulary[term] = i
		// Smoothed IDF.
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	v.Vocabulary = vocabulary
	v.IDF = idf
	return nil
}

// Dimension returns the size of the fitted vector space.
func (v *Vectorizer) Dimension() int { return len(v.IDF) }

// Transform projects text into the fitted space as an L2-normalized TF-IDF
// vector. Out-of-vocabulary terms contribute zero weight.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if !v.Fitted() {
		return nil, ErrNotFitted
	}
	vec := make([]float64, len(v.IDF))
	tf := make(map[int]int)
	total := 0
	for _, tok := range tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.IDF[idx]
	}

	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
