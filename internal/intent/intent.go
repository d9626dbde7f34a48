// Package intent classifies support messages into return/cancel requests.
// Precedence between overlapping keyword sets is encoded as an ordered rule
// list, not nested branching; the first matching rule wins.
package intent

import (
	"regexp"
	"strings"
)

// Kind is a detected request type.
type Kind string

const (
	None   Kind = ""
	Return Kind = "return"
	Cancel Kind = "cancel"
)

var trackingPattern = regexp.MustCompile(`\b(TR\d{9})\b`)

// ExtractTrackingNumber finds a TR-prefixed nine-digit tracking number in the
// message, or returns the empty string.
func ExtractTrackingNumber(message string) string {
	return trackingPattern.FindString(message)
}

var (
	returnKeywords    = []string{"iade", "döndür", "gönder geri", "geri gönder", "iptal et", "vazgeç"}
	cancelKeywords    = []string{"iptal", "iptal et", "vazgeç", "dur", "durdur"}
	cancelOnlyMarkers = []string{"iptal et", "vazgeç"}
	returnOnlyMarkers = []string{"iade", "döndür"}
	deliveredMarkers  = []string{"teslim", "aldım"}
)

// rule is one precedence step: a pure predicate over the lowercased message.
type rule struct {
	name  string
	kind  Kind
	match func(text string) bool
}

// rules lists the precedence order. Return phrasing wins unless the message
// only carries cancel wording; a mention of delivery resolves the ambiguous
// overlap in favor of a return.
var rules = []rule{
	{
		name: "return without cancel wording",
		kind: Return,
		match: func(text string) bool {
			return containsAny(text, returnKeywords) && !containsAny(text, cancelOnlyMarkers)
		},
	},
	{
		name: "return after delivery",
		kind: Return,
		match: func(text string) bool {
			return containsAny(text, returnKeywords) && containsAny(text, deliveredMarkers)
		},
	},
	{
		name: "cancel without return wording",
		kind: Cancel,
		match: func(text string) bool {
			return containsAny(text, cancelKeywords) && !containsAny(text, returnOnlyMarkers)
		},
	},
}

// Detect classifies the message and extracts its tracking number. Without a
// tracking number no intent is reported.
func Detect(message string) (Kind, string) {
	trackingNumber := ExtractTrackingNumber(message)
	if trackingNumber == "" {
		return None, ""
	}
	text := strings.ToLower(message)
	for _, r := range rules {
		if r.match(text) {
			return r.kind, trackingNumber
		}
	}
	return None, ""
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
