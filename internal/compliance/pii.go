package compliance

import (
	"regexp"
)

// PIIType represents different types of PII that can be detected
type PIIType string

const (
	PIITypeEmail      PIIType = "email"
	PIITypePhone      PIIType = "phone"
	PIITypeNationalID PIIType = "national_id"
	PIITypeCard       PIIType = "card"
)

// PIIDetection represents a detected PII instance
type PIIDetection struct {
	Type     PIIType
	Value    string
	StartPos int
	EndPos   int
}

type piiPattern struct {
	kind PIIType
	re   *regexp.Regexp
}

// Patterns are illustrative. Digit patterns are anchored on word boundaries so
// longer numbers do not match the shorter ones.
var piiPatterns = []piiPattern{
	{PIITypeEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Z|a-z]{2,}\b`)},
	{PIITypePhone, regexp.MustCompile(`\b\d{10}\b`)},
	{PIITypeNationalID, regexp.MustCompile(`\b\d{12}\b`)},
	{PIITypeCard, regexp.MustCompile(`\b[0-9]{16}\b`)},
}

// ContainsPII returns true if the text matches any of the PII patterns.
func ContainsPII(text string) bool {
	for _, p := range piiPatterns {
		if p.re.MatchString(text) {
			return true
		}
	}
	return false
}

// DetectAllPII returns all PII detections in the text
func DetectAllPII(text string) []PIIDetection {
	var detections []PIIDetection
	for _, p := range piiPatterns {
		for _, match := range p.re.FindAllStringIndex(text, -1) {
			detections = append(detections, PIIDetection{
				Type:     p.kind,
				Value:    text[match[0]:match[1]],
				StartPos: match[0],
				EndPos:   match[1],
			})
		}
	}
	return detections
}
