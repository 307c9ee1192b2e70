package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPII(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "no PII",
			text:     `{"id":"L-101","company":"Vizag Pharma","employees":1200,"budget":"150"}`,
			expected: false,
		},
		{
			name:     "contains email",
			text:     "Contact me at ravi.k@vizagpharma.in for more info",
			expected: true,
		},
		{
			name:     "contains phone",
			text:     "Call 9876543210 today",
			expected: true,
		},
		{
			name:     "contains national id",
			text:     "Aadhaar 123412341234",
			expected: true,
		},
		{
			name:     "contains card",
			text:     "Use card 4532015112830366",
			expected: true,
		},
		{
			name:     "eleven digits is not a phone",
			text:     "ref 12345678901",
			expected: false,
		},
		{
			name:     "timestamp string",
			text:     `"email_generated_at":"2025-03-01T10:20:30.123456789Z"`,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsPII(tt.text))
		})
	}
}

func TestDetectAllPII(t *testing.T) {
	detections := DetectAllPII("mail a@b.io or call 9876543210")

	if assert.Len(t, detections, 2) {
		assert.Equal(t, PIITypeEmail, detections[0].Type)
		assert.Equal(t, "a@b.io", detections[0].Value)
		assert.Equal(t, PIITypePhone, detections[1].Type)
		assert.Equal(t, "9876543210", detections[1].Value)
	}

	assert.Empty(t, DetectAllPII("Hello world"))
}
