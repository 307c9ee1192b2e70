// Package compliance holds the illustrative, regex-based checks used by the
// compliance gate. It is not a real PII system.
package compliance
