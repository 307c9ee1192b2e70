// Package corpus holds the uploaded knowledge document used for
// retrieval-augmented outreach, along with upload validation and PDF
// text extraction.
package corpus
