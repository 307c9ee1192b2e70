package corpus

import (
	"strings"
	"time"
	"unicode/utf8"
)

// GeneralContext is the retrieval context used when the corpus has no match
const GeneralContext = "General Cyber Security"

// Document is an indexed upload
type Document struct {
	Text      string    `json:"-"`
	Filename  string    `json:"filename"`
	Pages     int       `json:"pages"`
	Chars     int       `json:"chars"`
	SizeBytes int64     `json:"size_bytes"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Retrieval is the outcome of a context lookup
type Retrieval struct {
	Context string
	Hit     bool
}

// Corpus holds at most one document. It is not safe for concurrent use;
// the owner serializes access.
type Corpus struct {
	doc *Document
}

// New creates an empty corpus
func New() *Corpus {
	return &Corpus{}
}

// Load replaces the current document
func (c *Corpus) Load(doc Document) {
	if doc.Chars == 0 {
		doc.Chars = utf8.RuneCountInString(doc.Text)
	}
	if doc.LoadedAt.IsZero() {
		doc.LoadedAt = time.Now()
	}
	c.doc = &doc
}

// Clear drops the current document
func (c *Corpus) Clear() {
	c.doc = nil
}

// Empty reports whether there is no usable text
func (c *Corpus) Empty() bool {
	return c.doc == nil || c.doc.Text == ""
}

// Chars returns the character count of the loaded text
func (c *Corpus) Chars() int {
	if c.doc == nil {
		return 0
	}
	return c.doc.Chars
}

// Document returns a copy of the loaded document
func (c *Corpus) Document() (Document, bool) {
	if c.doc == nil {
		return Document{}, false
	}
	return *c.doc, true
}

// Retrieve looks for the first case-sensitive occurrence of term and returns
// up to window characters starting at the match.
func (c *Corpus) Retrieve(term string, window int) Retrieval {
	if term == "" || c.Empty() {
		return Retrieval{Context: GeneralContext}
	}
	idx := strings.Index(c.doc.Text, term)
	if idx < 0 {
		return Retrieval{Context: GeneralContext}
	}
	return Retrieval{Context: Truncate(c.doc.Text[idx:], window), Hit: true}
}

// Truncate returns the first n characters of s
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
