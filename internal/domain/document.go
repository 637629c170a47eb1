package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Title length bounds, counted in characters.
const (
	MinDocumentTitleLength = 3
	MaxDocumentTitleLength = 200
)

// Validation errors for Document.
var (
	ErrInvalidDocumentTitle = fmt.Errorf(
		"%w: document title must be between %d and %d characters",
		ErrValidation, MinDocumentTitleLength, MaxDocumentTitleLength,
	)
	ErrEmptyDocumentContent = fmt.Errorf("%w: document %w", ErrValidation, ErrEmptyContent)
)

// Document is a stored text that questions are asked against.
// It is immutable once created.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDocument creates a Document that has not been persisted yet.
// The ID is assigned by the store on creation.
func NewDocument(title, content string) (*Document, error) {
	doc := &Document{
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate checks the document's title and content.
func (d *Document) Validate() error {
	n := utf8.RuneCountInString(d.Title)
	if n < MinDocumentTitleLength || n > MaxDocumentTitleLength {
		return ErrInvalidDocumentTitle
	}

	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyDocumentContent
	}

	return nil
}
