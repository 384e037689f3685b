package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCode categorizes store errors.
type ErrCode string

const (
	// ErrCodeUnknownCollection indicates an operation referenced a
	// collection that does not exist.
	ErrCodeUnknownCollection ErrCode = "UNKNOWN_COLLECTION"

	// ErrCodeDuplicateCollection indicates AddCollection on a name that
	// already exists.
	ErrCodeDuplicateCollection ErrCode = "DUPLICATE_COLLECTION"

	// ErrCodeDuplicateDocument indicates AddDoc on an id that already
	// exists in the collection.
	ErrCodeDuplicateDocument ErrCode = "DUPLICATE_DOCUMENT"

	// ErrCodeDocumentNotFound indicates UpdateDoc/ReplaceDoc on a
	// missing document id.
	ErrCodeDocumentNotFound ErrCode = "DOCUMENT_NOT_FOUND"

	// ErrCodeUniqueViolation indicates a write would leave two documents
	// equal on a unique index's field set.
	ErrCodeUniqueViolation ErrCode = "UNIQUE_CONSTRAINT_VIOLATION"

	// ErrCodeInvalidIndex indicates a malformed index definition, such
	// as a multi-field index with fewer than two fields.
	ErrCodeInvalidIndex ErrCode = "INVALID_INDEX_DEFINITION"

	// ErrCodeInvalidProjection indicates a merge-alias select field
	// resolved to a non-object value.
	ErrCodeInvalidProjection ErrCode = "INVALID_PROJECTION"
)

// Error represents a failed store operation.
//
// Error carries structured fields for diagnostics: which collection and
// document were involved, and for uniqueness violations the offending
// index fields. All errors are fatal to the single operation that
// raised them; callers decide whether to retry.
type Error struct {
	// Code identifies the error category.
	Code ErrCode

	// Message is a human-readable description.
	Message string

	// Collection names the affected collection, when known.
	Collection string

	// DocID names the affected document, when known.
	DocID string

	// Fields lists the index field paths involved in a uniqueness
	// violation.
	Fields []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Collection != "" {
		fmt.Fprintf(&b, " (collection=%s", e.Collection)
		if e.DocID != "" {
			fmt.Fprintf(&b, ", doc=%s", e.DocID)
		}
		b.WriteString(")")
	}
	return b.String()
}

// IsCode reports whether err is a *Error with the given code.
func IsCode(err error, code ErrCode) bool {
	var storeErr *Error
	return errors.As(err, &storeErr) && storeErr.Code == code
}

// NewUnknownCollection builds the error for a missing collection.
func NewUnknownCollection(collection string) *Error {
	return &Error{
		Code:       ErrCodeUnknownCollection,
		Message:    fmt.Sprintf("collection %q does not exist", collection),
		Collection: collection,
	}
}

// NewDuplicateCollection builds the error for AddCollection on an
// existing name.
func NewDuplicateCollection(collection string) *Error {
	return &Error{
		Code:       ErrCodeDuplicateCollection,
		Message:    fmt.Sprintf("collection %q already exists", collection),
		Collection: collection,
	}
}

// NewDuplicateDocument builds the error for AddDoc on an existing id.
func NewDuplicateDocument(collection, docID string) *Error {
	return &Error{
		Code:       ErrCodeDuplicateDocument,
		Message:    fmt.Sprintf("document %q already exists in collection %q", docID, collection),
		Collection: collection,
		DocID:      docID,
	}
}

// NewDocumentNotFound builds the error for an update/replace of a
// missing document.
func NewDocumentNotFound(collection, docID string) *Error {
	return &Error{
		Code:       ErrCodeDocumentNotFound,
		Message:    fmt.Sprintf("document %q not found in collection %q", docID, collection),
		Collection: collection,
		DocID:      docID,
	}
}

// NewUniqueViolation builds the error for a write that would duplicate
// a unique index's field set. The offending fields are named in the
// message for diagnosability.
func NewUniqueViolation(collection, docID string, fields []string) *Error {
	return &Error{
		Code: ErrCodeUniqueViolation,
		Message: fmt.Sprintf("unique constraint violated on field(s) %s",
			strings.Join(fields, ", ")),
		Collection: collection,
		DocID:      docID,
		Fields:     fields,
	}
}

// NewInvalidIndex builds the error for a malformed index definition.
func NewInvalidIndex(message string) *Error {
	return &Error{
		Code:    ErrCodeInvalidIndex,
		Message: message,
	}
}

// NewInvalidProjection builds the error for a merge-alias field that
// resolved to a non-object value.
func NewInvalidProjection(collection, docID, message string) *Error {
	return &Error{
		Code:       ErrCodeInvalidProjection,
		Message:    message,
		Collection: collection,
		DocID:      docID,
	}
}
