// Package errors provides structured error handling for pubtopics.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors (fatal before processing starts)
//   - 2XX: Archive and file I/O errors
//   - 3XX: Per-record errors (reported, record skipped, run continues)
//   - 4XX: Validation errors
//   - 5XX: Capacity and internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and archive I/O errors.
	CategoryIO Category = "IO"
	// CategoryRecord indicates per-record errors during assembly or import.
	CategoryRecord Category = "RECORD"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryCapacity indicates resource-ceiling errors.
	CategoryCapacity Category = "CAPACITY"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates an unrecoverable error, the run must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates the operation failed but the run can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound      = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid       = "ERR_102_CONFIG_INVALID"
	ErrCodeStopwordsUnreadable = "ERR_103_STOPWORDS_UNREADABLE"
	ErrCodeOutputUnopenable    = "ERR_104_OUTPUT_UNOPENABLE"
	ErrCodeArchiveRootMissing  = "ERR_105_ARCHIVE_ROOT_MISSING"

	// I/O errors (200-299)
	ErrCodeFileUnreadable   = "ERR_201_FILE_UNREADABLE"
	ErrCodeCorpusUnreadable = "ERR_202_CORPUS_UNREADABLE"
	ErrCodeIndexUnreadable  = "ERR_203_INDEX_UNREADABLE"

	// Per-record errors (300-399)
	ErrCodeAbstractMissing  = "ERR_301_ABSTRACT_MISSING"
	ErrCodeAbstractEmpty    = "ERR_302_ABSTRACT_EMPTY"
	ErrCodeRecordIncomplete = "ERR_303_RECORD_INCOMPLETE"

	// Validation errors (400-499)
	ErrCodeBadIdentifier  = "ERR_401_BAD_IDENTIFIER"
	ErrCodeDuplicateDocID = "ERR_402_DUPLICATE_DOC_ID"
	ErrCodeBadEncoding    = "ERR_403_BAD_ENCODING"

	// Capacity and internal errors (500-599)
	ErrCodeCapacityExceeded = "ERR_501_CAPACITY_EXCEEDED"
	ErrCodeInternal         = "ERR_502_INTERNAL"
)

// categoryFromCode extracts the category from an error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryRecord
	case '4':
		return CategoryValidation
	case '5':
		return CategoryCapacity
	default:
		return CategoryInternal
	}
}

// severityFromCode derives the default severity for an error code.
// Config errors, unreadable files, and capacity overruns abort the run;
// per-record errors are reported and skipped.
func severityFromCode(code string) Severity {
	switch categoryFromCode(code) {
	case CategoryConfig, CategoryIO, CategoryCapacity:
		return SeverityFatal
	case CategoryRecord:
		return SeverityError
	case CategoryValidation:
		if code == ErrCodeDuplicateDocID {
			return SeverityFatal
		}
		return SeverityError
	default:
		return SeverityFatal
	}
}
