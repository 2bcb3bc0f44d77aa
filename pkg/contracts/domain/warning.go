package domain

// WarningCode classifies a non-fatal degradation encountered while a table
// was being transformed. Warnings accumulate on the result; they never halt
// processing.
type WarningCode string

const (
	// WarnConversionDegraded is emitted when the conversion rate column is
	// absent or some price/total/rate cells could not be coerced to numbers.
	WarnConversionDegraded WarningCode = "CONVERSION_DEGRADED"

	// WarnDateSortSkipped is emitted when not every row's date parsed, so
	// output ordering fell back to concatenation order.
	WarnDateSortSkipped WarningCode = "DATE_SORT_SKIPPED"

	// NoteNoMirroringNeeded is informational: every input row was already
	// INR-quoted, so the output equals the input.
	NoteNoMirroringNeeded WarningCode = "NO_MIRRORING_NEEDED"
)

// Warning is a structured, non-fatal message attached to a mirroring result.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// NewWarning builds a Warning.
func NewWarning(code WarningCode, message string) Warning {
	return Warning{Code: code, Message: message}
}
