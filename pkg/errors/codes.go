package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal      ErrorCode = "COMMON_001"
	ErrCodeNotFound      ErrorCode = "COMMON_002"
	ErrCodeValidation    ErrorCode = "COMMON_003"
	ErrCodeSerialization ErrorCode = "COMMON_004"
	ErrCodeDatabaseError ErrorCode = "COMMON_005"
	ErrCodeCacheError    ErrorCode = "COMMON_006"
	ErrCodeUnavailable   ErrorCode = "COMMON_007"
)

// Completion engine error codes.
const (
	// ErrCodeSourceNotFound marks a mandatory input source that could not be
	// opened or read. The run aborts on this code.
	ErrCodeSourceNotFound ErrorCode = "CPL_001"

	// ErrCodeSourceEmpty marks a pathway source with zero data rows.
	ErrCodeSourceEmpty ErrorCode = "CPL_002"

	// ErrCodeInvalidPathwayID marks a master pathway identifier that is not
	// an integer. Raised before any expansion begins.
	ErrCodeInvalidPathwayID ErrorCode = "CPL_003"

	// ErrCodeSourceMalformed marks a row that does not match the expected
	// column layout.
	ErrCodeSourceMalformed ErrorCode = "CPL_004"

	// ErrCodeRebuildFailed marks a rebuild-service query failure for a rule.
	ErrCodeRebuildFailed ErrorCode = "CPL_005"

	// ErrCodeScoreLookupFailed marks a rule-score table lookup failure.
	ErrCodeScoreLookupFailed ErrorCode = "CPL_006"

	// ErrCodePublishFailed marks a result-publisher delivery failure.
	ErrCodePublishFailed ErrorCode = "CPL_007"
)
