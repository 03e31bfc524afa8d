package validation

// Error codes for content validation failures.
const (
	// CodeFileTooLarge is returned when a buffer exceeds the maximum allowed size.
	CodeFileTooLarge = "FILE_TOO_LARGE"

	// CodeNotAnImage is returned when a buffer matches no supported image signature.
	CodeNotAnImage = "NOT_AN_IMAGE"

	// CodeInvalidDomain is returned when a domain name fails syntax checks.
	CodeInvalidDomain = "INVALID_DOMAIN"

	// CodeMetadataTooLong is returned when a metadata string exceeds the length limit.
	CodeMetadataTooLong = "METADATA_TOO_LONG"

	// CodeValidationFailed is returned when a request schema fails validation.
	CodeValidationFailed = "VALIDATION_FAILED"
)
