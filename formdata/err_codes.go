package formdata

const (
	CodeMissingBoundary = "MISSING_BOUNDARY"
	CodeInvalidDataURL  = "INVALID_DATA_URL"
)
