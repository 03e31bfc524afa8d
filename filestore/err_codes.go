package filestore

// Error codes for filestore operations.
const (
	// CodeObjectNotFound is returned when no object exists under the requested key.
	CodeObjectNotFound = "OBJECT_NOT_FOUND"

	// CodeStorageError is returned for any other object-store failure.
	CodeStorageError = "STORAGE_ERROR"
)
