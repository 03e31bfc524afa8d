package favicon

const (
	CodeFaviconNotFound  = "FAVICON_NOT_FOUND"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeMissingFilePart  = "MISSING_FILE_PART"
	CodeNotAnImageUpload = "NOT_AN_IMAGE_UPLOAD"
	CodeCorruptEnumValue = "CORRUPT_ENUM_VALUE"
	CodeUnknownAssetType = "UNKNOWN_ASSET_TYPE"
)
