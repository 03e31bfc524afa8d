package admin

const (
	CodeInvalidPassword        = "INVALID_PASSWORD"
	CodePasswordFileUnreadable = "PASSWORD_FILE_UNREADABLE"
)
