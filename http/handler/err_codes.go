package handler

const (
	codeMissingToken   = "MISSING_TOKEN"
	codeInvalidSession = "INVALID_SESSION"
)
