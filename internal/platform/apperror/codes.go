package apperror

// ErrorCode is the general, system-level category of an error.
type ErrorCode string

const (
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
)

// BusinessCode is the specific business reason behind an error.
type BusinessCode string

const (
	BusinessCodeGeneral                BusinessCode = "GENERAL"
	BusinessCodePostNotFound           BusinessCode = "POST_NOT_FOUND"
	BusinessCodeInvalidPostData        BusinessCode = "INVALID_POST_DATA"
	BusinessCodeInvalidCredentialsData BusinessCode = "INVALID_CREDENTIALS_DATA"
	BusinessCodeEmailAlreadyRegistered BusinessCode = "EMAIL_ALREADY_REGISTERED"
	BusinessCodeEmailNotFound          BusinessCode = "EMAIL_NOT_FOUND"
	BusinessCodeIncorrectPassword      BusinessCode = "INCORRECT_PASSWORD"
)
