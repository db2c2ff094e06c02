package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/philly/quillpost/internal/platform/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		code         apperror.ErrorCode
		businessCode apperror.BusinessCode
		message      string
		httpStatus   int
	}{
		{
			name:         "creates not found error",
			code:         apperror.CodeNotFound,
			businessCode: apperror.BusinessCodePostNotFound,
			message:      "Post not found",
			httpStatus:   http.StatusNotFound,
		},
		{
			name:         "creates conflict error",
			code:         apperror.CodeConflict,
			businessCode: apperror.BusinessCodeEmailAlreadyRegistered,
			message:      "Email already registered. Try logging in.",
			httpStatus:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperror.New(tt.code, tt.businessCode, tt.message, tt.httpStatus)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.businessCode, err.BusinessCode)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.httpStatus, err.HTTPStatus)
			assert.Nil(t, err.Inner)
			assert.Nil(t, err.Details)
		})
	}
}

func TestWrap(t *testing.T) {
	innerErr := errors.New("connection refused")

	err := apperror.Wrap(
		innerErr,
		apperror.CodeStorageUnavailable,
		apperror.BusinessCodeGeneral,
		"Error fetching posts",
		http.StatusInternalServerError,
	)

	assert.Same(t, innerErr, err.Inner)
	assert.True(t, errors.Is(err, innerErr))
	assert.Equal(t, apperror.CodeStorageUnavailable, err.Code)
}

func TestWithDetailsLeavesSentinelUntouched(t *testing.T) {
	sentinel := apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidPostData,
		"Error creating post",
		http.StatusInternalServerError,
	)

	decorated := sentinel.WithDetails("title is required")

	require.NotSame(t, sentinel, decorated)
	assert.Nil(t, sentinel.Details)
	assert.Equal(t, "title is required", decorated.Details)
	assert.True(t, errors.Is(decorated, sentinel))
}

func TestWithInner(t *testing.T) {
	sentinel := apperror.New(apperror.CodeInternalError, apperror.BusinessCodeGeneral, "Registration failed.", http.StatusInternalServerError)
	cause := errors.New("disk full")

	wrapped := sentinel.WithInner(cause)

	assert.Nil(t, sentinel.Inner)
	assert.True(t, errors.Is(wrapped, cause))
	assert.True(t, errors.Is(wrapped, sentinel))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "app error status",
			err:  apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "Post not found", http.StatusNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "wrapped app error status",
			err:  fmt.Errorf("handler: %w", apperror.New(apperror.CodeUnauthorized, apperror.BusinessCodeEmailNotFound, "Email not found.", http.StatusUnauthorized)),
			want: http.StatusUnauthorized,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
		{
			name: "app error without status",
			err:  &apperror.AppError{Code: apperror.CodeInternalError},
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.StatusOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err1 := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "Post not found", http.StatusNotFound)
	err2 := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "different message", http.StatusNotFound)
	err3 := apperror.New(apperror.CodeNotFound, apperror.BusinessCodeEmailNotFound, "Email not found.", http.StatusUnauthorized)
	err4 := apperror.New(apperror.CodeConflict, apperror.BusinessCodePostNotFound, "conflict", http.StatusConflict)

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "same codes match", err: err1, target: err2, want: true},
		{name: "different business code doesn't match", err: err1, target: err3, want: false},
		{name: "different error code doesn't match", err: err1, target: err4, want: false},
		{name: "non-AppError doesn't match", err: err1, target: errors.New("regular error"), want: false},
		{name: "identity", err: err1, target: err1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestFormat(t *testing.T) {
	err := apperror.Wrap(
		errors.New("database error"),
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidPostData,
		"Error creating post",
		http.StatusInternalServerError,
	).WithDetails(map[string]string{"field": "title"})

	assert.Equal(t, "Error creating post", fmt.Sprintf("%s", err))
	assert.Equal(t, "Error creating post", fmt.Sprintf("%v", err))

	verbose := fmt.Sprintf("%+v", err)
	for _, expected := range []string{
		"Code: VALIDATION_FAILED",
		"BusinessCode: INVALID_POST_DATA",
		"Message: Error creating post",
		"HTTPStatus: 500",
		"Caused by: database error",
		"Details: map[field:title]",
	} {
		assert.Contains(t, verbose, expected)
	}
}

func TestFormat_Minimal(t *testing.T) {
	err := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "Post not found", http.StatusNotFound)

	output := fmt.Sprintf("%+v", err)

	assert.NotContains(t, output, "Caused by:")
	assert.NotContains(t, output, "Details:")
}
