package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"dental-smile-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapsCause(t *testing.T) {
	cause := errors.New("smtp: connection refused")
	err := apperror.Internal("Failed to send notification", cause)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Failed to send notification", err.Error())
	assert.ErrorIs(t, err, cause)

	var appErr *apperror.AppError
	assert.True(t, errors.As(error(err), &appErr))
}

func TestBadRequestWithoutCause(t *testing.T) {
	err := apperror.BadRequest("Invalid request body", nil)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Nil(t, errors.Unwrap(err))
}
