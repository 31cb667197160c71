package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New(http.StatusBadRequest, "invalid filter")
	err := Wrap(sentinel, http.StatusBadRequest, "invalid filter: min must be a number")

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, "invalid filter: min must be a number", err.Error())
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(New(http.StatusNotFound, "missing")))
	assert.Equal(t, http.StatusConflict, StatusCode(fmt.Errorf("ctx: %w", New(http.StatusConflict, "full"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
