package github

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError(t *testing.T) {
	err := &UpstreamError{StatusCode: 404, Body: "Not Found"}

	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Not Found")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestUpstreamError_Wrapped(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &UpstreamError{StatusCode: 401, Body: "Bad credentials"})

	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestRateLimitError(t *testing.T) {
	err := &RateLimitError{ResetAt: time.Unix(1767225600, 0), Limit: 60}

	assert.True(t, IsRateLimited(err))
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	assert.Contains(t, err.Error(), "rate limit")
}

func TestStatusOf_PlainError(t *testing.T) {
	assert.Zero(t, StatusOf(errors.New("boom")))
}
