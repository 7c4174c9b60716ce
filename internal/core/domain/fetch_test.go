package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchOptions_Validate(t *testing.T) {
	t.Run("rejects missing username", func(t *testing.T) {
		err := FetchOptions{}.Validate()
		assert.ErrorIs(t, err, ErrUsernameRequired)
	})

	t.Run("rejects whitespace-only username", func(t *testing.T) {
		err := FetchOptions{Username: "   "}.Validate()
		assert.ErrorIs(t, err, ErrUsernameRequired)
	})

	t.Run("accepts a username", func(t *testing.T) {
		assert.NoError(t, FetchOptions{Username: "octocat"}.Validate())
	})
}

func TestFetchOptions_EffectivePerPage(t *testing.T) {
	tests := []struct {
		name    string
		perPage int
		want    int
	}{
		{"zero defaults", 0, DefaultPerPage},
		{"below minimum clamps up", -5, MinPerPage},
		{"above maximum clamps down", 500, MaxPerPage},
		{"in range passes through", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := FetchOptions{Username: "octocat", PerPage: tt.perPage}
			assert.Equal(t, tt.want, opts.EffectivePerPage())
		})
	}
}
