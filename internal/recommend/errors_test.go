package recommend

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	err := Wrap(ErrServiceUnavailable, syscall.ECONNREFUSED, "scorer is down")

	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	assert.NotErrorIs(t, err, ErrPredictionFailed)

	wrapped := fmt.Errorf("predict: %w", err)
	assert.ErrorIs(t, wrapped, ErrServiceUnavailable)
	assert.Equal(t, ErrServiceUnavailable, KindOf(wrapped))
	assert.Equal(t, "scorer is down", MessageOf(wrapped))
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"code and message", NewError(ErrInvalidInput, "too-short", "too short"), "invalid input: too-short: too short"},
		{"kind only", &Error{Kind: ErrPredictionFailed}, "prediction failed"},
		{"with cause", Wrap(ErrPredictionFailed, errors.New("boom"), "failed"), "prediction failed: failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Nil(t, KindOf(errors.New("plain")))
	assert.Nil(t, KindOf(nil))
	assert.Equal(t, "", MessageOf(errors.New("plain")))
	assert.Equal(t, "too-long", CodeOf(NewError(ErrInvalidInput, "too-long", "")))
}
