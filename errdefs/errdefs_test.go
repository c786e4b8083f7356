package errdefs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapMatchesSentinel(t *testing.T) {
	cause := errors.New("user rejected request")
	err := Wrap(ErrSubmissionRejected, cause)

	assert.ErrorIs(t, err, ErrSubmissionRejected)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConfirmationFailed)
	assert.Equal(t, "transaction rejected: user rejected request", err.Error())
	assert.Nil(t, ErrSubmissionRejected.Cause, "sentinel must not be mutated")
}

func TestKindAndCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create account: %w", Wrapf(ErrQueryFailed, "decode %s", "get_user_count"))

	assert.Equal(t, KindQuery, KindOf(err))
	assert.Equal(t, CodeQueryFailed, CodeOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Empty(t, CodeOf(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", ErrInvalidAge.Kind.String())
	assert.Equal(t, "session", ErrNoActiveSession.Kind.String())
	assert.Equal(t, "confirmation", ErrConfirmationTimeout.Kind.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
