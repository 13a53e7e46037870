package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NewNotFound("Quest ID not found.")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidArgument)

	wrapped := fmt.Errorf("get quest: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
}

func TestError_WrapKeepsCause(t *testing.T) {
	err := Wrap(CodeInternal, "list quests", sql.ErrConnDone)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Equal(t, "list quests: "+sql.ErrConnDone.Error(), err.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(fmt.Errorf("x: %w", NewNotFound("gone"))))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "gone", MessageOf(NewNotFound("gone"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("plain"), "fallback"))
}
