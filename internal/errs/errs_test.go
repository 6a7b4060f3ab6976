package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolNotFoundError(t *testing.T) {
	err := &ToolNotFoundError{Tool: "greet", Session: "sess-1"}

	assert.Contains(t, err.Error(), `"greet"`)
	assert.Contains(t, err.Error(), "sess-1")
	assert.True(t, err.IsDynToolsError())

	var target *ToolNotFoundError

	wrapped := fmt.Errorf("dispatch: %w", err)
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "greet", target.Tool)
}

func TestSentinels(t *testing.T) {
	assert.True(t, errors.Is(fmt.Errorf("x: %w", ErrSessionClosed), ErrSessionClosed))
	assert.True(t, errors.Is(fmt.Errorf("x: %w", ErrDivideByZero), ErrDivideByZero))
	assert.NotEqual(t, ErrDivideByZero.Error(), ErrInvalidExpression.Error())
}
