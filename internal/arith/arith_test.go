package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/dyntools-go/internal/errs"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"8 / 2", 4},
		{"1 + 2", 3},
		{"2 * 3 + 4", 10},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 - 2 - 3", 5},
		{"-5 + 3", -2},
		{"--4", 4},
		{"1.5 * 2", 3},
		{"100 / 4 / 5", 5},
		{"  7  ", 7},
		{"(1 + (2 * (3 + 4)))", 15},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvalDivideByZero(t *testing.T) {
	_, err := Eval("8 / 0")
	assert.ErrorIs(t, err, errs.ErrDivideByZero)

	_, err = Eval("1 / (2 - 2)")
	assert.ErrorIs(t, err, errs.ErrDivideByZero)
}

func TestEvalInvalid(t *testing.T) {
	for _, expr := range []string{
		"",
		"1 +",
		"foo",
		"(1 + 2",
		"1 2",
		"2 ** 3",
		"1..2",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := Eval(expr)
			assert.ErrorIs(t, err, errs.ErrInvalidExpression)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "4", Format(4))
	assert.Equal(t, "2.5", Format(2.5))
	assert.Equal(t, "-0.125", Format(-0.125))
}
