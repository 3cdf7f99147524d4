package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := kernel.NewMoney(125050)
	require.NoError(t, err)
	assert.Equal(t, int64(125050), m.Minor())
	assert.InDelta(t, 1250.50, m.Major(), 0.0001)
	assert.Equal(t, "1250.50", m.String())

	_, err = kernel.NewMoney(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		in       string
		expected int64
	}{
		{"0", 0},
		{"12", 1200},
		{"12.5", 1250},
		{"12.05", 1205},
		{" 99.99 ", 9999},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := kernel.ParseMoney(tc.in)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, m.Minor())
		})
	}

	t.Run("rejects bad input", func(t *testing.T) {
		for _, in := range []string{"", "abc", "1.234", "1.", "-5", "1.-5"} {
			_, err := kernel.ParseMoney(in)
			assert.True(t, errs.IsValidation(err), "input %q", in)
		}
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := kernel.MustMoney(1500)
	b := kernel.MustMoney(250)

	assert.Equal(t, int64(1750), a.Add(b).Minor())

	tripled, err := a.Times(3)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), tripled.Minor())

	_, err = a.Times(-1)
	require.Error(t, err)

	assert.True(t, kernel.Money{}.IsZero())
	assert.False(t, a.IsZero())
}
