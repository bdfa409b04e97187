package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) *Money {
	t.Helper()
	m, err := ParseMoney(s)
	require.NoError(t, err)
	return m
}

func TestNewProduct(t *testing.T) {
	price := mustMoney(t, "10")

	t.Run("valid product creation", func(t *testing.T) {
		p, err := NewProduct(1, "  Mango Box ", price)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID())
		assert.Equal(t, "Mango Box", p.Name())
		assert.Equal(t, 0, p.Count())
		assert.Equal(t, "", p.Note())
		assert.Nil(t, p.Photo())
		assert.Empty(t, p.Entries())
		assert.True(t, p.Price().Equal(price))
	})

	t.Run("empty name returns error", func(t *testing.T) {
		_, err := NewProduct(1, "   ", price)
		assert.ErrorIs(t, err, ErrEmptyName)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("negative price returns error", func(t *testing.T) {
		_, err := NewProduct(1, "Test", mustMoney(t, "-1"))
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("nil price returns error", func(t *testing.T) {
		_, err := NewProduct(1, "Test", nil)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		p, err := NewProduct(1, "Free sample", Zero())
		require.NoError(t, err)
		assert.True(t, p.Price().IsZero())
	})
}

func TestReconstructProduct_ClampsCount(t *testing.T) {
	p := ReconstructProduct(1, "Legacy", -4, "", nil, nil, nil)
	assert.Equal(t, 0, p.Count())
	assert.True(t, p.Price().IsZero())
	assert.NotNil(t, p.Entries())
}

func TestProduct_Clone(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := ReconstructCustomerEntry(7, "Alice", "Pending", now)
	p := ReconstructProduct(1, "Box", 2, "n", mustMoney(t, "5"), nil, []*CustomerEntry{entry})

	c := p.Clone()
	c.entries[0].state = ReadyState
	c.count = 9

	assert.Equal(t, "Pending", p.Entries()[0].State())
	assert.Equal(t, 2, p.Count())
}

func TestNormalizeStoredState(t *testing.T) {
	tests := []struct {
		name      string
		state     string
		isReady   bool
		wantState string
		changed   bool
	}{
		{"consistent ready", ReadyState, true, ReadyState, false},
		{"consistent pending", "Pending", false, "Pending", false},
		{"flag set on non-ready state", "Pending", true, "Pending", true},
		{"flag missing on ready state", ReadyState, false, ReadyState, true},
		{"no state but ready flag", "", true, ReadyState, true},
		{"no state and no flag", "", false, "Pending", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := NormalizeStoredState(tt.state, tt.isReady, "Pending")
			assert.Equal(t, tt.wantState, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestNewCustomerEntry(t *testing.T) {
	now := time.Now()

	t.Run("trims data", func(t *testing.T) {
		e, err := NewCustomerEntry(1, "  Bob, 017xxxx \n", "Pending", now)
		require.NoError(t, err)
		assert.Equal(t, "Bob, 017xxxx", e.Data())
		assert.False(t, e.IsReady())
	})

	t.Run("whitespace only returns error", func(t *testing.T) {
		_, err := NewCustomerEntry(1, " \t ", "Pending", now)
		assert.ErrorIs(t, err, ErrEmptyEntryData)
	})

	t.Run("ready is derived from state", func(t *testing.T) {
		e, err := NewCustomerEntry(1, "x", ReadyState, now)
		require.NoError(t, err)
		assert.True(t, e.IsReady())
	})
}
