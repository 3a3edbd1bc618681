package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), MZN)
		require.NoError(t, err)
		assert.Equal(t, MZN, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyMZN(t *testing.T) {
	m := NewMoneyMZN(decimal.NewFromFloat(50.00))
	assert.Equal(t, MZN, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestNewMoneyMZNFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyMZNFromString("123.45")
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyMZNFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestZeroMZN(t *testing.T) {
	m := ZeroMZN()
	assert.True(t, m.IsZero())
	assert.Equal(t, MZN, m.Currency())
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, NewMoneyMZNFromFloat(10).IsPositive())
	assert.False(t, NewMoneyMZNFromFloat(0).IsPositive())
	assert.False(t, NewMoneyMZNFromFloat(-5).IsPositive())
	assert.True(t, NewMoneyMZNFromFloat(-5).IsNegative())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyMZNFromFloat(10.50)
		b := NewMoneyMZNFromFloat(4.50)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(15.00)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyMZNFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("MustAdd panics on mixed currencies", func(t *testing.T) {
		a := NewMoneyMZNFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), USD)
		assert.Panics(t, func() { a.MustAdd(b) })
	})
}

func TestMoneySubtract(t *testing.T) {
	a := NewMoneyMZNFromFloat(10)
	b := NewMoneyMZNFromFloat(4)
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(6)))
}

func TestMoneyMultiply(t *testing.T) {
	t.Run("by decimal factor", func(t *testing.T) {
		m := NewMoneyMZNFromFloat(10.50).Multiply(decimal.NewFromInt(3))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(31.50)))
	})

	t.Run("by integer quantity", func(t *testing.T) {
		m := NewMoneyMZNFromFloat(2.25).MultiplyByInt(4)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(9.00)))
	})
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyMZNFromFloat(10)
	b := NewMoneyMZNFromFloat(10)
	c := NewMoneyMZNFromFloat(12)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))

	gt, err := c.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "MT 120.50", NewMoneyMZNFromFloat(120.5).String())
	usd, _ := NewMoney(decimal.NewFromInt(7), USD)
	assert.Equal(t, "USD 7.00", usd.String())
}

func TestMoneyJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := NewMoneyMZNFromFloat(45.75)
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equals(decoded))
	})

	t.Run("missing currency defaults to MZN", func(t *testing.T) {
		var decoded Money
		require.NoError(t, json.Unmarshal([]byte(`{"amount":"10"}`), &decoded))
		assert.Equal(t, MZN, decoded.Currency())
	})
}
