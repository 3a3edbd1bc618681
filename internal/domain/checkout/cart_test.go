package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdv/terminal/internal/domain/shared/valueobject"
)

func price(v float64) valueobject.Money {
	return valueobject.NewMoneyMZNFromFloat(v)
}

func TestCartAddProduct(t *testing.T) {
	t.Run("first add inserts a line with quantity 1", func(t *testing.T) {
		cart := NewCart()
		id := uuid.New()

		line := cart.AddProduct(id, "Coca-Cola", price(50))
		require.NotNil(t, line)
		assert.Equal(t, int64(1), line.Quantity)
		assert.True(t, line.LineTotal.Equals(price(50)))
		assert.Equal(t, 1, cart.Len())
	})

	t.Run("second add increments the existing line", func(t *testing.T) {
		cart := NewCart()
		id := uuid.New()

		cart.AddProduct(id, "Coca-Cola", price(50))
		line := cart.AddProduct(id, "Coca-Cola", price(50))
		require.NotNil(t, line)
		assert.Equal(t, int64(2), line.Quantity)
		assert.True(t, line.LineTotal.Equals(price(100)))
		assert.Equal(t, 1, cart.Len())
	})

	t.Run("zero price is a no-op", func(t *testing.T) {
		cart := NewCart()
		line := cart.AddProduct(uuid.New(), "Broken product", price(0))
		assert.Nil(t, line)
		assert.Equal(t, 0, cart.Len())
		assert.True(t, cart.Total().IsZero())
	})

	t.Run("negative price is a no-op", func(t *testing.T) {
		cart := NewCart()
		line := cart.AddProduct(uuid.New(), "Broken product", price(-10))
		assert.Nil(t, line)
		assert.Equal(t, 0, cart.Len())
		assert.True(t, cart.Total().IsZero())
	})

	t.Run("lines keep insertion order", func(t *testing.T) {
		cart := NewCart()
		first := uuid.New()
		second := uuid.New()

		cart.AddProduct(first, "Pão", price(10))
		cart.AddProduct(second, "Leite", price(80))
		cart.AddProduct(first, "Pão", price(10))

		lines := cart.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, first, lines[0].ProductID)
		assert.Equal(t, second, lines[1].ProductID)
	})
}

func TestCartChangeQuantity(t *testing.T) {
	t.Run("positive delta increments", func(t *testing.T) {
		cart := NewCart()
		id := uuid.New()
		cart.AddProduct(id, "Arroz", price(120))

		cart.ChangeQuantity(id, 2)
		line := cart.Line(id)
		require.NotNil(t, line)
		assert.Equal(t, int64(3), line.Quantity)
		assert.True(t, line.LineTotal.Equals(price(360)))
	})

	t.Run("delta dropping quantity to zero removes the line", func(t *testing.T) {
		cart := NewCart()
		id := uuid.New()
		cart.AddProduct(id, "Arroz", price(120))
		cart.AddProduct(id, "Arroz", price(120))

		cart.ChangeQuantity(id, -2)
		assert.Nil(t, cart.Line(id))
		assert.Equal(t, 0, cart.Len())
		assert.True(t, cart.Total().IsZero())
	})

	t.Run("delta below zero removes the line", func(t *testing.T) {
		cart := NewCart()
		id := uuid.New()
		cart.AddProduct(id, "Arroz", price(120))

		cart.ChangeQuantity(id, -5)
		assert.Nil(t, cart.Line(id))
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		cart := NewCart()
		cart.AddProduct(uuid.New(), "Arroz", price(120))

		cart.ChangeQuantity(uuid.New(), 3)
		assert.Equal(t, 1, cart.Len())
		assert.True(t, cart.Total().Equals(price(120)))
	})
}

func TestCartRemoveLine(t *testing.T) {
	cart := NewCart()
	keep := uuid.New()
	drop := uuid.New()
	cart.AddProduct(keep, "Água", price(25))
	cart.AddProduct(drop, "Sumo", price(60))

	cart.RemoveLine(drop)
	assert.Equal(t, 1, cart.Len())
	assert.Nil(t, cart.Line(drop))

	// absent product is a no-op
	cart.RemoveLine(drop)
	assert.Equal(t, 1, cart.Len())
}

func TestCartTotal(t *testing.T) {
	t.Run("total equals sum of line totals at every step", func(t *testing.T) {
		cart := NewCart()
		a := uuid.New()
		b := uuid.New()

		verify := func() {
			expected := valueobject.ZeroMZN()
			for _, line := range cart.Lines() {
				expected = expected.MustAdd(line.UnitPrice.MultiplyByInt(line.Quantity))
			}
			assert.True(t, cart.Total().Equals(expected))
		}

		cart.AddProduct(a, "A", price(10))
		verify()
		cart.AddProduct(a, "A", price(10))
		verify()
		cart.AddProduct(b, "B", price(7.5))
		verify()
		cart.ChangeQuantity(a, 3)
		verify()
		cart.ChangeQuantity(b, -1)
		verify()
	})

	t.Run("add twice then remove via delta", func(t *testing.T) {
		cart := NewCart()
		a := uuid.New()

		cart.AddProduct(a, "A", price(10))
		assert.True(t, cart.Total().Equals(price(10)))

		cart.AddProduct(a, "A", price(10))
		line := cart.Line(a)
		require.NotNil(t, line)
		assert.Equal(t, int64(2), line.Quantity)
		assert.True(t, cart.Total().Equals(price(20)))

		cart.ChangeQuantity(a, -2)
		assert.Nil(t, cart.Line(a))
		assert.True(t, cart.Total().IsZero())
	})
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.AddProduct(uuid.New(), "A", price(10))
	cart.AddProduct(uuid.New(), "B", price(20))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
}

func TestCartTotalQuantity(t *testing.T) {
	cart := NewCart()
	a := uuid.New()
	cart.AddProduct(a, "A", price(10))
	cart.AddProduct(a, "A", price(10))
	cart.AddProduct(uuid.New(), "B", price(5))

	assert.True(t, cart.TotalQuantity().Equal(decimal.NewFromInt(3)))
}

func TestCartLinesReturnsCopy(t *testing.T) {
	cart := NewCart()
	id := uuid.New()
	cart.AddProduct(id, "A", price(10))

	lines := cart.Lines()
	lines[0].Quantity = 99

	line := cart.Line(id)
	require.NotNil(t, line)
	assert.Equal(t, int64(1), line.Quantity)
}
