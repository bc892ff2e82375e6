package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cartoolsbd/storefront/internal/models"
)

func testProduct(name string, price float64) models.Product {
	return models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: price,
	}
}

func TestAddMergesRepeatedProduct(t *testing.T) {
	c := New()
	p := testProduct("wrench", 500)

	for i := 0; i < 5; i++ {
		c.Add(p)
	}

	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, p.ID, lines[0].Product.ID)
	require.Equal(t, uint(5), lines[0].Quantity)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	a := testProduct("a", 1)
	b := testProduct("b", 2)
	d := testProduct("d", 3)

	c.Add(a)
	c.Add(b)
	c.Add(d)
	c.Add(a) // merge, must not reorder

	lines := c.Lines()
	require.Len(t, lines, 3)
	require.Equal(t, a.ID, lines[0].Product.ID)
	require.Equal(t, b.ID, lines[1].Product.ID)
	require.Equal(t, d.ID, lines[2].Product.ID)
	require.Equal(t, uint(2), lines[0].Quantity)
}

func TestTotalRecomputedFromLines(t *testing.T) {
	c := New()
	a := testProduct("socket set", 500)
	b := testProduct("jack", 1200)

	c.Add(a)
	c.Add(a)
	c.Add(b)
	require.Equal(t, float64(2200), c.Total())

	require.True(t, c.Remove(b.ID))
	require.Equal(t, float64(1000), c.Total())
}

func TestAddAgainScenario(t *testing.T) {
	// cart = [{A, price 500, qty 1}], add A again -> qty 2, total 1000
	c := New()
	a := testProduct("A", 500)

	c.Add(a)
	c.Add(a)

	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, uint(2), lines[0].Quantity)
	require.Equal(t, float64(1000), c.Total())
}

func TestRemoveMissingIsNoop(t *testing.T) {
	c := New()
	c.Add(testProduct("wrench", 500))

	require.False(t, c.Remove(uuid.New()))
	require.Equal(t, 1, c.Len())
}

func TestSnapshotNotRefreshed(t *testing.T) {
	c := New()
	p := testProduct("wrench", 500)
	c.Add(p)

	// A later catalog price change must not reach the line already added.
	p.Price = 900
	c.Add(p)

	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, float64(500), lines[0].Product.Price)
	require.Equal(t, float64(1000), c.Total())
}

func TestDeduct(t *testing.T) {
	c := New()
	a := testProduct("wrench", 500)
	b := testProduct("jack", 1200)

	c.Add(a)
	c.Add(a)
	c.Add(a)
	c.Add(b)

	// Partial deduction keeps the line with the remainder.
	c.Deduct(a.ID, 2)
	lines := c.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, uint(1), lines[0].Quantity)

	// Deducting at least the full quantity drops the line.
	c.Deduct(b.ID, 5)
	require.Equal(t, 1, c.Len())

	// Absent product is a no-op.
	c.Deduct(uuid.New(), 1)
	require.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(testProduct("wrench", 500))
	c.Clear()

	require.True(t, c.Empty())
	require.Equal(t, float64(0), c.Total())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	c.Add(testProduct("wrench", 500))

	lines := c.Lines()
	lines[0].Quantity = 99

	require.Equal(t, uint(1), c.Lines()[0].Quantity)
}
