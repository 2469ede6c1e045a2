package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sale(d time.Time, amount, company string) model.Voucher {
	return model.Voucher{
		Date:         d,
		Type:         model.VoucherSales,
		DebitLedger:  "Cash",
		CreditLedger: "Sales",
		Amount:       dec(amount),
		Narration:    "counter sale",
		Company:      company,
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty list is not an error", func(t *testing.T) {
		vs, err := s.List(ctx, Filter{})
		require.NoError(t, err)
		assert.NotNil(t, vs)
		assert.Empty(t, vs)
	})

	first, err := s.Insert(ctx, sale(date(2025, 1, 15), "100.00", "Acme"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", first.ID)

	second, err := s.Insert(ctx, sale(date(2025, 1, 3), "50.50", "Acme"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-002", second.ID)

	feb, err := s.Insert(ctx, sale(date(2025, 2, 1), "75.00", "Other Co"))
	require.NoError(t, err)
	assert.Equal(t, "2025-02-001", feb.ID)

	stock := model.Voucher{
		Date:         date(2025, 2, 2),
		Type:         model.VoucherPurchase,
		DebitLedger:  "Purchase",
		CreditLedger: "Cash",
		Amount:       dec("300.00"),
		Item:         "Widget",
		Quantity:     dec("12.5"),
		Company:      "Acme",
	}
	_, err = s.Insert(ctx, stock)
	require.NoError(t, err)

	t.Run("list orders by date then id", func(t *testing.T) {
		vs, err := s.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, vs, 4)
		assert.Equal(t, "2025-01-002", vs[0].ID)
		assert.Equal(t, "2025-01-001", vs[1].ID)
		assert.Equal(t, "2025-02-001", vs[2].ID)
		assert.True(t, vs[0].Amount.Equal(dec("50.50")))
		assert.Equal(t, model.VoucherSales, vs[0].Type)
		assert.True(t, vs[0].Date.Equal(date(2025, 1, 3)))

		assert.Equal(t, "Widget", vs[3].Item)
		assert.True(t, vs[3].Quantity.Equal(dec("12.5")))
	})

	t.Run("filter by company is case-insensitive", func(t *testing.T) {
		vs, err := s.List(ctx, Filter{Company: "acme"})
		require.NoError(t, err)
		assert.Len(t, vs, 3)
	})

	t.Run("filter by date range is inclusive", func(t *testing.T) {
		vs, err := s.List(ctx, Filter{From: date(2025, 1, 15), To: date(2025, 2, 1)})
		require.NoError(t, err)
		require.Len(t, vs, 2)
		assert.Equal(t, "2025-01-001", vs[0].ID)
		assert.Equal(t, "2025-02-001", vs[1].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "2025-01-001"))

		err := s.Delete(ctx, "2025-01-001")
		require.ErrorIs(t, err, ErrNotFound)

		vs, err := s.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, vs, 3)
	})

	t.Run("ids continue after delete", func(t *testing.T) {
		v, err := s.Insert(ctx, sale(date(2025, 1, 20), "10.00", ""))
		require.NoError(t, err)
		assert.Equal(t, "2025-01-003", v.ID)
	})

	t.Run("insert all numbers each month in order", func(t *testing.T) {
		saved, err := s.InsertAll(ctx, []model.Voucher{
			sale(date(2025, 1, 25), "1.00", ""),
			sale(date(2025, 3, 1), "2.00", ""),
			sale(date(2025, 1, 26), "3.00", ""),
		})
		require.NoError(t, err)
		require.Len(t, saved, 3)
		assert.Equal(t, "2025-01-004", saved[0].ID)
		assert.Equal(t, "2025-03-001", saved[1].ID)
		assert.Equal(t, "2025-01-005", saved[2].ID)

		vs, err := s.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, vs, 7)
	})
}
