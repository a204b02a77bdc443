package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
)

func TestCouponRepository_LookupExactMatch(t *testing.T) {
	s := testStore()
	repo := NewCouponRepository(s)

	tx := s.Begin()
	repo.Insert(tx, &model.Coupon{Code: "ABCD1234", CreatedAt: time.Now()})

	assert.NotNil(t, repo.Lookup(tx, "ABCD1234"))
	assert.Nil(t, repo.Lookup(tx, "abcd1234"), "lookup is case sensitive")
	assert.Nil(t, repo.Lookup(tx, "UNKNOWN"))
	assert.Nil(t, repo.Lookup(tx, ""), "empty code never matches")
	tx.Commit()
}

func TestCouponRepository_HasUnused(t *testing.T) {
	s := testStore()
	repo := NewCouponRepository(s)

	tx := s.Begin()
	assert.False(t, repo.HasUnused(tx))

	c := &model.Coupon{Code: "ABCD1234"}
	repo.Insert(tx, c)
	assert.True(t, repo.HasUnused(tx))

	repo.MarkUsed(tx, c, "order-1", time.Now())
	assert.False(t, repo.HasUnused(tx))
	tx.Commit()
}

func TestCouponRepository_MarkUsed(t *testing.T) {
	s := testStore()
	repo := NewCouponRepository(s)

	usedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tx := s.Begin()
	c := &model.Coupon{Code: "ABCD1234"}
	repo.Insert(tx, c)
	repo.MarkUsed(tx, c, "order-1", usedAt)
	tx.Commit()

	assert.True(t, c.Used)
	assert.Equal(t, "order-1", c.UsedByOrderID)
	require.NotNil(t, c.UsedAt)
	assert.Equal(t, usedAt, *c.UsedAt)
}

func TestCouponRepository_AllReturnsDeepCopies(t *testing.T) {
	s := testStore()
	repo := NewCouponRepository(s)

	tx := s.Begin()
	repo.Insert(tx, &model.Coupon{Code: "ABCD1234"})
	tx.Commit()

	coupons := repo.All()
	require.Len(t, coupons, 1)
	coupons[0].Used = true

	tx = s.Begin()
	defer tx.Rollback()
	assert.False(t, repo.Lookup(tx, "ABCD1234").Used, "mutating the snapshot must not touch the registry")
}
