package adt_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
	"github.com/brainstems/intellex-vesting-contracts/support/ipld"
	tutil "github.com/brainstems/intellex-vesting-contracts/support/testing"
)

func TestAddrKey(t *testing.T) {
	idAddress1 := tutil.NewIDAddr(t, 101)
	idAddress2 := tutil.NewIDAddr(t, 102)

	t.Run("address to key string conversion", func(t *testing.T) {
		assert.Equal(t, "\x00\x65", adt.AddrKey(idAddress1).Key())
		assert.Equal(t, "\x00\x66", adt.AddrKey(idAddress2).Key())
	})
}

func TestMap(t *testing.T) {
	store := ipld.NewADTStore(context.Background())

	t.Run("get put and reload", func(t *testing.T) {
		m, err := adt.MakeEmptyMap(store, 5)
		require.NoError(t, err)

		a := tutil.NewIDAddr(t, 100)
		b := tutil.NewIDAddr(t, 101)
		va := abi.NewTokenAmount(10)
		require.NoError(t, m.Put(adt.AddrKey(a), &va))

		root, err := m.Root()
		require.NoError(t, err)

		reloaded, err := adt.AsMap(store, root, 5)
		require.NoError(t, err)

		var out abi.TokenAmount
		found, err := reloaded.Get(adt.AddrKey(a), &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(10), out.Int64())

		found, err = reloaded.Get(adt.AddrKey(b), &out)
		require.NoError(t, err)
		assert.False(t, found)

		has, err := reloaded.Has(adt.AddrKey(b))
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("root is stable for identical content", func(t *testing.T) {
		m1, err := adt.MakeEmptyMap(store, 5)
		require.NoError(t, err)
		m2, err := adt.MakeEmptyMap(store, 5)
		require.NoError(t, err)

		for i := uint64(0); i < 20; i++ {
			v := abi.NewTokenAmount(int64(i))
			require.NoError(t, m1.Put(adt.AddrKey(tutil.NewIDAddr(t, i)), &v))
		}
		for i := uint64(20); i > 0; i-- {
			v := abi.NewTokenAmount(int64(i - 1))
			require.NoError(t, m2.Put(adt.AddrKey(tutil.NewIDAddr(t, i-1)), &v))
		}

		r1, err := m1.Root()
		require.NoError(t, err)
		r2, err := m2.Root()
		require.NoError(t, err)
		assert.Equal(t, r1, r2)

		keys, err := m1.CollectKeys()
		require.NoError(t, err)
		assert.Len(t, keys, 20)
	})
}

func TestArray(t *testing.T) {
	store := ipld.NewADTStore(context.Background())

	t.Run("not found", func(t *testing.T) {
		arr, err := adt.MakeEmptyArray(store, 5)
		require.NoError(t, err)

		found, err := arr.Get(7, nil)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("append preserves order", func(t *testing.T) {
		arr, err := adt.MakeEmptyArray(store, 3)
		require.NoError(t, err)

		for i := uint64(0); i < 30; i++ {
			a := tutil.NewIDAddr(t, 1000+i)
			require.NoError(t, arr.AppendContinuous(&a))
		}
		assert.Equal(t, uint64(30), arr.Length())

		root, err := arr.Root()
		require.NoError(t, err)
		reloaded, err := adt.AsArray(store, root, 3)
		require.NoError(t, err)

		var seen []uint64
		var a address.Address
		err = reloaded.ForEach(&a, func(i int64) error {
			id, err := address.IDFromAddress(a)
			if err != nil {
				return err
			}
			assert.Equal(t, uint64(1000+i), id)
			seen = append(seen, uint64(i))
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, seen, 30)
	})
}

func TestBalanceTable(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	addr := tutil.NewIDAddr(t, 100)

	newTable := func(t *testing.T) *adt.BalanceTable {
		root, err := adt.StoreEmptyMap(store, adt.BalanceTableBitwidth)
		require.NoError(t, err)
		bt, err := adt.AsBalanceTable(store, root)
		require.NoError(t, err)
		return bt
	}

	t.Run("absent keys read as zero and register without balance", func(t *testing.T) {
		bt := newTable(t)

		has, err := bt.Has(addr)
		require.NoError(t, err)
		assert.False(t, has)

		amount, err := bt.Get(addr)
		require.NoError(t, err)
		assert.True(t, amount.IsZero())

		require.NoError(t, bt.Register(addr))
		has, err = bt.Has(addr)
		require.NoError(t, err)
		assert.True(t, has)

		total, err := bt.Total()
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("add and subtract", func(t *testing.T) {
		bt := newTable(t)

		require.NoError(t, bt.Add(addr, abi.NewTokenAmount(10)))
		require.NoError(t, bt.Add(addr, abi.NewTokenAmount(20)))
		amount, err := bt.Get(addr)
		require.NoError(t, err)
		assert.Equal(t, int64(30), amount.Int64())

		err = bt.Add(addr, abi.NewTokenAmount(-31))
		assert.Error(t, err)

		sub, err := bt.SubtractWithMinimum(addr, abi.NewTokenAmount(50), abi.NewTokenAmount(5))
		require.NoError(t, err)
		assert.Equal(t, int64(25), sub.Int64())

		err = bt.MustSubtract(addr, abi.NewTokenAmount(6))
		assert.IsType(t, adt.ErrInsufficientBalance{}, err)

		require.NoError(t, bt.MustSubtract(addr, abi.NewTokenAmount(5)))
		total, err := bt.Total()
		require.NoError(t, err)
		assert.True(t, total.Equals(big.Zero()))
	})
}
