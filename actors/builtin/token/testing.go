package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
)

type StateSummary struct {
	Accounts    int
	TotalSupply abi.TokenAmount
}

// Checks internal invariants of token state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	sum := &StateSummary{TotalSupply: st.TotalSupply}

	acc.Require(st.TotalSupply.GreaterThanEqual(big.Zero()), "total supply %v is negative", st.TotalSupply)

	balances, err := adt.AsMap(store, st.Balances, adt.BalanceTableBitwidth)
	if err != nil {
		acc.Addf("failed to load balances: %v", err)
		return sum, acc
	}

	total := big.Zero()
	var balance abi.TokenAmount
	err = balances.ForEach(&balance, func(key string) error {
		a, err := addr.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		acc.Require(balance.GreaterThanEqual(big.Zero()), "balance of %v is negative: %v", a, balance)
		total = big.Add(total, balance)
		sum.Accounts++
		return nil
	})
	acc.RequireNoError(err, "failed to iterate balances")

	acc.Require(total.Equals(st.TotalSupply), "sum of balances %v does not match total supply %v", total, st.TotalSupply)
	return sum, acc
}
