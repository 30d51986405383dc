package vault

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
)

type StateSummary struct {
	Accounts       int
	TotalBalance   abi.TokenAmount
	ClaimedBalance abi.TokenAmount
	Locking        abi.TokenAmount
}

// Checks internal invariants of vault state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	sum := &StateSummary{
		TotalBalance:   st.TotalBalance,
		ClaimedBalance: st.ClaimedBalance,
		Locking:        big.Zero(),
	}

	acc.Require(st.ClaimedBalance.GreaterThanEqual(big.Zero()), "claimed balance %v is negative", st.ClaimedBalance)
	acc.Require(st.ClaimedBalance.LessThanEqual(st.TotalBalance), "claimed balance %v exceeds total balance %v", st.ClaimedBalance, st.TotalBalance)

	accounts, err := adt.AsMap(store, st.Accounts, AccountsHamtBitwidth)
	if err != nil {
		acc.Addf("failed to load accounts: %v", err)
		return sum, acc
	}

	deposited := big.Zero()
	claimed := big.Zero()
	seen := map[addr.Address]struct{}{}
	var account Account
	err = accounts.ForEach(&account, func(key string) error {
		a, err := addr.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		seen[a] = struct{}{}
		sum.Accounts++
		checkAccount(&account, acc.WithPrefix("account %v: ", a))

		deposited = big.Add(deposited, account.DepositedAmount)
		claimed = big.Add(claimed, account.ClaimedAmount)
		sum.Locking = big.Add(sum.Locking, account.LockingAmount())
		return nil
	})
	acc.RequireNoError(err, "failed to iterate accounts")

	acc.Require(deposited.Equals(st.TotalBalance), "sum of deposits %v does not match total balance %v", deposited, st.TotalBalance)
	acc.Require(claimed.Equals(st.ClaimedBalance), "sum of claims %v does not match claimed balance %v", claimed, st.ClaimedBalance)

	index, err := adt.AsArray(store, st.AccountIndex, AccountIndexAmtBitwidth)
	if err != nil {
		acc.Addf("failed to load account index: %v", err)
		return sum, acc
	}
	acc.Require(index.Length() == uint64(sum.Accounts), "account index length %d does not match %d accounts", index.Length(), sum.Accounts)

	indexed := map[addr.Address]struct{}{}
	var a addr.Address
	err = index.ForEach(&a, func(i int64) error {
		if _, ok := indexed[a]; ok {
			acc.Addf("account %v indexed twice", a)
		}
		indexed[a] = struct{}{}
		if _, ok := seen[a]; !ok {
			acc.Addf("indexed account %v at %d is missing", a, i)
		}
		return nil
	})
	acc.RequireNoError(err, "failed to iterate account index")

	return sum, acc
}

func checkAccount(account *Account, acc *builtin.MessageAccumulator) {
	acc.Require(account.LastClaimSession <= account.SessionNum, "last claimed session %d exceeds session count %d",
		account.LastClaimSession, account.SessionNum)
	acc.Require(account.ClaimedAmount.GreaterThanEqual(big.Zero()), "claimed amount %v is negative", account.ClaimedAmount)
	acc.Require(account.ClaimedAmount.LessThanEqual(account.DepositedAmount), "claimed amount %v exceeds deposited amount %v",
		account.ClaimedAmount, account.DepositedAmount)

	acc.Require(account.PendingAmount.GreaterThanEqual(big.Zero()), "pending amount %v is negative", account.PendingAmount)
	acc.Require(account.PendingAmount.LessThanEqual(account.ClaimedAmount), "pending amount %v exceeds claimed amount %v",
		account.PendingAmount, account.ClaimedAmount)

	// Cumulative across schedules, so at least what the current schedule has paid out.
	current := big.Mul(account.ReleasePerSession, big.NewIntUnsigned(account.LastClaimSession))
	acc.Require(account.ClaimedAmount.GreaterThanEqual(current), "claimed amount %v is less than %d sessions of %v",
		account.ClaimedAmount, account.LastClaimSession, account.ReleasePerSession)
}
