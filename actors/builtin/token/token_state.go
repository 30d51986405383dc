package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
)

// State of a fungible token ledger.
// An account must be registered before it can hold a balance; registration creates a zero entry.
type State struct {
	TotalSupply abi.TokenAmount
	Balances    cid.Cid // BalanceTable (HAMT[address]TokenAmount)
}

func ConstructState(store adt.Store) (*State, error) {
	emptyBalancesCid, err := adt.StoreEmptyMap(store, adt.BalanceTableBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty balance table: %w", err)
	}
	return &State{
		TotalSupply: big.Zero(),
		Balances:    emptyBalancesCid,
	}, nil
}

func (st *State) IsRegistered(store adt.Store, a addr.Address) (bool, error) {
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return false, xerrors.Errorf("failed to load balances: %w", err)
	}
	return balances.Has(a)
}

func (st *State) BalanceOf(store adt.Store, a addr.Address) (abi.TokenAmount, error) {
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load balances: %w", err)
	}
	return balances.Get(a)
}

// Register creates an empty entry for the account. Registering twice is a no-op.
func (st *State) Register(store adt.Store, a addr.Address) error {
	return st.mutateBalances(store, func(balances *adt.BalanceTable) error {
		return balances.Register(a)
	})
}

// Mint creates new tokens in the account, registering it if necessary.
func (st *State) Mint(store adt.Store, to addr.Address, amount abi.TokenAmount) error {
	if amount.Sign() <= 0 {
		return exitcode.ErrIllegalArgument.Wrapf("mint amount %v must be positive", amount)
	}
	err := st.mutateBalances(store, func(balances *adt.BalanceTable) error {
		return balances.Add(to, amount)
	})
	if err != nil {
		return err
	}
	st.TotalSupply = big.Add(st.TotalSupply, amount)
	return nil
}

// Transfer moves tokens between two registered accounts.
func (st *State) Transfer(store adt.Store, from, to addr.Address, amount abi.TokenAmount) error {
	if amount.Sign() <= 0 {
		return exitcode.ErrIllegalArgument.Wrapf("transfer amount %v must be positive", amount)
	}
	if from == to {
		return exitcode.ErrIllegalArgument.Wrapf("sender and receiver must differ, both are %v", from)
	}
	return st.mutateBalances(store, func(balances *adt.BalanceTable) error {
		if registered, err := balances.Has(from); err != nil {
			return err
		} else if !registered {
			return exitcode.ErrNotFound.Wrapf("sender %v is not registered", from)
		}
		if registered, err := balances.Has(to); err != nil {
			return err
		} else if !registered {
			return ErrReceiverNotRegistered.Wrapf("receiver %v is not registered", to)
		}
		if err := balances.MustSubtract(from, amount); err != nil {
			return exitcode.ErrInsufficientFunds.Wrapf("failed to debit %v: %w", from, err)
		}
		return balances.Add(to, amount)
	})
}

// Refund returns up to `amount` from receiver to sender, limited by the receiver's balance.
// Returns the amount actually refunded.
func (st *State) Refund(store adt.Store, sender, receiver addr.Address, amount abi.TokenAmount) (abi.TokenAmount, error) {
	refunded := big.Zero()
	err := st.mutateBalances(store, func(balances *adt.BalanceTable) error {
		var err error
		refunded, err = balances.SubtractWithMinimum(receiver, amount, big.Zero())
		if err != nil {
			return err
		}
		if refunded.IsZero() {
			return nil
		}
		return balances.Add(sender, refunded)
	})
	return refunded, err
}

func (st *State) mutateBalances(store adt.Store, f func(balances *adt.BalanceTable) error) error {
	balances, err := adt.AsBalanceTable(store, st.Balances)
	if err != nil {
		return xerrors.Errorf("failed to load balances: %w", err)
	}
	if err := f(balances); err != nil {
		return err
	}
	if st.Balances, err = balances.Root(); err != nil {
		return xerrors.Errorf("failed to flush balances: %w", err)
	}
	return nil
}
