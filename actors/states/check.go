package states

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/account"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/vault"
)

// Summary collects the per-actor summaries produced while checking a state tree.
type Summary struct {
	Accounts map[addr.Address]*account.StateSummary
	Vaults   map[addr.Address]*vault.StateSummary
	Tokens   map[addr.Address]*token.StateSummary
}

// Within this code, Go errors are not expected, but are often converted to messages so that execution
// can continue to find more errors rather than fail with no insight.
// Only errors that are particularly troublesome to recover from should propagate as Go errors.
func CheckStateInvariants(tree *Tree, expectedBalanceTotal abi.TokenAmount) (*Summary, *builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	totalBalance := big.Zero()
	summary := &Summary{
		Accounts: map[addr.Address]*account.StateSummary{},
		Vaults:   map[addr.Address]*vault.StateSummary{},
		Tokens:   map[addr.Address]*token.StateSummary{},
	}
	vaultStates := map[addr.Address]*vault.State{}
	tokenStates := map[addr.Address]*token.State{}

	if err := tree.ForEach(func(key addr.Address, actor *Actor) error {
		acc := acc.WithPrefix("%v ", key) // Intentional shadow
		if key.Protocol() != addr.ID {
			acc.Addf("unexpected address protocol in state tree root: %v", key)
		}
		totalBalance = big.Add(totalBalance, actor.Balance)

		switch actor.Code {
		case builtin.AccountActorCodeID:
			var st account.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			sum, msgs := account.CheckStateInvariants(&st, key)
			acc.WithPrefix("account: ").AddAll(msgs)
			summary.Accounts[key] = sum

		case builtin.VaultActorCodeID:
			var vs vault.VState
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &vs); err != nil {
				return err
			}
			acc.Require(vs.Version == vault.CurrentStateVersion, "vault: state version %d is not current", vs.Version)
			st, err := vs.Current(tree.Store)
			if err != nil {
				acc.Addf("vault: %v", err)
				return nil
			}
			sum, msgs := vault.CheckStateInvariants(st, tree.Store)
			acc.WithPrefix("vault: ").AddAll(msgs)
			summary.Vaults[key] = sum
			vaultStates[key] = st

		case builtin.TokenActorCodeID:
			var st token.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			sum, msgs := token.CheckStateInvariants(&st, tree.Store)
			acc.WithPrefix("token: ").AddAll(msgs)
			summary.Tokens[key] = sum
			tokenStates[key] = &st

		default:
			return xerrors.Errorf("unexpected actor code CID %v for address %v", actor.Code, key)
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}

	//
	// Perform cross-actor checks from state summaries here.
	//

	CheckVaultsAgainstTokens(tree, acc, vaultStates, tokenStates)

	if !totalBalance.Equals(expectedBalanceTotal) {
		acc.Addf("total native balance is %v, expected %v", totalBalance, expectedBalanceTotal)
	}

	return summary, acc, nil
}

// Every vault must hold at least its unclaimed deposits in the token it is bound to.
func CheckVaultsAgainstTokens(tree *Tree, acc *builtin.MessageAccumulator, vaults map[addr.Address]*vault.State, tokens map[addr.Address]*token.State) {
	for vaultAddr, st := range vaults { // nolint:nomaprange
		tokenSt, ok := tokens[st.Token]
		if !ok {
			acc.Addf("vault %v is bound to %v which is not a token actor", vaultAddr, st.Token)
			continue
		}
		balance, err := tokenSt.BalanceOf(tree.Store, vaultAddr)
		if err != nil {
			acc.Addf("failed to read token balance of vault %v: %v", vaultAddr, err)
			continue
		}
		held := big.Sub(st.TotalBalance, st.ClaimedBalance)
		acc.Require(balance.GreaterThanEqual(held), "vault %v holds %v tokens but owes %v to its accounts",
			vaultAddr, balance, held)
	}
}
