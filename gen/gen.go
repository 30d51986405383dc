package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/account"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/vault"
	"github.com/brainstems/intellex-vesting-contracts/actors/states"
)

func main() {
	// State tree
	if err := gen.WriteTupleEncodersToFile("./actors/states/cbor_gen.go", "states",
		states.Actor{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/account/cbor_gen.go", "account",
		// actor state
		account.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/token/cbor_gen.go", "token",
		// actor state
		token.State{},
		// method params and returns
		token.MintParams{},
		token.RegisterParams{},
		token.TransferParams{},
		token.TransferCallParams{},
		token.OnTransferParams{},
		token.OnTransferReturn{},
		token.ResolveTransferParams{},
		token.ResolveTransferReturn{},
		token.BalanceOfParams{},
	); err != nil {
		panic(err)
	}

	// VState is encoded by hand; it selects the body layout by version.
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vault/cbor_gen.go", "vault",
		// actor state
		vault.State{},
		vault.Account{},
		vault.StateV0{},
		vault.AccountV0{},
		// method params and returns
		vault.ConstructorParams{},
		vault.ClaimParams{},
		vault.AfterTransferParams{},
		vault.AddAccountParams{},
		vault.SetOwnerParams{},
		vault.ContractInfo{},
		vault.GetAccountParams{},
		vault.GetAccountReturn{},
		vault.AccountInfo{},
		vault.ListAccountsParams{},
		vault.ListAccountsReturn{},
	); err != nil {
		panic(err)
	}
}
