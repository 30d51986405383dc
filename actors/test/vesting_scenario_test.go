package test

import (
	"bytes"
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/exported"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/vault"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
	tutil "github.com/brainstems/intellex-vesting-contracts/support/testing"
	"github.com/brainstems/intellex-vesting-contracts/support/vm"
)

func TestVestingScenario(t *testing.T) {
	env := setupVesting(t)
	env.addAccount(t, env.alice, T+10, 10, 4, 100)

	result := vm.ApplyOk(t, env.v, env.owner, env.token, token.TransferDeposit, builtin.MethodsToken.TransferCall, &token.TransferCallParams{
		To:     env.vault,
		Amount: abi.NewTokenAmount(400),
		Msg:    env.alice.String(),
	})
	vm.AssertReceipts(t, result,
		vm.ExpectReceipt{To: env.token, Method: builtin.MethodsToken.TransferCall, Code: exitcode.Ok},
		vm.ExpectReceipt{To: env.vault, Method: builtin.MethodsVault.OnTokenReceived, Code: exitcode.Ok,
			From: vm.ExpectAddress(env.token), Ret: &token.OnTransferReturn{Unused: big.Zero()}},
		vm.ExpectReceipt{To: env.token, Method: builtin.MethodsToken.ResolveTransfer, Code: exitcode.Ok, Callback: true,
			Ret: &token.ResolveTransferReturn{Used: abi.NewTokenAmount(400)}},
	)
	assert.Equal(t, int64(400), env.tokenBalance(t, env.vault))

	// The first session unlocks one interval after the start.
	env.setTime(t, T+10)
	result = env.claim(t, env.alice)
	assert.True(t, decodeBool(t, result))
	assert.Len(t, result.Receipts, 1)

	env.setTime(t, T+20)
	result = env.claim(t, env.alice)
	assert.True(t, decodeBool(t, result))
	vm.AssertReceipts(t, result,
		vm.ExpectReceipt{To: env.vault, Method: builtin.MethodsVault.Claim, Code: exitcode.Ok},
		vm.ExpectReceipt{To: env.token, Method: builtin.MethodsToken.Transfer, Code: exitcode.Ok,
			From: vm.ExpectAddress(env.vault), Value: vm.ExpectAttoToken(vault.TransferDeposit)},
		vm.ExpectReceipt{To: env.vault, Method: builtin.MethodsVault.AfterTransfer, Code: exitcode.Ok, Callback: true},
	)
	assert.Contains(t, result.Logs(), "Memo: Claiming unlocked 100 balance from "+env.vault.String())
	assert.Contains(t, result.Logs(), "Account claim succeed, account is "+env.alice.String()+", balance is 100")
	assert.Equal(t, int64(100), env.tokenBalance(t, env.alice))

	info := env.getAccount(t, env.alice)
	assert.Equal(t, uint64(1), info.LastClaimSession)
	assert.Equal(t, int64(100), info.ClaimedAmount.Int64())

	env.setTime(t, T+35)
	assert.Equal(t, int64(100), env.getAccount(t, env.alice).UnclaimedAmount.Int64())

	env.setTime(t, T+50)
	assert.Equal(t, int64(300), env.getAccount(t, env.alice).UnclaimedAmount.Int64())
	result = env.claim(t, env.alice)
	assert.True(t, decodeBool(t, result))
	assert.Equal(t, int64(400), env.tokenBalance(t, env.alice))
	assert.Equal(t, int64(0), env.tokenBalance(t, env.vault))

	// Fully claimed.
	result = env.claim(t, env.alice)
	assert.False(t, decodeBool(t, result))
	assert.Len(t, result.Receipts, 1)

	st := vm.GetVaultState(t, env.v, env.vault)
	assert.Equal(t, int64(400), st.TotalBalance.Int64())
	assert.Equal(t, int64(400), st.ClaimedBalance.Int64())

	balance, err := env.v.GetBalance(env.vault)
	require.NoError(t, err)
	assert.Equal(t, int64(8), balance.Int64(), "each claim transfer pays one deposit")
	vm.AssertStateInvariants(t, env.v)
}

func TestClaimRollback(t *testing.T) {
	env := setupVesting(t)
	// Bob is not registered with the token, so transfers to bob fail.
	env.addAccount(t, env.bob, T, 10, 2, 100)
	env.fund(t, env.bob, 200)

	env.setTime(t, T+20)
	result := env.claim(t, env.bob)
	assert.True(t, decodeBool(t, result))
	vm.AssertReceipts(t, result,
		vm.ExpectReceipt{To: env.vault, Method: builtin.MethodsVault.Claim, Code: exitcode.Ok},
		vm.ExpectReceipt{To: env.token, Method: builtin.MethodsToken.Transfer, Code: token.ErrReceiverNotRegistered},
		vm.ExpectReceipt{To: env.vault, Method: builtin.MethodsVault.AfterTransfer, Code: exitcode.Ok, Callback: true,
			Ret: cbgBool(false)},
	)
	assertLogContains(t, result, "Account claim failed and rollback, account is "+env.bob.String()+", balance is 200")

	info := env.getAccount(t, env.bob)
	assert.Equal(t, uint64(0), info.LastClaimSession)
	assert.True(t, info.ClaimedAmount.IsZero())
	assert.Equal(t, int64(200), info.UnclaimedAmount.Int64())
	assert.True(t, vm.GetVaultState(t, env.v, env.vault).ClaimedBalance.IsZero())

	// The failed transfer's deposit is returned to the vault.
	balance, err := env.v.GetBalance(env.vault)
	require.NoError(t, err)
	assert.Equal(t, vaultGas.Int64(), balance.Int64())
	vm.AssertStateInvariants(t, env.v)

	env.register(t, env.bob)
	result = env.claim(t, env.bob)
	assert.True(t, decodeBool(t, result))
	assert.Equal(t, int64(200), env.tokenBalance(t, env.bob))
	assert.Equal(t, int64(200), vm.GetVaultState(t, env.v, env.vault).ClaimedBalance.Int64())
	vm.AssertStateInvariants(t, env.v)
}

func TestRenewalWaitsForFailedClaim(t *testing.T) {
	env := setupVesting(t)
	// Bob is not registered with the token, so the transfer of his final claim fails.
	env.addAccount(t, env.bob, T, 10, 2, 100)
	env.fund(t, env.bob, 200)
	env.setTime(t, T+21)

	renew := &vault.AddAccountParams{
		Account:           env.bob,
		StartTimestamp:    T + 100,
		SessionInterval:   10,
		SessionNum:        3,
		ReleasePerSession: abi.NewTokenAmount(70),
	}
	// The renewal runs after the claim commits and before its transfer settles.
	results, err := env.v.ApplyMessages(
		vm.Message{From: env.bob, To: env.vault, Value: big.Zero(), Method: builtin.MethodsVault.Claim, Params: &vault.ClaimParams{}},
		vm.Message{From: env.owner, To: env.vault, Value: big.Zero(), Method: builtin.MethodsVault.AddAccount, Params: renew},
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, exitcode.Ok, results[0].Code)
	assert.Equal(t, vault.ErrAccountNeedsClaim, results[1].Code)
	vm.AssertReceipts(t, results[0],
		vm.ExpectReceipt{To: env.vault, Method: builtin.MethodsVault.Claim, Code: exitcode.Ok},
		vm.ExpectReceipt{To: env.token, Method: builtin.MethodsToken.Transfer, Code: token.ErrReceiverNotRegistered},
		vm.ExpectReceipt{To: env.vault, Method: builtin.MethodsVault.AfterTransfer, Code: exitcode.Ok, Callback: true,
			Ret: cbgBool(false)},
	)

	// The failed claim is reverted against the schedule it was made under.
	info := env.getAccount(t, env.bob)
	assert.Equal(t, uint64(2), info.SessionNum)
	assert.Equal(t, uint64(0), info.LastClaimSession)
	assert.True(t, info.ClaimedAmount.IsZero())
	assert.True(t, info.PendingAmount.IsZero())
	assert.Equal(t, int64(200), info.UnclaimedAmount.Int64())
	assert.True(t, vm.GetVaultState(t, env.v, env.vault).ClaimedBalance.IsZero())
	vm.AssertStateInvariants(t, env.v)

	vm.ApplyCode(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.AddAccount, renew, vault.ErrAccountNeedsClaim)

	env.register(t, env.bob)
	env.claim(t, env.bob)
	assert.Equal(t, int64(200), env.tokenBalance(t, env.bob))

	env.addAccount(t, env.bob, T+100, 10, 3, 70)
	env.fund(t, env.bob, 210)
	info = env.getAccount(t, env.bob)
	assert.Equal(t, int64(200), info.ClaimedAmount.Int64())
	assert.Equal(t, int64(410), info.DepositedAmount.Int64())
	vm.AssertStateInvariants(t, env.v)
}

func TestPubkeyAddressesRejected(t *testing.T) {
	env := setupVesting(t)
	carolKey := tutil.NewBLSAddr(t, 1)
	carol, err := env.v.CreateAccount(carolKey, abi.NewTokenAmount(1_000))
	require.NoError(t, err)
	env.register(t, carol)

	vm.ApplyCode(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.AddAccount, &vault.AddAccountParams{
		Account: carolKey, StartTimestamp: T, SessionInterval: 10, SessionNum: 1, ReleasePerSession: abi.NewTokenAmount(100),
	}, exitcode.ErrIllegalArgument)
	vm.ApplyCode(t, env.v, env.owner, env.vault, vault.TransferDeposit, builtin.MethodsVault.SetOwner,
		&vault.SetOwnerParams{Owner: carolKey}, exitcode.ErrIllegalArgument)

	// Keyed by ID address, the account is reachable by carol's own claim.
	env.addAccount(t, carol, T, 10, 1, 100)
	assert.Equal(t, vault.ErrInvalidTargetAccount, env.deposit(t, env.owner, env.token, carolKey.String(), 100))
	env.fund(t, carol, 100)

	env.setTime(t, T+10)
	assert.True(t, decodeBool(t, env.claim(t, carol)))
	assert.Equal(t, int64(100), env.tokenBalance(t, carol))
	assert.Equal(t, env.owner, decodeAddress(t, vm.ApplyOk(t, env.v, env.alice, env.vault, big.Zero(), builtin.MethodsVault.GetOwner, nil)))
	vm.AssertStateInvariants(t, env.v)
}

func TestInFlightClaim(t *testing.T) {
	env := setupVesting(t)
	env.addAccount(t, env.alice, T, 10, 4, 100)
	env.fund(t, env.alice, 400)
	env.setTime(t, T+20)

	claim := vm.Message{
		From:   env.alice,
		To:     env.vault,
		Value:  big.Zero(),
		Method: builtin.MethodsVault.Claim,
		Params: &vault.ClaimParams{},
	}
	// The second claim runs while the first one's transfer is pending and finds nothing unclaimed.
	results, err := env.v.ApplyMessages(claim, claim)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Len(t, results[0].Receipts, 3)
	assert.Len(t, results[1].Receipts, 1)
	assert.True(t, decodeBool(t, results[1]))

	assert.Equal(t, int64(200), env.tokenBalance(t, env.alice))
	assert.Equal(t, int64(200), vm.GetVaultState(t, env.v, env.vault).ClaimedBalance.Int64())
	vm.AssertStateInvariants(t, env.v)
}

func TestDepositRejected(t *testing.T) {
	env := setupVesting(t)
	env.addAccount(t, env.alice, T, 10, 4, 100)

	otherToken, result, err := env.v.CreateActor(env.owner, builtin.TokenActorCodeID, big.Zero(), nil)
	require.NoError(t, err)
	require.Equal(t, exitcode.Ok, result.Code)
	vm.ApplyOk(t, env.v, env.owner, otherToken, big.Zero(), builtin.MethodsToken.Mint, &token.MintParams{Amount: abi.NewTokenAmount(1_000)})
	vm.ApplyOk(t, env.v, env.owner, otherToken, big.Zero(), builtin.MethodsToken.Register, &token.RegisterParams{Account: env.vault})

	for _, tc := range []struct {
		desc   string
		token  addr.Address
		msg    string
		amount int64
		code   exitcode.ExitCode
	}{
		{"wrong token", otherToken, env.alice.String(), 400, vault.ErrWrongToken},
		{"missing account", env.token, "", 400, vault.ErrMissingTargetAccount},
		{"malformed account", env.token, "not-an-address", 400, vault.ErrInvalidTargetAccount},
		{"vault itself", env.token, env.vault.String(), 400, vault.ErrInvalidTargetAccount},
		{"unknown account", env.token, env.bob.String(), 400, exitcode.ErrNotFound},
		{"amount mismatch", env.token, env.alice.String(), 300, vault.ErrAmountMismatch},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			before := vm.GetTokenBalance(t, env.v, tc.token, env.owner)

			code := env.deposit(t, env.owner, tc.token, tc.msg, tc.amount)
			assert.Equal(t, tc.code, code)

			// The token refunds the whole amount when the hook fails.
			assert.True(t, before.Equals(vm.GetTokenBalance(t, env.v, tc.token, env.owner)))
			assert.True(t, vm.GetVaultState(t, env.v, env.vault).TotalBalance.IsZero())
			vm.AssertStateInvariants(t, env.v)
		})
	}

	t.Run("account funded once", func(t *testing.T) {
		env.fund(t, env.alice, 400)
		code := env.deposit(t, env.owner, env.token, env.alice.String(), 400)
		assert.Equal(t, vault.ErrAccountAlreadyFunded, code)
		assert.Equal(t, int64(400), vm.GetVaultState(t, env.v, env.vault).TotalBalance.Int64())
		assert.Equal(t, int64(400), env.tokenBalance(t, env.vault))
		vm.AssertStateInvariants(t, env.v)
	})
}

func TestAccountRenewal(t *testing.T) {
	env := setupVesting(t)
	env.addAccount(t, env.alice, T, 10, 2, 100)
	env.fund(t, env.alice, 200)

	env.setTime(t, T+15)
	vm.ApplyCode(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.AddAccount, &vault.AddAccountParams{
		Account: env.alice, StartTimestamp: T + 20, SessionInterval: 10, SessionNum: 1, ReleasePerSession: abi.NewTokenAmount(50),
	}, vault.ErrAccountInSession)

	env.setTime(t, T+25)
	vm.ApplyCode(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.AddAccount, &vault.AddAccountParams{
		Account: env.alice, StartTimestamp: T + 30, SessionInterval: 10, SessionNum: 1, ReleasePerSession: abi.NewTokenAmount(50),
	}, vault.ErrAccountNeedsClaim)

	env.claim(t, env.alice)
	env.addAccount(t, env.alice, T+30, 10, 1, 50)
	env.fund(t, env.alice, 50)

	env.setTime(t, T+40)
	env.claim(t, env.alice)
	info := env.getAccount(t, env.alice)
	assert.Equal(t, int64(250), info.ClaimedAmount.Int64())
	assert.Equal(t, int64(250), info.DepositedAmount.Int64())
	assert.Equal(t, int64(250), env.tokenBalance(t, env.alice))

	result := vm.ApplyOk(t, env.v, env.bob, env.vault, big.Zero(), builtin.MethodsVault.ListAccounts, &vault.ListAccountsParams{})
	var list vault.ListAccountsReturn
	require.NoError(t, result.Unmarshal(&list))
	require.Len(t, list.Accounts, 1)
	assert.Equal(t, env.alice, list.Accounts[0].Account)
	vm.AssertStateInvariants(t, env.v)
}

func TestOwnerHandover(t *testing.T) {
	env := setupVesting(t)

	vm.ApplyCode(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.SetOwner,
		&vault.SetOwnerParams{Owner: env.bob}, exitcode.ErrIllegalArgument)
	vm.ApplyOk(t, env.v, env.owner, env.vault, vault.TransferDeposit, builtin.MethodsVault.SetOwner, &vault.SetOwnerParams{Owner: env.bob})

	result := vm.ApplyOk(t, env.v, env.alice, env.vault, big.Zero(), builtin.MethodsVault.GetOwner, nil)
	assert.Equal(t, env.bob.Bytes(), decodeAddress(t, result).Bytes())

	vm.ApplyCode(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.AddAccount, &vault.AddAccountParams{
		Account: env.alice, StartTimestamp: T, SessionInterval: 10, SessionNum: 1, ReleasePerSession: abi.NewTokenAmount(1),
	}, exitcode.ErrForbidden)
	vm.ApplyOk(t, env.v, env.bob, env.vault, big.Zero(), builtin.MethodsVault.AddAccount, &vault.AddAccountParams{
		Account: env.alice, StartTimestamp: T, SessionInterval: 10, SessionNum: 1, ReleasePerSession: abi.NewTokenAmount(1),
	})

	result = vm.ApplyOk(t, env.v, env.alice, env.vault, big.Zero(), builtin.MethodsVault.ContractMetadata, nil)
	var meta vault.ContractInfo
	require.NoError(t, result.Unmarshal(&meta))
	assert.Equal(t, vault.ContractVersion, meta.Version)
	assert.Equal(t, env.bob, meta.Owner)
	assert.Equal(t, env.token, meta.Token)
	vm.AssertStateInvariants(t, env.v)
}

func TestMigrateVersion0State(t *testing.T) {
	env := setupVesting(t)
	store := env.v.Store()

	accounts, err := adt.MakeEmptyMap(store, vault.AccountsHamtBitwidth)
	require.NoError(t, err)
	require.NoError(t, accounts.Put(adt.AddrKey(env.alice), &vault.AccountV0{
		StartTimestamp:  T + 10,
		ReleaseInterval: 10,
		ReleaseRounds:   4,
		LastClaimRound:  1,
		ReleasePerRound: abi.NewTokenAmount(100),
	}))
	accountsRoot, err := accounts.Root()
	require.NoError(t, err)
	require.NoError(t, env.v.SetActorState(env.vault, vault.NewVStateV0(&vault.StateV0{
		Owner:          env.owner,
		Token:          env.token,
		ClaimedBalance: abi.NewTokenAmount(100),
		Accounts:       accountsRoot,
	})))
	// Backs the 300 still owed to alice.
	vm.ApplyOk(t, env.v, env.owner, env.token, token.TransferDeposit, builtin.MethodsToken.Transfer, &token.TransferParams{
		To:     env.vault,
		Amount: abi.NewTokenAmount(300),
	})

	result := vm.ApplyOk(t, env.v, env.vault, env.vault, big.Zero(), builtin.MethodsVault.Migrate, nil)
	assert.Contains(t, result.Logs(), "Migrated state from version 0 to 1")
	var vs vault.VState
	require.NoError(t, env.v.GetState(env.vault, &vs))
	assert.Equal(t, vault.CurrentStateVersion, vs.Version)
	vm.AssertStateInvariants(t, env.v)

	// Only the vault may migrate itself.
	vm.ApplyCode(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.Migrate, nil, exitcode.ErrForbidden)

	env.setTime(t, T+50)
	env.claim(t, env.alice)
	assert.Equal(t, int64(300), env.tokenBalance(t, env.alice))
	st := vm.GetVaultState(t, env.v, env.vault)
	assert.Equal(t, int64(400), st.TotalBalance.Int64())
	assert.Equal(t, int64(400), st.ClaimedBalance.Int64())
	vm.AssertStateInvariants(t, env.v)
}

func TestVaultLogLevel(t *testing.T) {
	env := setupVesting(t)
	env.addAccount(t, env.alice, T, 10, 1, 100)
	env.fund(t, env.alice, 100)
	env.setTime(t, T+10)

	builtin.SetActorsLogLevel(rtt.DEBUG, vault.Actor{})
	defer builtin.ResetActorsLogLevel(vault.Actor{})

	result := env.claim(t, env.alice)
	assert.True(t, decodeBool(t, result))
	for _, line := range result.Logs() {
		assert.NotContains(t, line, "Account claim succeed")
	}
}

func TestExportAndResume(t *testing.T) {
	env := setupVesting(t)
	env.addAccount(t, env.alice, T, 10, 4, 100)
	env.fund(t, env.alice, 400)
	env.setTime(t, T+20)
	env.claim(t, env.alice)

	var buf bytes.Buffer
	require.NoError(t, env.v.ExportCAR(&buf))
	loaded, err := vm.LoadVM(context.Background(), exported.BuiltinActors(), &buf)
	require.NoError(t, err)
	vm.AssertStateInvariants(t, loaded)

	root, err := env.v.StateRoot()
	require.NoError(t, err)
	loadedRoot, err := loaded.StateRoot()
	require.NoError(t, err)
	assert.Equal(t, root, loadedRoot)

	env.v = loaded
	env.setTime(t, T+40)
	env.claim(t, env.alice)
	assert.Equal(t, int64(400), env.tokenBalance(t, env.alice))
	vm.AssertStateInvariants(t, loaded)
}
