package test

import (
	"context"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/vault"
	"github.com/brainstems/intellex-vesting-contracts/support/vm"
)

// Genesis time of the scenarios, in seconds.
const T = uint64(1_600_000_000)

// Native balance given to the vault at creation, paying the deposits of its transfers.
var vaultGas = abi.NewTokenAmount(10)

type vestingEnv struct {
	v     *vm.VM
	owner addr.Address
	alice addr.Address
	bob   addr.Address

	token addr.Address
	vault addr.Address
}

// Sets up an owner with minted tokens, a token and a vault bound to it, with the vault and alice
// registered for transfers. Bob is left unregistered.
func setupVesting(t *testing.T) *vestingEnv {
	ctx := context.Background()
	v := vm.NewVMWithBuiltins(ctx, t)
	require.NoError(t, v.SetTimestamp(vault.ToNano(T)))
	addrs := vm.CreateAccounts(t, v, 3, abi.NewTokenAmount(1_000))
	env := &vestingEnv{v: v, owner: addrs[0], alice: addrs[1], bob: addrs[2]}

	var result vm.MessageResult
	var err error
	env.token, result, err = v.CreateActor(env.owner, builtin.TokenActorCodeID, big.Zero(), nil)
	require.NoError(t, err)
	require.Equal(t, exitcode.Ok, result.Code)

	env.vault, result, err = v.CreateActor(env.owner, builtin.VaultActorCodeID, vaultGas, &vault.ConstructorParams{
		Owner: env.owner,
		Token: env.token,
	})
	require.NoError(t, err)
	require.Equal(t, exitcode.Ok, result.Code)

	vm.ApplyOk(t, v, env.owner, env.token, big.Zero(), builtin.MethodsToken.Mint, &token.MintParams{Amount: abi.NewTokenAmount(10_000)})
	env.register(t, env.vault)
	env.register(t, env.alice)
	return env
}

func (env *vestingEnv) register(t *testing.T, a addr.Address) {
	vm.ApplyOk(t, env.v, env.owner, env.token, big.Zero(), builtin.MethodsToken.Register, &token.RegisterParams{Account: a})
}

func (env *vestingEnv) addAccount(t *testing.T, a addr.Address, start, interval, num uint64, release int64) {
	result := vm.ApplyOk(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.AddAccount, &vault.AddAccountParams{
		Account:           a,
		StartTimestamp:    start,
		SessionInterval:   interval,
		SessionNum:        num,
		ReleasePerSession: abi.NewTokenAmount(release),
	})
	require.True(t, decodeBool(t, result))
}

// Deposits tokens into the vault for an account, returning the code of the vault's transfer hook.
func (env *vestingEnv) deposit(t *testing.T, from addr.Address, tokenAddr addr.Address, msg string, amount int64) exitcode.ExitCode {
	result := vm.ApplyOk(t, env.v, from, tokenAddr, token.TransferDeposit, builtin.MethodsToken.TransferCall, &token.TransferCallParams{
		To:     env.vault,
		Amount: abi.NewTokenAmount(amount),
		Msg:    msg,
	})
	rcpt, found := result.Receipt(env.vault, builtin.MethodsVault.OnTokenReceived)
	require.True(t, found)
	return rcpt.Code
}

func (env *vestingEnv) fund(t *testing.T, a addr.Address, amount int64) {
	require.Equal(t, exitcode.Ok, env.deposit(t, env.owner, env.token, a.String(), amount))
}

func (env *vestingEnv) claim(t *testing.T, caller addr.Address) vm.MessageResult {
	return vm.ApplyOk(t, env.v, caller, env.vault, big.Zero(), builtin.MethodsVault.Claim, &vault.ClaimParams{})
}

func (env *vestingEnv) setTime(t *testing.T, ts uint64) {
	require.NoError(t, env.v.SetTimestamp(vault.ToNano(ts)))
}

func (env *vestingEnv) getAccount(t *testing.T, a addr.Address) *vault.AccountInfo {
	result := vm.ApplyOk(t, env.v, env.owner, env.vault, big.Zero(), builtin.MethodsVault.GetAccount, &vault.GetAccountParams{Account: a})
	var ret vault.GetAccountReturn
	require.NoError(t, result.Unmarshal(&ret))
	require.True(t, ret.Found)
	return ret.Info
}

func (env *vestingEnv) tokenBalance(t *testing.T, a addr.Address) int64 {
	return vm.GetTokenBalance(t, env.v, env.token, a).Int64()
}

func decodeBool(t *testing.T, result vm.MessageResult) bool {
	var ret cbg.CborBool
	require.NoError(t, result.Unmarshal(&ret))
	return bool(ret)
}

func decodeAddress(t *testing.T, result vm.MessageResult) addr.Address {
	var ret addr.Address
	require.NoError(t, result.Unmarshal(&ret))
	return ret
}

func cbgBool(b bool) *cbg.CborBool {
	ret := cbg.CborBool(b)
	return &ret
}

func assertLogContains(t *testing.T, result vm.MessageResult, substr string) {
	for _, line := range result.Logs() {
		if strings.Contains(line, substr) {
			return
		}
	}
	assert.Fail(t, "missing log line", "no log contains %q in %v", substr, result.Logs())
}
