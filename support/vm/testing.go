package vm

import (
	"bytes"
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/exported"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/vault"
	actor_testing "github.com/brainstems/intellex-vesting-contracts/support/testing"
)

//
// Genesis like setup
//

// Creates a new VM executing the builtin actors, with an empty state tree.
func NewVMWithBuiltins(ctx context.Context, t testing.TB) *VM {
	v, err := NewVM(ctx, exported.BuiltinActors())
	require.NoError(t, err)
	return v
}

// Creates n account actors in the VM with the given balance. Returns their ID addresses.
func CreateAccounts(t testing.TB, v *VM, n int, balance abi.TokenAmount) []addr.Address {
	ids := make([]addr.Address, n)
	for i := range ids {
		pubkey := actor_testing.NewBLSAddr(t, int64(93837778+i))
		id, err := v.CreateAccount(pubkey, balance)
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

//
// Message helpers
//

// Applies a message and requires its top level invocation to succeed.
func ApplyOk(t testing.TB, v *VM, from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params cbor.Marshaler) MessageResult {
	return ApplyCode(t, v, from, to, value, method, params, exitcode.Ok)
}

// Applies a message and requires its top level invocation to exit with code.
func ApplyCode(t testing.TB, v *VM, from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params cbor.Marshaler, code exitcode.ExitCode) MessageResult {
	result, err := v.ApplyMessage(from, to, value, method, params)
	require.NoError(t, err)
	require.Equal(t, code, result.Code, "unexpected exit code, receipts: %+v", result.Receipts)
	return result
}

// Loads vault state in its current layout.
func GetVaultState(t testing.TB, v *VM, a addr.Address) *vault.State {
	var vs vault.VState
	require.NoError(t, v.GetState(a, &vs))
	st, err := vs.Current(v.Store())
	require.NoError(t, err)
	return st
}

// Reads a token balance from token state.
func GetTokenBalance(t testing.TB, v *VM, tokenAddr, account addr.Address) abi.TokenAmount {
	var st token.State
	require.NoError(t, v.GetState(tokenAddr, &st))
	balance, err := st.BalanceOf(v.Store(), account)
	require.NoError(t, err)
	return balance
}

// Requires every actor and cross-actor invariant to hold.
func AssertStateInvariants(t testing.TB, v *VM) {
	_, msgs, err := v.CheckStateInvariants()
	require.NoError(t, err)
	assert.True(t, msgs.IsEmpty(), "%v", msgs.Messages())
}

//
// Invocation expectations
//

// ExpectReceipt describes one invocation expected in a message result.
// To, Method and Code are always matched; the rest only when set.
type ExpectReceipt struct {
	To       addr.Address
	Method   abi.MethodNum
	Code     exitcode.ExitCode
	Callback bool

	From  *addr.Address
	Value *abi.TokenAmount
	Ret   cbor.Marshaler
}

func ExpectAddress(a addr.Address) *addr.Address              { return &a }
func ExpectAttoToken(amount abi.TokenAmount) *abi.TokenAmount { return &amount }

// Matches the receipts of a result, in execution order, against expectations.
func AssertReceipts(t testing.TB, result MessageResult, expected ...ExpectReceipt) {
	require.Len(t, result.Receipts, len(expected), "unexpected receipts: %+v", result.Receipts)
	for i, e := range expected {
		rcpt := result.Receipts[i]
		require.Equal(t, e.To, rcpt.To, "receipt %d: unexpected `to` address", i)
		require.Equal(t, e.Method, rcpt.Method, "receipt %d: unexpected method", i)
		assert.Equal(t, e.Code, rcpt.Code, "receipt %d [%v:%d]: unexpected exit code (%s)", i, rcpt.To, rcpt.Method, rcpt.Error)
		assert.Equal(t, e.Callback, rcpt.Callback, "receipt %d [%v:%d]: unexpected callback flag", i, rcpt.To, rcpt.Method)
		if e.From != nil {
			assert.Equal(t, *e.From, rcpt.From, "receipt %d: unexpected from address", i)
		}
		if e.Value != nil {
			assert.Equal(t, *e.Value, rcpt.Value, "receipt %d: unexpected value", i)
		}
		if e.Ret != nil {
			// match by cbor encoding to avoid inconsistencies in internal representations of effectively equal objects
			var buf bytes.Buffer
			require.NoError(t, e.Ret.MarshalCBOR(&buf))
			assert.Equal(t, buf.Bytes(), rcpt.Ret, "receipt %d [%v:%d]: unexpected return value", i, rcpt.To, rcpt.Method)
		}
	}
}
