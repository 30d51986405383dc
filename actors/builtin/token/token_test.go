package token_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
	"github.com/brainstems/intellex-vesting-contracts/support/mock"
	tutil "github.com/brainstems/intellex-vesting-contracts/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, token.Actor{})
}

func TestTransfer(t *testing.T) {
	tokenAddr := tutil.NewIDAddr(t, 100)
	alice := tutil.NewIDAddr(t, 101)
	bob := tutil.NewIDAddr(t, 102)
	builder := mock.NewBuilder(context.Background(), tokenAddr).WithCaller(alice)

	setup := func(t *testing.T) (*mock.Runtime, *tokenHarness) {
		rt := builder.Build(t)
		h := &tokenHarness{t: t}
		h.constructAndVerify(rt)
		h.mint(rt, alice, 1000)
		return rt, h
	}

	t.Run("moves tokens between registered accounts", func(t *testing.T) {
		rt, h := setup(t)
		h.register(rt, bob)

		h.transfer(rt, alice, bob, 300, "rent")
		assert.Equal(t, int64(700), h.balanceOf(rt, alice))
		assert.Equal(t, int64(300), h.balanceOf(rt, bob))
		rt.ExpectLogsContain("Memo: rent")
		h.checkState(rt)
	})

	t.Run("requires exactly one attoToken", func(t *testing.T) {
		rt, h := setup(t)
		h.register(rt, bob)

		rt.SetCaller(alice)
		rt.SetReceived(big.Zero())
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(token.Actor{}.Transfer, &token.TransferParams{To: bob, Amount: abi.NewTokenAmount(1)})
		})
		rt.Verify()
	})

	t.Run("rejects unregistered receiver", func(t *testing.T) {
		rt, _ := setup(t)

		rt.SetCaller(alice)
		rt.SetReceived(token.TransferDeposit)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortContainsMessage(token.ErrReceiverNotRegistered, "not registered", func() {
			rt.Call(token.Actor{}.Transfer, &token.TransferParams{To: bob, Amount: abi.NewTokenAmount(1)})
		})
		rt.Verify()
	})

	t.Run("rejects overdraft", func(t *testing.T) {
		rt, h := setup(t)
		h.register(rt, bob)

		rt.SetCaller(alice)
		rt.SetReceived(token.TransferDeposit)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(token.Actor{}.Transfer, &token.TransferParams{To: bob, Amount: abi.NewTokenAmount(1001)})
		})
		rt.Verify()
		assert.Equal(t, int64(1000), h.balanceOf(rt, alice))
	})
}

func TestTransferCall(t *testing.T) {
	tokenAddr := tutil.NewIDAddr(t, 100)
	alice := tutil.NewIDAddr(t, 101)
	receiver := tutil.NewIDAddr(t, 103)
	builder := mock.NewBuilder(context.Background(), tokenAddr).WithCaller(alice)

	setup := func(t *testing.T) (*mock.Runtime, *tokenHarness) {
		rt := builder.Build(t)
		h := &tokenHarness{t: t}
		h.constructAndVerify(rt)
		h.mint(rt, alice, 1000)
		h.register(rt, receiver)

		rt.SetCaller(alice)
		rt.SetReceived(token.TransferDeposit)
		rt.ExpectValidateCallerAny()
		rt.ExpectSendThen(receiver, builtin.MethodOnTokenReceived,
			&token.OnTransferParams{Sender: alice, Amount: abi.NewTokenAmount(400), Msg: "hello"}, big.Zero(),
			builtin.MethodsToken.ResolveTransfer,
			&token.ResolveTransferParams{Sender: alice, Receiver: receiver, Amount: abi.NewTokenAmount(400)})
		rt.Call(token.Actor{}.TransferCall, &token.TransferCallParams{
			To:     receiver,
			Amount: abi.NewTokenAmount(400),
			Msg:    "hello",
		})
		rt.Verify()
		assert.Equal(t, int64(400), h.balanceOf(rt, receiver))
		return rt, h
	}

	resolve := func(rt *mock.Runtime) *token.ResolveTransferReturn {
		rt.SetCaller(tokenAddr)
		rt.SetReceived(big.Zero())
		rt.ExpectValidateCallerAddr(tokenAddr)
		ret := rt.Call(token.Actor{}.ResolveTransfer, &token.ResolveTransferParams{
			Sender:   alice,
			Receiver: receiver,
			Amount:   abi.NewTokenAmount(400),
		}).(*token.ResolveTransferReturn)
		rt.Verify()
		return ret
	}

	t.Run("keeps the transfer when the receiver uses everything", func(t *testing.T) {
		rt, h := setup(t)
		rt.SetPromiseResult(exitcode.Ok, &token.OnTransferReturn{Unused: big.Zero()})

		ret := resolve(rt)
		assert.Equal(t, int64(400), ret.Used.Int64())
		assert.Equal(t, int64(600), h.balanceOf(rt, alice))
		h.checkState(rt)
	})

	t.Run("refunds the unused part", func(t *testing.T) {
		rt, h := setup(t)
		rt.SetPromiseResult(exitcode.Ok, &token.OnTransferReturn{Unused: abi.NewTokenAmount(150)})

		ret := resolve(rt)
		assert.Equal(t, int64(250), ret.Used.Int64())
		assert.Equal(t, int64(750), h.balanceOf(rt, alice))
		assert.Equal(t, int64(250), h.balanceOf(rt, receiver))
		h.checkState(rt)
	})

	t.Run("refunds everything when the hook fails", func(t *testing.T) {
		rt, h := setup(t)
		rt.SetPromiseResult(exitcode.ErrForbidden, nil)

		ret := resolve(rt)
		assert.True(t, ret.Used.IsZero())
		assert.Equal(t, int64(1000), h.balanceOf(rt, alice))
		assert.Equal(t, int64(0), h.balanceOf(rt, receiver))
		rt.ExpectLogsContain("Refund 400")
		h.checkState(rt)
	})

	t.Run("only the token may resolve", func(t *testing.T) {
		rt, _ := setup(t)
		rt.SetPromiseResult(exitcode.Ok, &token.OnTransferReturn{Unused: big.Zero()})
		rt.SetCaller(alice)
		rt.ExpectValidateCallerAddr(tokenAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(token.Actor{}.ResolveTransfer, &token.ResolveTransferParams{
				Sender:   alice,
				Receiver: receiver,
				Amount:   abi.NewTokenAmount(400),
			})
		})
		rt.Verify()
	})
}

type tokenHarness struct {
	t testing.TB
}

func (h *tokenHarness) constructAndVerify(rt *mock.Runtime) {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(token.Actor{}.Constructor, nil)
	assert.Nil(h.t, ret)
	rt.Verify()
}

func (h *tokenHarness) mint(rt *mock.Runtime, to addr.Address, amount int64) {
	rt.SetCaller(to)
	rt.ExpectValidateCallerAny()
	rt.Call(token.Actor{}.Mint, &token.MintParams{Amount: abi.NewTokenAmount(amount)})
	rt.Verify()
}

func (h *tokenHarness) register(rt *mock.Runtime, account addr.Address) {
	rt.ExpectValidateCallerAny()
	rt.Call(token.Actor{}.Register, &token.RegisterParams{Account: account})
	rt.Verify()
}

func (h *tokenHarness) transfer(rt *mock.Runtime, from, to addr.Address, amount int64, memo string) {
	rt.SetCaller(from)
	rt.SetReceived(token.TransferDeposit)
	rt.ExpectValidateCallerAny()
	rt.Call(token.Actor{}.Transfer, &token.TransferParams{To: to, Amount: abi.NewTokenAmount(amount), Memo: memo})
	rt.Verify()
	rt.SetReceived(big.Zero())
}

func (h *tokenHarness) balanceOf(rt *mock.Runtime, account addr.Address) int64 {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(token.Actor{}.BalanceOf, &token.BalanceOfParams{Account: account}).(*abi.TokenAmount)
	rt.Verify()
	return ret.Int64()
}

func (h *tokenHarness) checkState(rt *mock.Runtime) {
	var st token.State
	rt.GetState(&st)
	_, msgs := token.CheckStateInvariants(&st, adt.AsStore(rt))
	assert.True(h.t, msgs.IsEmpty(), "%v", msgs.Messages())
}

func TestRegisterIsIdempotent(t *testing.T) {
	tokenAddr := tutil.NewIDAddr(t, 100)
	alice := tutil.NewIDAddr(t, 101)
	rt := mock.NewBuilder(context.Background(), tokenAddr).WithCaller(alice).Build(t)
	h := &tokenHarness{t: t}
	h.constructAndVerify(rt)
	h.mint(rt, alice, 10)

	rt.SetCaller(alice)
	h.register(rt, alice)
	h.register(rt, alice)
	assert.Equal(t, int64(10), h.balanceOf(rt, alice))

	var st token.State
	rt.GetState(&st)
	sum, msgs := token.CheckStateInvariants(&st, adt.AsStore(rt))
	require.True(t, msgs.IsEmpty(), "%v", msgs.Messages())
	assert.Equal(t, 1, sum.Accounts)
}
