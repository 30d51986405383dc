package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
)

// Token exit codes.
const (
	ErrReceiverNotRegistered = exitcode.FirstActorSpecificExitCode + iota
)

// Deposit that must accompany every Transfer and TransferCall.
var TransferDeposit = abi.NewTokenAmount(1)

// Actor is a fungible token ledger. Transfers require exactly one attoToken attached and a
// registered receiver. TransferCall notifies the receiver and refunds whatever it does not use.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Mint,
		3:                         a.Register,
		4:                         a.Transfer,
		5:                         a.TransferCall,
		6:                         a.ResolveTransfer,
		7:                         a.BalanceOf,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.TokenActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

func (a Actor) Constructor(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	st, err := ConstructState(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

type MintParams struct {
	Amount abi.TokenAmount
}

// Mint credits new tokens to the caller.
func (a Actor) Mint(rt runtime.Runtime, params *MintParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()

	var st State
	rt.StateTransaction(&st, func() {
		err := st.Mint(adt.AsStore(rt), caller, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to mint %v to %v", params.Amount, caller)
	})
	rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "Mint %v to %v", params.Amount, caller)
	return nil
}

type RegisterParams struct {
	Account addr.Address
}

// Register creates an empty balance entry so the account may receive transfers.
func (a Actor) Register(rt runtime.Runtime, params *RegisterParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateTransaction(&st, func() {
		err := st.Register(adt.AsStore(rt), params.Account)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to register %v", params.Account)
	})
	return nil
}

type TransferParams struct {
	To     addr.Address
	Amount abi.TokenAmount
	Memo   string
}

func (a Actor) Transfer(rt runtime.Runtime, params *TransferParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	a.transfer(rt, params.To, params.Amount, params.Memo)
	return nil
}

type TransferCallParams struct {
	To     addr.Address
	Amount abi.TokenAmount
	Memo   string
	Msg    string
}

type OnTransferParams struct {
	Sender addr.Address
	Amount abi.TokenAmount
	Msg    string
}

// Returned by receivers from their transfer hook.
type OnTransferReturn struct {
	Unused abi.TokenAmount
}

type ResolveTransferParams struct {
	Sender   addr.Address
	Receiver addr.Address
	Amount   abi.TokenAmount
}

// TransferCall transfers to the receiver and then invokes its transfer hook. Any amount the
// receiver reports unused, or the whole amount if the hook fails, is returned to the sender.
func (a Actor) TransferCall(rt runtime.Runtime, params *TransferCallParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	sender := rt.Message().Caller()
	a.transfer(rt, params.To, params.Amount, params.Memo)

	rt.Send(params.To, builtin.MethodOnTokenReceived, &OnTransferParams{
		Sender: sender,
		Amount: params.Amount,
		Msg:    params.Msg,
	}, big.Zero()).Then(builtin.MethodsToken.ResolveTransfer, &ResolveTransferParams{
		Sender:   sender,
		Receiver: params.To,
		Amount:   params.Amount,
	})
	return nil
}

type ResolveTransferReturn struct {
	Used abi.TokenAmount
}

func (a Actor) ResolveTransfer(rt runtime.Runtime, params *ResolveTransferParams) *ResolveTransferReturn {
	rt.ValidateImmediateCallerIs(rt.Message().Receiver())

	unused := params.Amount
	var ret OnTransferReturn
	if code := rt.PromiseResult(&ret); code.IsSuccess() {
		unused = big.Min(big.Max(ret.Unused, big.Zero()), params.Amount)
	}
	if unused.IsZero() {
		return &ResolveTransferReturn{Used: params.Amount}
	}

	var refunded abi.TokenAmount
	var st State
	rt.StateTransaction(&st, func() {
		var err error
		refunded, err = st.Refund(adt.AsStore(rt), params.Sender, params.Receiver, unused)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to refund %v to %v", unused, params.Sender)
	})
	if !refunded.IsZero() {
		rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "Refund %v from %v to %v", refunded, params.Receiver, params.Sender)
	}
	return &ResolveTransferReturn{Used: big.Sub(params.Amount, refunded)}
}

type BalanceOfParams struct {
	Account addr.Address
}

func (a Actor) BalanceOf(rt runtime.Runtime, params *BalanceOfParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	balance, err := st.BalanceOf(adt.AsStore(rt), params.Account)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to read balance of %v", params.Account)
	return &balance
}

func (a Actor) transfer(rt runtime.Runtime, to addr.Address, amount abi.TokenAmount, memo string) {
	deposit := rt.Message().ValueReceived()
	builtin.RequireParam(rt, deposit.Equals(TransferDeposit), "requires attached deposit of exactly %v, got %v", TransferDeposit, deposit)
	from := rt.Message().Caller()

	var st State
	rt.StateTransaction(&st, func() {
		err := st.Transfer(adt.AsStore(rt), from, to, amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to transfer %v from %v to %v", amount, from, to)
	})
	rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "Transfer %v from %v to %v", amount, from, to)
	if memo != "" {
		rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "Memo: %s", memo)
	}
}
