package vm

import (
	"bytes"
	"context"
	"fmt"
	"reflect"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
	"github.com/brainstems/intellex-vesting-contracts/actors/states"
	"github.com/brainstems/intellex-vesting-contracts/support/ipld"
)

var typeOfEmptyValue = reflect.TypeOf(&abi.EmptyValue{})

// Context for an individual invocation, implementing the actor runtime.
type invocationContext struct {
	vm  *VM
	msg *message

	callerValidated bool
	inTransaction   bool

	sends []*message
	logs  []string
}

var _ runtime.Runtime = (*invocationContext)(nil)
var _ runtime.Message = (*invocationContext)(nil)

func newInvocationContext(vm *VM, msg *message) *invocationContext {
	return &invocationContext{
		vm:  vm,
		msg: msg,
	}
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

// Executes the invocation, returning its serialized return value or the code and message it aborted with.
func (ic *invocationContext) run() (ret []byte, code exitcode.ExitCode, errMsg string) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			ret, code, errMsg = nil, a.code, a.msg
		}
	}()

	actor := ic.loadActor()
	if !ic.msg.value.IsZero() {
		actor.Balance = big.Add(actor.Balance, ic.msg.value)
		ic.storeActor(actor)
	}
	if ic.msg.method == builtin.MethodSend {
		return nil, exitcode.Ok, ""
	}

	impl, ok := ic.vm.actorImpls[actor.Code]
	if !ok {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "no implementation for actor code %v", actor.Code)
	}
	exports := impl.Exports()
	if int(ic.msg.method) >= len(exports) || exports[ic.msg.method] == nil {
		ic.Abortf(exitcode.SysErrInvalidMethod, "no method %d on actor %v", ic.msg.method, builtin.ActorNameByCode(actor.Code))
	}

	meth := reflect.ValueOf(exports[ic.msg.method])
	param := ic.decodeParams(meth.Type().In(1))
	out := meth.Call([]reflect.Value{reflect.ValueOf(ic), param})

	if !ic.callerValidated {
		ic.Abortf(exitcode.SysErrorIllegalActor, "caller not validated by method %d", ic.msg.method)
	}

	ret, err := serialize(out[0].Interface().(cbor.Marshaler))
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to serialize return value: %v", err)
	}
	return ret, exitcode.Ok, ""
}

func (ic *invocationContext) decodeParams(paramType reflect.Type) reflect.Value {
	if len(ic.msg.params) == 0 {
		if paramType != typeOfEmptyValue {
			ic.Abortf(exitcode.ErrSerialization, "missing params for method %d", ic.msg.method)
		}
		return reflect.Zero(paramType)
	}
	param := reflect.New(paramType.Elem())
	if err := param.Interface().(cbor.Unmarshaler).UnmarshalCBOR(bytes.NewReader(ic.msg.params)); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to decode params for method %d: %v", ic.msg.method, err)
	}
	return param
}

func (ic *invocationContext) loadActor() *states.Actor {
	actor, found, err := ic.vm.tree.GetActor(ic.msg.to)
	if err != nil {
		ic.Abortf(exitcode.ErrIllegalState, "failed to load actor %v: %v", ic.msg.to, err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "actor %v not found", ic.msg.to)
	}
	return actor
}

func (ic *invocationContext) storeActor(actor *states.Actor) {
	if err := ic.vm.tree.SetActor(ic.msg.to, actor); err != nil {
		ic.Abortf(exitcode.ErrIllegalState, "failed to store actor %v: %v", ic.msg.to, err)
	}
}

func (ic *invocationContext) replaceHead(head cid.Cid) {
	actor := ic.loadActor()
	actor.Head = head
	ic.storeActor(actor)
}

///// Runtime implementation /////

func (ic *invocationContext) Message() runtime.Message {
	return ic
}

func (ic *invocationContext) CurrEpoch() abi.ChainEpoch {
	return ic.vm.epoch
}

func (ic *invocationContext) BlockTimestamp() runtime.Timestamp {
	return ic.vm.timestamp
}

func (ic *invocationContext) ValidateImmediateCallerAcceptAny() {
	ic.assertf(!ic.callerValidated, "caller validated twice")
	ic.callerValidated = true
}

func (ic *invocationContext) ValidateImmediateCallerIs(addrs ...addr.Address) {
	ic.assertf(!ic.callerValidated, "caller validated twice")
	ic.callerValidated = true
	for _, a := range addrs {
		if a == ic.msg.from {
			return
		}
	}
	ic.Abortf(exitcode.ErrForbidden, "caller address %v forbidden, allowed: %v", ic.msg.from, addrs)
}

func (ic *invocationContext) CurrentBalance() abi.TokenAmount {
	return ic.loadActor().Balance
}

func (ic *invocationContext) StateCreate(obj cbor.Marshaler) {
	actor := ic.loadActor()
	ic.assertf(actor.Head == EmptyObjectCid, "state already constructed")
	actor.Head = ic.StorePut(obj)
	ic.storeActor(actor)
}

func (ic *invocationContext) StateReadonly(obj cbor.Unmarshaler) {
	actor := ic.loadActor()
	if !ic.StoreGet(actor.Head, obj) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "actor state not found: %v", actor.Head)
	}
}

func (ic *invocationContext) StateTransaction(obj cbor.Er, f func()) {
	ic.assertf(!ic.inTransaction, "nested transaction")
	ic.StateReadonly(obj)
	ic.inTransaction = true
	defer func() { ic.inTransaction = false }()
	f()
	ic.replaceHead(ic.StorePut(obj))
}

func (ic *invocationContext) StoreGet(c cid.Cid, o cbor.Unmarshaler) bool {
	if err := ic.vm.store.Get(ic.vm.ctx, c, o); err != nil {
		if xerrors.Is(err, ipld.ErrNotFound) {
			return false
		}
		ic.Abortf(exitcode.ErrSerialization, "failed to load %v: %v", c, err)
	}
	return true
}

func (ic *invocationContext) StorePut(x cbor.Marshaler) cid.Cid {
	c, err := ic.vm.store.Put(ic.vm.ctx, x)
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to store object: %v", err)
	}
	return c
}

func (ic *invocationContext) Send(to addr.Address, method abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount) runtime.Promise {
	ic.assertf(!ic.inTransaction, "side-effect within transaction")
	if value.LessThan(big.Zero()) {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "negative value %v", value)
	}
	actor := ic.loadActor()
	if actor.Balance.LessThan(value) {
		ic.Abortf(exitcode.SysErrInsufficientFunds, "cannot send value: %v exceeds balance: %v", value, actor.Balance)
	}
	actor.Balance = big.Sub(actor.Balance, value)
	ic.storeActor(actor)

	raw, err := serialize(params)
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to serialize params for %v method %d: %v", to, method, err)
	}
	msg := &message{
		from:   ic.msg.to,
		to:     to,
		value:  value,
		method: method,
		params: raw,
	}
	ic.sends = append(ic.sends, msg)
	return &promise{ic: ic, msg: msg}
}

func (ic *invocationContext) PromiseResult(out cbor.Unmarshaler) exitcode.ExitCode {
	result := ic.msg.result
	if result == nil {
		ic.Abortf(exitcode.SysErrorIllegalActor, "no promise result outside of a callback")
	}
	if out != nil && result.code.IsSuccess() && len(result.ret) > 0 {
		if err := out.UnmarshalCBOR(bytes.NewReader(result.ret)); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to decode promise result: %v", err)
		}
	}
	return result.code
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (ic *invocationContext) Context() context.Context {
	return ic.vm.ctx
}

func (ic *invocationContext) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	if level < ic.vm.logLevel {
		return
	}
	ic.logs = append(ic.logs, fmt.Sprintf(msg, args...))
}

func (ic *invocationContext) assertf(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		ic.Abortf(exitcode.SysErrorIllegalActor, msg, args...)
	}
}

///// Message implementation /////

func (ic *invocationContext) Caller() addr.Address {
	return ic.msg.from
}

func (ic *invocationContext) Receiver() addr.Address {
	return ic.msg.to
}

func (ic *invocationContext) ValueReceived() abi.TokenAmount {
	return ic.msg.value
}

///// Promise implementation /////

type promise struct {
	ic  *invocationContext
	msg *message
}

func (p *promise) Then(method abi.MethodNum, params cbor.Marshaler) {
	p.ic.assertf(p.msg.callback == nil, "second callback chained onto send to %v", p.msg.to)
	raw, err := serialize(params)
	if err != nil {
		p.ic.Abortf(exitcode.ErrSerialization, "failed to serialize callback params: %v", err)
	}
	p.msg.callback = &callback{method: method, params: raw}
}
