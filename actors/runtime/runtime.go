package runtime

import (
	"context"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
)

// Timestamp is a block time in nanoseconds since the unix epoch.
type Timestamp uint64

// Runtime is the VM's internal runtime object.
// this is everything that is accessible to actors, beyond parameters.
type Runtime interface {
	// Information related to the current message being executed.
	Message() Message

	// The current chain epoch number. The genesis block has epoch zero.
	CurrEpoch() abi.ChainEpoch

	// The timestamp of the block in which the current message executes, in nanoseconds.
	// Monotonic non-decreasing across messages.
	BlockTimestamp() Timestamp

	// Validates the caller against some predicate.
	// Exported actor methods must invoke at least one caller validation before returning.
	ValidateImmediateCallerAcceptAny()
	ValidateImmediateCallerIs(addrs ...addr.Address)

	// The balance of the receiver.
	CurrentBalance() abi.TokenAmount

	// Initializes the state object.
	// This is only valid in a constructor function and when the state has not yet been initialized.
	StateCreate(obj cbor.Marshaler)

	// Loads a readonly copy of the state of the receiver into the argument.
	//
	// Any modification to the state is illegal and will result in an abort.
	StateReadonly(obj cbor.Unmarshaler)

	// Loads a mutable version of the state into the `obj` argument and protects
	// the execution from side effects (including message send).
	//
	// The second argument is a function which allows the caller to mutate the state.
	//
	// If the state is modified after this function returns, execution will abort.
	//
	// # Usage
	// ```go
	// var state SomeState
	// rt.StateTransaction(&state, func() {
	//   // make some changes
	//   state.ImLoaded = true
	// })
	// // state.ImLoaded = false // BAD!! state is readonly outside the lambda, it will panic
	// ```
	StateTransaction(obj cbor.Er, f func())

	// Store for the actor's HAMTs and AMTs.
	Store

	// Schedules a message to another actor. The message executes asynchronously, after the current
	// method has returned and its state changes have been committed.
	// The attached value is deducted from the receiver's balance immediately, and returned to it
	// if the scheduled message fails.
	// The returned promise may be used to chain a callback method on the sending actor, which runs
	// after the message completes, whatever its outcome.
	Send(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount) Promise

	// Reports the outcome of the message this callback was chained onto.
	// If the message succeeded and `out` is non-nil, its return value is deserialized into `out`.
	// Aborts if the current method is not executing as a callback.
	PromiseResult(out cbor.Unmarshaler) exitcode.ExitCode

	// Halts execution upon an error from which the receiver cannot recover. The caller will receive the exitcode and
	// an empty return value. State changes made within this call will be rolled back.
	// This method does not return.
	// The message and args are for diagnostic purposes and do not persist on chain. They should be suitable for
	// passing to fmt.Errorf(msg, args...).
	Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{})

	// Provides a Go context for use by HAMT, etc.
	// The VM is intended to provide an idealised machine abstraction, with infinite storage etc, so this context
	// should not be used by actor code directly.
	Context() context.Context

	// Log is a debugging facility. Messages are collected per invocation and never persist in state.
	Log(level rt.LogLevel, msg string, args ...interface{})
}

// Store defines the storage module exposed to actors.
type Store interface {
	// Retrieves and deserializes an object from the store into `o`. Returns whether successful.
	StoreGet(c cid.Cid, o cbor.Unmarshaler) bool
	// Serializes and stores an object, returning its CID.
	StorePut(x cbor.Marshaler) cid.Cid
}

// Message contains information available to the actor about the executing message.
type Message interface {
	// The address of the immediate calling actor. Always an ID-address.
	// For a callback this is the actor itself.
	Caller() addr.Address

	// The address of the actor receiving the message. Always an ID-address.
	Receiver() addr.Address

	// The value attached to the message being processed, implicitly added to CurrentBalance() before method invocation.
	ValueReceived() abi.TokenAmount
}

// Promise is the handle to a scheduled message.
type Promise interface {
	// Chains a callback method on the sending actor, invoked with `params` once the message completes.
	// At most one callback may be chained.
	Then(methodNum abi.MethodNum, params cbor.Marshaler)
}

// VMActor is the interface the runtime requires of actor code.
type VMActor interface {
	// Exports returns a slice of methods exported by this actor, indexed by
	// method number. Skipped/deprecated method numbers will be nil.
	Exports() []interface{}

	// Code returns the code ID for this actor.
	Code() cid.Cid

	// State returns a new State object for this actor. This can be used to
	// decode the actor's state.
	State() cbor.Er
}
