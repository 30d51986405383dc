package mock

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"

	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
)

// RuntimeBuilder configures the context a mock runtime starts with.
// A builder may be reused, each Build returning an independent runtime.
type RuntimeBuilder struct {
	rt *Runtime
}

// NewBuilder starts a runtime for the actor at receiver, with no caller, zero balances and an
// empty store.
func NewBuilder(ctx context.Context, receiver addr.Address) *RuntimeBuilder {
	return &RuntimeBuilder{&Runtime{
		ctx:           ctx,
		receiver:      receiver,
		state:         cid.Undef,
		store:         make(map[cid.Cid][]byte),
		balance:       big.Zero(),
		valueReceived: big.Zero(),
		expectSends:   make([]*expectedMessage, 0),
	}}
}

// Build returns a runtime reporting failures to t.
func (b *RuntimeBuilder) Build(t testing.TB) *Runtime {
	cpy := *b.rt
	cpy.store = make(map[cid.Cid][]byte, len(b.rt.store))
	for k, v := range b.rt.store {
		cpy.store[k] = v
	}
	cpy.t = t
	return &cpy
}

// WithTimestamp sets the block time, in nanoseconds since the epoch, that the runtime starts at.
// Vault schedules are in seconds and are converted with vault.ToNano.
func (b *RuntimeBuilder) WithTimestamp(ts runtime.Timestamp) *RuntimeBuilder {
	b.rt.timestamp = ts
	return b
}

// WithCaller sets the immediate caller of the first call.
func (b *RuntimeBuilder) WithCaller(address addr.Address) *RuntimeBuilder {
	b.rt.caller = address
	return b
}
