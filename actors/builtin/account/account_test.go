package account_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/account"
	"github.com/brainstems/intellex-vesting-contracts/support/mock"
	tutil "github.com/brainstems/intellex-vesting-contracts/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, account.Actor{})
}

func TestAccountactor(t *testing.T) {
	actor := account.Actor{}

	receiver := tutil.NewIDAddr(t, 100)
	builder := mock.NewBuilder(context.Background(), receiver).WithCaller(builtin.SystemActorAddr)

	testCases := []struct {
		desc       string
		addr       addr.Address
		exitCode   exitcode.ExitCode
		shouldFail bool
	}{
		{"happy path construct SECP256K1 address", tutil.NewSECP256K1Addr(t, "secpaddress"), exitcode.Ok, false},
		{"happy path construct BLS address", tutil.NewBLSAddr(t, 1), exitcode.Ok, false},
		{"fail to construct account actor using ID address", tutil.NewIDAddr(t, 1), exitcode.ErrIllegalArgument, true},
		{"fail to construct account actor using Actor address", tutil.NewActorAddr(t, "actoraddress"), exitcode.ErrIllegalArgument, true},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			rt := builder.Build(t)
			rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)

			if tc.shouldFail {
				rt.ExpectAbort(tc.exitCode, func() {
					rt.Call(actor.Constructor, &tc.addr)
				})
			} else {
				rt.Call(actor.Constructor, &tc.addr)

				var st account.State
				rt.GetState(&st)
				assert.Equal(t, tc.addr, st.Address)

				rt.ExpectValidateCallerAny()
				pubkeyAddress := rt.Call(actor.PubkeyAddress, nil).(*addr.Address)
				assert.Equal(t, tc.addr, *pubkeyAddress)

				_, msgs := account.CheckStateInvariants(&st, receiver)
				assert.True(t, msgs.IsEmpty(), "%v", msgs.Messages())
			}
			rt.Verify()
		})
	}
}
