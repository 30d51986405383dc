package vault

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
)

// Vault exit codes.
const (
	ErrAccountAlreadyFunded = exitcode.FirstActorSpecificExitCode + iota
	ErrAmountMismatch
	ErrAccountInSession
	ErrAccountNeedsClaim
	ErrInsufficientLiquidity
	ErrWrongToken
	ErrMissingTargetAccount
	ErrInvalidTargetAccount
)

type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Claim,
		3:                         a.AfterTransfer,
		4:                         a.AddAccount,
		5:                         a.OnTokenReceived,
		6:                         a.SetOwner,
		7:                         a.GetOwner,
		8:                         a.ContractMetadata,
		9:                         a.GetAccount,
		10:                        a.ListAccounts,
		11:                        a.Migrate,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.VaultActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(VState)
}

var _ runtime.VMActor = Actor{}

type ConstructorParams struct {
	Owner addr.Address
	Token addr.Address
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	requireIDAddress(rt, params.Owner, "owner")
	requireIDAddress(rt, params.Token, "token")
	builtin.RequireParam(rt, params.Token != rt.Message().Receiver(), "vault cannot be its own token")

	st, err := ConstructState(adt.AsStore(rt), params.Owner, params.Token)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(NewVState(st))
	return nil
}

type ClaimParams struct {
	Account *addr.Address // defaults to the caller
}

// Claim releases the unlocked balance of an account to it.
// The claim is committed before the token transfer is sent and reverted by AfterTransfer if the
// transfer fails. Returns false if the account's schedule has been claimed in full.
func (a Actor) Claim(rt runtime.Runtime, params *ClaimParams) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	account := rt.Message().Caller()
	if params.Account != nil {
		account = *params.Account
		requireIDAddress(rt, account, "account")
	}
	now := rt.BlockTimestamp()

	var result, send bool
	var amount abi.TokenAmount
	var sessions uint64
	var tokenAddr addr.Address
	var vs VState
	rt.StateTransaction(&vs, func() {
		st := loadState(rt, &vs)
		store := adt.AsStore(rt)

		acc, err := st.MustGetAccount(store, account)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load account")
		if acc.FullyClaimed() {
			return
		}
		result = true

		amount, err = acc.UnclaimedAmount(now)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to compute unclaimed amount")
		if amount.IsZero() {
			return
		}
		if amount.GreaterThan(acc.LockingAmount()) {
			rt.Abortf(ErrInsufficientLiquidity, "account %v unclaimed %v exceeds locking %v", account, amount, acc.LockingAmount())
		}

		sessions, err = acc.SessionsFor(amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to compute claimed sessions")
		err = acc.AdvanceClaim(sessions, amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to advance claim")
		err = st.PutAccount(store, account, acc)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store account")

		st.ClaimedBalance = big.Add(st.ClaimedBalance, amount)
		tokenAddr = st.Token
		send = true
	})

	if send {
		rt.Send(tokenAddr, builtin.MethodsToken.Transfer, &token.TransferParams{
			To:     account,
			Amount: amount,
			Memo:   claimMemo(amount, rt.Message().Receiver()),
		}, TransferDeposit).Then(builtin.MethodsVault.AfterTransfer, &AfterTransferParams{
			Account:  account,
			Sessions: sessions,
			Amount:   amount,
		})
	}
	ret := cbg.CborBool(result)
	return &ret
}

type AfterTransferParams struct {
	Account  addr.Address
	Sessions uint64 // sessions advanced by the claim
	Amount   abi.TokenAmount
}

// AfterTransfer settles a claim once its transfer completes, reverting the claim if it failed.
// The account cannot be reconfigured while the claim is pending, so the claimed sessions are
// still those of its current schedule.
func (a Actor) AfterTransfer(rt runtime.Runtime, params *AfterTransferParams) *cbg.CborBool {
	rt.ValidateImmediateCallerIs(rt.Message().Receiver())

	code := rt.PromiseResult(nil)
	var vs VState
	rt.StateTransaction(&vs, func() {
		st := loadState(rt, &vs)
		store := adt.AsStore(rt)

		acc, err := st.MustGetAccount(store, params.Account)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load claimed account")
		if code.IsSuccess() {
			err = acc.SettleClaim(params.Amount)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to settle claim")
		} else {
			err = acc.RevertClaim(params.Sessions, params.Amount)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to revert claim")
			builtin.RequireState(rt, !params.Amount.GreaterThan(st.ClaimedBalance), "reverting %v exceeds claimed balance %v", params.Amount, st.ClaimedBalance)
			st.ClaimedBalance = big.Sub(st.ClaimedBalance, params.Amount)
		}
		err = st.PutAccount(store, params.Account, acc)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store account")
	})
	if code.IsSuccess() {
		rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "Account claim succeed, account is %v, balance is %v", params.Account, params.Amount)
		ret := cbg.CborBool(true)
		return &ret
	}
	rt.Log(builtin.GetActorLogLevel(a, rtt.WARN), "Account claim failed and rollback, account is %v, balance is %v, exit code %v",
		params.Account, params.Amount, code)
	ret := cbg.CborBool(false)
	return &ret
}

type AddAccountParams struct {
	Account           addr.Address
	StartTimestamp    TimestampSec
	SessionInterval   TimestampSec
	SessionNum        uint64
	ReleasePerSession abi.TokenAmount
}

// AddAccount creates an account, or gives a finished account a new schedule.
func (a Actor) AddAccount(rt runtime.Runtime, params *AddAccountParams) *cbg.CborBool {
	var vs VState
	rt.StateReadonly(&vs)
	rt.ValidateImmediateCallerIs(loadState(rt, &vs).Owner)
	requireIDAddress(rt, params.Account, "account")

	schedule := Schedule{
		StartTimestamp:    params.StartTimestamp,
		SessionInterval:   params.SessionInterval,
		SessionNum:        params.SessionNum,
		ReleasePerSession: params.ReleasePerSession,
	}
	err := schedule.Validate()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid schedule for %v", params.Account)
	now := rt.BlockTimestamp()

	var created bool
	rt.StateTransaction(&vs, func() {
		st := loadState(rt, &vs)
		created, err = st.ConfigureAccount(adt.AsStore(rt), params.Account, schedule, now)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to configure account %v", params.Account)
	})
	if created {
		rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "Add account %v, %d sessions of %v", params.Account, params.SessionNum, params.ReleasePerSession)
	} else {
		rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "Reset account %v, %d sessions of %v", params.Account, params.SessionNum, params.ReleasePerSession)
	}
	ret := cbg.CborBool(true)
	return &ret
}

// OnTokenReceived funds the account named by the message of a token TransferCall.
// The whole amount is used, so the token refunds nothing unless this method aborts.
func (a Actor) OnTokenReceived(rt runtime.Runtime, params *token.OnTransferParams) *token.OnTransferReturn {
	rt.ValidateImmediateCallerAcceptAny()
	tokenAddr := rt.Message().Caller()

	var vs VState
	rt.StateTransaction(&vs, func() {
		st := loadState(rt, &vs)
		if tokenAddr != st.Token {
			rt.Abortf(ErrWrongToken, "received token %v, accepts only %v", tokenAddr, st.Token)
		}
		if params.Msg == "" {
			rt.Abortf(ErrMissingTargetAccount, "transfer message must name the account to fund")
		}
		target, err := addr.NewFromString(params.Msg)
		if err != nil {
			rt.Abortf(ErrInvalidTargetAccount, "invalid target account %q: %s", params.Msg, err)
		}
		if target.Protocol() != addr.ID {
			rt.Abortf(ErrInvalidTargetAccount, "target account %v is not an ID address", target)
		}
		if target == rt.Message().Receiver() {
			rt.Abortf(ErrInvalidTargetAccount, "vault cannot fund itself")
		}

		err = st.FundAccount(adt.AsStore(rt), target, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to fund account %v", target)
	})
	rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "%v deposit token to %s, amount: %v", params.Sender, params.Msg, params.Amount)
	return &token.OnTransferReturn{Unused: big.Zero()}
}

type SetOwnerParams struct {
	Owner addr.Address
}

func (a Actor) SetOwner(rt runtime.Runtime, params *SetOwnerParams) *abi.EmptyValue {
	var vs VState
	rt.StateReadonly(&vs)
	rt.ValidateImmediateCallerIs(loadState(rt, &vs).Owner)
	deposit := rt.Message().ValueReceived()
	builtin.RequireParam(rt, deposit.Equals(TransferDeposit), "requires attached deposit of exactly %v, got %v", TransferDeposit, deposit)
	requireIDAddress(rt, params.Owner, "owner")

	rt.StateTransaction(&vs, func() {
		st := loadState(rt, &vs)
		st.Owner = params.Owner
	})
	return nil
}

func (a Actor) GetOwner(rt runtime.Runtime, _ *abi.EmptyValue) *addr.Address {
	rt.ValidateImmediateCallerAcceptAny()
	var vs VState
	rt.StateReadonly(&vs)
	owner := loadState(rt, &vs).Owner
	return &owner
}

type ContractInfo struct {
	Version        string
	Owner          addr.Address
	Token          addr.Address
	TotalBalance   abi.TokenAmount
	ClaimedBalance abi.TokenAmount
}

func (a Actor) ContractMetadata(rt runtime.Runtime, _ *abi.EmptyValue) *ContractInfo {
	rt.ValidateImmediateCallerAcceptAny()
	var vs VState
	rt.StateReadonly(&vs)
	st := loadState(rt, &vs)
	return &ContractInfo{
		Version:        ContractVersion,
		Owner:          st.Owner,
		Token:          st.Token,
		TotalBalance:   st.TotalBalance,
		ClaimedBalance: st.ClaimedBalance,
	}
}

type GetAccountParams struct {
	Account addr.Address
}

type GetAccountReturn struct {
	Found bool
	Info  *AccountInfo
}

func (a Actor) GetAccount(rt runtime.Runtime, params *GetAccountParams) *GetAccountReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var vs VState
	rt.StateReadonly(&vs)
	st := loadState(rt, &vs)

	acc, found, err := st.GetAccount(adt.AsStore(rt), params.Account)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load account %v", params.Account)
	if !found {
		return &GetAccountReturn{Found: false}
	}
	info, err := acc.Info(params.Account, rt.BlockTimestamp())
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to describe account")
	return &GetAccountReturn{Found: true, Info: info}
}

type ListAccountsParams struct {
	FromIndex uint64
	Limit     uint64 // zero selects DefaultListLimit
}

type ListAccountsReturn struct {
	Accounts []AccountInfo
}

// ListAccounts pages through accounts in the order they were first added.
func (a Actor) ListAccounts(rt runtime.Runtime, params *ListAccountsParams) *ListAccountsReturn {
	rt.ValidateImmediateCallerAcceptAny()
	limit := params.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var vs VState
	rt.StateReadonly(&vs)
	st := loadState(rt, &vs)
	infos, err := st.ListAccounts(adt.AsStore(rt), params.FromIndex, limit, rt.BlockTimestamp())
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to list accounts")
	return &ListAccountsReturn{Accounts: infos}
}

// Migrate rewrites the stored state in the current layout.
func (a Actor) Migrate(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(rt.Message().Receiver())

	var from StateVersion
	var vs VState
	rt.StateTransaction(&vs, func() {
		from = vs.Version
		loadState(rt, &vs)
	})
	if from != CurrentStateVersion {
		rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "Migrated state from version %d to %d", from, CurrentStateVersion)
	}
	return nil
}

func loadState(rt runtime.Runtime, vs *VState) *State {
	st, err := vs.Current(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load vault state")
	return st
}

// Callers and accounts are always identified by ID address, so state is keyed by ID address only.
func requireIDAddress(rt runtime.Runtime, a addr.Address, name string) {
	builtin.RequireParam(rt, a.Protocol() == addr.ID, "%s %v must be an ID address", name, a)
}
