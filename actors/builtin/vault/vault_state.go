package vault

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
)

// State is the current layout of vault state.
// Every unit of TotalBalance has been deposited for some account, and ClaimedBalance is the sum of
// what has been released from accounts, including claims whose transfer is still in flight.
type State struct {
	Owner          addr.Address
	Token          addr.Address
	TotalBalance   abi.TokenAmount
	ClaimedBalance abi.TokenAmount

	Accounts     cid.Cid // HAMT[address]Account
	AccountIndex cid.Cid // AMT[uint64]address, in order of first configuration
}

// Account is the vesting schedule and claim progress of one beneficiary.
// The allocation unlocks in SessionNum equal sessions of ReleasePerSession each, the first
// SessionInterval seconds after StartTimestamp.
type Account struct {
	StartTimestamp    TimestampSec
	SessionInterval   TimestampSec
	SessionNum        uint64
	LastClaimSession  uint64
	ReleasePerSession abi.TokenAmount
	// Cumulative over every schedule the account has had.
	ClaimedAmount   abi.TokenAmount
	DepositedAmount abi.TokenAmount
	// Claimed amount whose transfer has not yet settled.
	PendingAmount abi.TokenAmount
}

// Schedule is the configurable part of an Account.
type Schedule struct {
	StartTimestamp    TimestampSec
	SessionInterval   TimestampSec
	SessionNum        uint64
	ReleasePerSession abi.TokenAmount
}

func ConstructState(store adt.Store, owner, token addr.Address) (*State, error) {
	emptyAccounts, err := adt.StoreEmptyMap(store, AccountsHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty accounts map: %w", err)
	}
	emptyIndex, err := adt.StoreEmptyArray(store, AccountIndexAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty account index: %w", err)
	}
	return &State{
		Owner:          owner,
		Token:          token,
		TotalBalance:   big.Zero(),
		ClaimedBalance: big.Zero(),
		Accounts:       emptyAccounts,
		AccountIndex:   emptyIndex,
	}, nil
}

//
// Account schedule arithmetic
//

func newAccount(s Schedule) *Account {
	return &Account{
		StartTimestamp:    s.StartTimestamp,
		SessionInterval:   s.SessionInterval,
		SessionNum:        s.SessionNum,
		LastClaimSession:  0,
		ReleasePerSession: s.ReleasePerSession,
		ClaimedAmount:     big.Zero(),
		DepositedAmount:   big.Zero(),
		PendingAmount:     big.Zero(),
	}
}

// ScheduleEnd is the time at which the last session unlocks, in seconds.
func (a *Account) ScheduleEnd() TimestampSec {
	return a.StartTimestamp + a.SessionNum*a.SessionInterval
}

// ElapsedSessions is the number of whole sessions between the start of the schedule and now.
// It is not capped at SessionNum.
func (a *Account) ElapsedSessions(now runtime.Timestamp) uint64 {
	start := ToNano(a.StartTimestamp)
	if a.SessionInterval == 0 || now <= start {
		return 0
	}
	return uint64(now-start) / uint64(ToNano(a.SessionInterval))
}

// UnclaimedAmount is the value unlocked by now and not yet claimed.
func (a *Account) UnclaimedAmount(now runtime.Timestamp) (abi.TokenAmount, error) {
	if a.LastClaimSession >= a.SessionNum {
		return big.Zero(), nil
	}
	effective := a.ElapsedSessions(now)
	if effective > a.SessionNum {
		effective = a.SessionNum
	}
	if a.LastClaimSession > effective {
		return big.Zero(), xerrors.Errorf("last claimed session %d is ahead of elapsed sessions %d", a.LastClaimSession, effective)
	}
	return big.Mul(a.ReleasePerSession, big.NewIntUnsigned(effective-a.LastClaimSession)), nil
}

// LockingAmount is the value deposited for the account and not yet claimed.
func (a *Account) LockingAmount() abi.TokenAmount {
	return big.Sub(a.DepositedAmount, a.ClaimedAmount)
}

// ScheduleAmount is the total value released over the current schedule.
func (a *Account) ScheduleAmount() abi.TokenAmount {
	return big.Mul(a.ReleasePerSession, big.NewIntUnsigned(a.SessionNum))
}

// FullyClaimed reports whether every session of the current schedule has been claimed.
func (a *Account) FullyClaimed() bool {
	return a.LastClaimSession > 0 && a.LastClaimSession >= a.SessionNum
}

// Fund records the deposit for the current schedule.
// Each schedule can be funded exactly once, with exactly its full amount.
func (a *Account) Fund(amount abi.TokenAmount) error {
	if !a.LockingAmount().IsZero() || a.LastClaimSession == a.SessionNum {
		return ErrAccountAlreadyFunded.Wrapf("account already funded, locking %v, claimed sessions %d of %d",
			a.LockingAmount(), a.LastClaimSession, a.SessionNum)
	}
	if expected := a.ScheduleAmount(); !amount.Equals(expected) {
		return ErrAmountMismatch.Wrapf("deposit %v does not match schedule amount %v", amount, expected)
	}
	a.DepositedAmount = big.Add(a.DepositedAmount, amount)
	return nil
}

// AdvanceClaim marks a number of sessions and their amount as claimed.
// The amount stays pending until the claim is settled or reverted.
func (a *Account) AdvanceClaim(sessions uint64, amount abi.TokenAmount) error {
	if a.LastClaimSession+sessions > a.SessionNum {
		return xerrors.Errorf("claiming %d sessions after %d exceeds session count %d", sessions, a.LastClaimSession, a.SessionNum)
	}
	a.LastClaimSession += sessions
	a.ClaimedAmount = big.Add(a.ClaimedAmount, amount)
	a.PendingAmount = big.Add(a.PendingAmount, amount)
	return nil
}

// SettleClaim records that the transfer of a pending claim succeeded.
func (a *Account) SettleClaim(amount abi.TokenAmount) error {
	if amount.GreaterThan(a.PendingAmount) {
		return xerrors.Errorf("settling %v exceeds pending amount %v", amount, a.PendingAmount)
	}
	a.PendingAmount = big.Sub(a.PendingAmount, amount)
	return nil
}

// RevertClaim undoes a pending AdvanceClaim with the same arguments.
func (a *Account) RevertClaim(sessions uint64, amount abi.TokenAmount) error {
	if sessions > a.LastClaimSession {
		return xerrors.Errorf("reverting %d sessions exceeds %d claimed sessions", sessions, a.LastClaimSession)
	}
	if amount.GreaterThan(a.PendingAmount) {
		return xerrors.Errorf("reverting %v exceeds pending amount %v", amount, a.PendingAmount)
	}
	a.LastClaimSession -= sessions
	a.ClaimedAmount = big.Sub(a.ClaimedAmount, amount)
	a.PendingAmount = big.Sub(a.PendingAmount, amount)
	return nil
}

// SessionsFor converts an amount into the whole number of sessions it pays for.
func (a *Account) SessionsFor(amount abi.TokenAmount) (uint64, error) {
	if a.ReleasePerSession.Sign() <= 0 {
		return 0, xerrors.Errorf("account has no release per session")
	}
	if r := big.Mod(amount, a.ReleasePerSession); !r.IsZero() {
		return 0, xerrors.Errorf("amount %v is not a multiple of release per session %v", amount, a.ReleasePerSession)
	}
	q := big.Div(amount, a.ReleasePerSession)
	if !q.IsUint64() {
		return 0, xerrors.Errorf("amount %v is too many sessions", amount)
	}
	return q.Uint64(), nil
}

//
// Ledger operations over the accounts collection
//

// GetAccount loads the account for an address, returning whether it was found.
func (st *State) GetAccount(store adt.Store, a addr.Address) (*Account, bool, error) {
	accounts, err := adt.AsMap(store, st.Accounts, AccountsHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load accounts: %w", err)
	}
	var out Account
	found, err := accounts.Get(adt.AddrKey(a), &out)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to get account %v: %w", a, err)
	}
	if !found {
		return nil, false, nil
	}
	return &out, true, nil
}

// MustGetAccount loads an account, returning an ErrNotFound error if it does not exist.
func (st *State) MustGetAccount(store adt.Store, a addr.Address) (*Account, error) {
	account, found, err := st.GetAccount(store, a)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, exitcode.ErrNotFound.Wrapf("account %v not found", a)
	}
	return account, nil
}

// PutAccount stores the account.
func (st *State) PutAccount(store adt.Store, a addr.Address, account *Account) error {
	accounts, err := adt.AsMap(store, st.Accounts, AccountsHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load accounts: %w", err)
	}
	if err := accounts.Put(adt.AddrKey(a), account); err != nil {
		return xerrors.Errorf("failed to put account %v: %w", a, err)
	}
	if st.Accounts, err = accounts.Root(); err != nil {
		return xerrors.Errorf("failed to flush accounts: %w", err)
	}
	return nil
}

// ConfigureAccount creates an account with the schedule, or replaces the schedule of an existing one.
// An existing account may only be reconfigured once its schedule has ended, nothing remains to claim
// and no claim transfer is in flight.
// Reconfiguration restarts claim progress but keeps the cumulative claimed and deposited amounts.
// Returns whether the account was newly created.
func (st *State) ConfigureAccount(store adt.Store, a addr.Address, s Schedule, now runtime.Timestamp) (bool, error) {
	account, found, err := st.GetAccount(store, a)
	if err != nil {
		return false, err
	}

	if !found {
		if err := st.PutAccount(store, a, newAccount(s)); err != nil {
			return false, err
		}
		if err := st.appendIndex(store, a); err != nil {
			return false, err
		}
		return true, nil
	}

	if !(ToNano(account.ScheduleEnd()) < now) {
		return false, ErrAccountInSession.Wrapf("account %v schedule ends at %d", a, account.ScheduleEnd())
	}
	unclaimed, err := account.UnclaimedAmount(now)
	if err != nil {
		return false, exitcode.ErrIllegalState.Wrapf("account %v: %w", a, err)
	}
	if !unclaimed.IsZero() {
		return false, ErrAccountNeedsClaim.Wrapf("account %v has %v unclaimed", a, unclaimed)
	}
	if !account.PendingAmount.IsZero() {
		return false, ErrAccountNeedsClaim.Wrapf("account %v has a claim of %v in flight", a, account.PendingAmount)
	}

	account.StartTimestamp = s.StartTimestamp
	account.SessionInterval = s.SessionInterval
	account.SessionNum = s.SessionNum
	account.ReleasePerSession = s.ReleasePerSession
	account.LastClaimSession = 0
	return false, st.PutAccount(store, a, account)
}

// FundAccount records a deposit for an existing account.
func (st *State) FundAccount(store adt.Store, a addr.Address, amount abi.TokenAmount) error {
	account, err := st.MustGetAccount(store, a)
	if err != nil {
		return err
	}
	if err := account.Fund(amount); err != nil {
		return err
	}
	if err := st.PutAccount(store, a, account); err != nil {
		return err
	}
	st.TotalBalance = big.Add(st.TotalBalance, amount)
	return nil
}

// AccountCount is the number of accounts ever configured.
func (st *State) AccountCount(store adt.Store) (uint64, error) {
	index, err := adt.AsArray(store, st.AccountIndex, AccountIndexAmtBitwidth)
	if err != nil {
		return 0, xerrors.Errorf("failed to load account index: %w", err)
	}
	return index.Length(), nil
}

// ListAccounts returns up to limit accounts starting at fromIndex, in order of first configuration.
func (st *State) ListAccounts(store adt.Store, fromIndex, limit uint64, now runtime.Timestamp) ([]AccountInfo, error) {
	index, err := adt.AsArray(store, st.AccountIndex, AccountIndexAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load account index: %w", err)
	}
	end := index.Length()
	if fromIndex >= end {
		return []AccountInfo{}, nil
	}
	if end-fromIndex > limit {
		end = fromIndex + limit
	}

	infos := make([]AccountInfo, 0, end-fromIndex)
	for i := fromIndex; i < end; i++ {
		var a addr.Address
		found, err := index.Get(i, &a)
		if err != nil {
			return nil, xerrors.Errorf("failed to read account index %d: %w", i, err)
		}
		if !found {
			return nil, xerrors.Errorf("account index %d missing", i)
		}
		account, err := st.MustGetAccount(store, a)
		if err != nil {
			return nil, xerrors.Errorf("indexed account: %w", err)
		}
		info, err := account.Info(a, now)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

func (st *State) appendIndex(store adt.Store, a addr.Address) error {
	index, err := adt.AsArray(store, st.AccountIndex, AccountIndexAmtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load account index: %w", err)
	}
	if err := index.AppendContinuous(&a); err != nil {
		return xerrors.Errorf("failed to index account %v: %w", a, err)
	}
	if st.AccountIndex, err = index.Root(); err != nil {
		return xerrors.Errorf("failed to flush account index: %w", err)
	}
	return nil
}

// AccountInfo is the view of an account returned to callers.
type AccountInfo struct {
	Account           addr.Address
	StartTimestamp    TimestampSec
	SessionInterval   TimestampSec
	SessionNum        uint64
	LastClaimSession  uint64
	ReleasePerSession abi.TokenAmount
	ClaimedAmount     abi.TokenAmount
	DepositedAmount   abi.TokenAmount
	PendingAmount     abi.TokenAmount
	UnclaimedAmount   abi.TokenAmount
}

func (a *Account) Info(address addr.Address, now runtime.Timestamp) (*AccountInfo, error) {
	unclaimed, err := a.UnclaimedAmount(now)
	if err != nil {
		return nil, xerrors.Errorf("account %v: %w", address, err)
	}
	return &AccountInfo{
		Account:           address,
		StartTimestamp:    a.StartTimestamp,
		SessionInterval:   a.SessionInterval,
		SessionNum:        a.SessionNum,
		LastClaimSession:  a.LastClaimSession,
		ReleasePerSession: a.ReleasePerSession,
		ClaimedAmount:     a.ClaimedAmount,
		DepositedAmount:   a.DepositedAmount,
		PendingAmount:     a.PendingAmount,
		UnclaimedAmount:   unclaimed,
	}, nil
}

// Validates a schedule before it is configured.
func (s Schedule) Validate() error {
	if s.SessionNum == 0 {
		return xerrors.Errorf("session count must be positive")
	}
	if s.SessionInterval == 0 {
		return xerrors.Errorf("session interval must be positive")
	}
	if s.ReleasePerSession.Sign() <= 0 {
		return xerrors.Errorf("release per session %v must be positive", s.ReleasePerSession)
	}
	if s.StartTimestamp > builtin.MaxTimestampSeconds {
		return xerrors.Errorf("start timestamp %d out of range", s.StartTimestamp)
	}
	if s.SessionNum > (builtin.MaxTimestampSeconds-s.StartTimestamp)/s.SessionInterval {
		return xerrors.Errorf("schedule of %d sessions of %ds from %d ends too late", s.SessionNum, s.SessionInterval, s.StartTimestamp)
	}
	return nil
}
