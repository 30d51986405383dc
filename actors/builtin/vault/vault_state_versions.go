package vault

import (
	"fmt"
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
)

// StateVersion identifies the layout of the body of a versioned state envelope.
type StateVersion uint64

const (
	// Accounts without cumulative claim counters, and no account index.
	StateVersion0 StateVersion = 0
	// Cumulative claimed and deposited amounts per account, total balance, insertion-ordered index.
	StateVersion1 StateVersion = 1

	CurrentStateVersion = StateVersion1
)

// StateV0 is the layout written by the first deployments.
type StateV0 struct {
	Owner          addr.Address
	Token          addr.Address
	ClaimedBalance abi.TokenAmount
	Accounts       cid.Cid // HAMT[address]AccountV0
}

type AccountV0 struct {
	StartTimestamp  TimestampSec
	ReleaseInterval TimestampSec
	ReleaseRounds   uint64
	LastClaimRound  uint64
	ReleasePerRound abi.TokenAmount
}

// VState is the persisted vault state: a version tag and a body in that version's layout.
// It is serialized as the tuple [version, body].
type VState struct {
	Version StateVersion

	v0      *StateV0
	current *State
}

// Wraps state in the current layout.
func NewVState(st *State) *VState {
	return &VState{Version: CurrentStateVersion, current: st}
}

// Wraps state in the version 0 layout.
func NewVStateV0(st *StateV0) *VState {
	return &VState{Version: StateVersion0, v0: st}
}

// Current returns the state in the current layout, upgrading the body in place if it was
// stored in an older one.
func (vs *VState) Current(store adt.Store) (*State, error) {
	switch vs.Version {
	case CurrentStateVersion:
		return vs.current, nil
	case StateVersion0:
		st, err := UpgradeV0(store, vs.v0)
		if err != nil {
			return nil, xerrors.Errorf("failed to upgrade state from version %d: %w", vs.Version, err)
		}
		vs.Version = CurrentStateVersion
		vs.current = st
		vs.v0 = nil
		return st, nil
	default:
		return nil, xerrors.Errorf("unknown state version %d", vs.Version)
	}
}

// UpgradeV0 converts version 0 state to the current layout.
// A version 0 account is assumed to have been funded with its full schedule, so its deposited
// amount is rounds * release and its claimed amount last round * release. Accounts are indexed in
// the iteration order of the version 0 map.
func UpgradeV0(store adt.Store, in *StateV0) (*State, error) {
	out, err := ConstructState(store, in.Owner, in.Token)
	if err != nil {
		return nil, err
	}

	inAccounts, err := adt.AsMap(store, in.Accounts, AccountsHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load version 0 accounts: %w", err)
	}
	outAccounts, err := adt.AsMap(store, out.Accounts, AccountsHamtBitwidth)
	if err != nil {
		return nil, err
	}
	outIndex, err := adt.AsArray(store, out.AccountIndex, AccountIndexAmtBitwidth)
	if err != nil {
		return nil, err
	}

	total := big.Zero()
	claimed := big.Zero()
	var old AccountV0
	err = inAccounts.ForEach(&old, func(key string) error {
		a, err := addr.NewFromBytes([]byte(key))
		if err != nil {
			return xerrors.Errorf("invalid account key: %w", err)
		}
		account := &Account{
			StartTimestamp:    old.StartTimestamp,
			SessionInterval:   old.ReleaseInterval,
			SessionNum:        old.ReleaseRounds,
			LastClaimSession:  old.LastClaimRound,
			ReleasePerSession: old.ReleasePerRound,
			ClaimedAmount:     big.Mul(old.ReleasePerRound, big.NewIntUnsigned(old.LastClaimRound)),
			DepositedAmount:   big.Mul(old.ReleasePerRound, big.NewIntUnsigned(old.ReleaseRounds)),
			PendingAmount:     big.Zero(),
		}
		total = big.Add(total, account.DepositedAmount)
		claimed = big.Add(claimed, account.ClaimedAmount)

		if err := outAccounts.Put(adt.AddrKey(a), account); err != nil {
			return err
		}
		return outIndex.AppendContinuous(&a)
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to upgrade accounts: %w", err)
	}
	if !claimed.Equals(in.ClaimedBalance) {
		return nil, xerrors.Errorf("claimed balance %v does not match claimed accounts %v", in.ClaimedBalance, claimed)
	}

	if out.Accounts, err = outAccounts.Root(); err != nil {
		return nil, err
	}
	if out.AccountIndex, err = outIndex.Root(); err != nil {
		return nil, err
	}
	out.TotalBalance = total
	out.ClaimedBalance = in.ClaimedBalance
	return out, nil
}

var lengthBufVState = []byte{130}

func (vs *VState) MarshalCBOR(w io.Writer) error {
	if vs == nil {
		_, err := w.Write(cbg.CborNull)
		return err
	}
	if _, err := w.Write(lengthBufVState); err != nil {
		return err
	}
	if err := cbg.WriteMajorTypeHeader(w, cbg.MajUnsignedInt, uint64(vs.Version)); err != nil {
		return err
	}
	switch vs.Version {
	case StateVersion0:
		return vs.v0.MarshalCBOR(w)
	case StateVersion1:
		return vs.current.MarshalCBOR(w)
	default:
		return xerrors.Errorf("unknown state version %d", vs.Version)
	}
}

func (vs *VState) UnmarshalCBOR(r io.Reader) error {
	*vs = VState{}

	br := cbg.GetPeeker(r)
	maj, extra, err := cbg.CborReadHeader(br)
	if err != nil {
		return err
	}
	if maj != cbg.MajArray {
		return fmt.Errorf("cbor input should be of type array")
	}
	if extra != 2 {
		return fmt.Errorf("cbor input had wrong number of fields")
	}

	maj, extra, err = cbg.CborReadHeader(br)
	if err != nil {
		return err
	}
	if maj != cbg.MajUnsignedInt {
		return fmt.Errorf("wrong type for state version")
	}
	vs.Version = StateVersion(extra)

	switch vs.Version {
	case StateVersion0:
		vs.v0 = new(StateV0)
		return vs.v0.UnmarshalCBOR(br)
	case StateVersion1:
		vs.current = new(State)
		return vs.current.UnmarshalCBOR(br)
	default:
		return xerrors.Errorf("unknown state version %d", vs.Version)
	}
}
