package states

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
)

var ErrActorNotFound = xerrors.New("actor not found")

// Bitwidth of the HAMT holding the actor table.
const StateTreeHamtBitwidth = builtin.DefaultHamtBitwidth

// Actor is an entry in the state tree: the actor's code, the root of its state and its native balance.
type Actor struct {
	Code       cid.Cid
	Head       cid.Cid
	CallSeqNum uint64
	Balance    abi.TokenAmount
}

// Tree is a map of ID addresses to actors.
type Tree struct {
	Map   *adt.Map
	Store adt.Store
}

// Initializes a new, empty state tree backed by a store.
func NewTree(store adt.Store) (*Tree, error) {
	emptyMap, err := adt.MakeEmptyMap(store, StateTreeHamtBitwidth)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Map:   emptyMap,
		Store: store,
	}, nil
}

// Loads a tree from a root CID and store.
func LoadTree(s adt.Store, r cid.Cid) (*Tree, error) {
	m, err := adt.AsMap(s, r, StateTreeHamtBitwidth)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Map:   m,
		Store: s,
	}, nil
}

func (t *Tree) Flush() (cid.Cid, error) {
	return t.Map.Root()
}

func (t *Tree) GetActor(a addr.Address) (*Actor, bool, error) {
	if a.Protocol() != addr.ID {
		return nil, false, xerrors.Errorf("non-ID address %v invalid as actor key", a)
	}
	var actor Actor
	found, err := t.Map.Get(adt.AddrKey(a), &actor)
	return &actor, found, err
}

func (t *Tree) SetActor(a addr.Address, actor *Actor) error {
	if a.Protocol() != addr.ID {
		return xerrors.Errorf("non-ID address %v invalid as actor key", a)
	}
	return t.Map.Put(adt.AddrKey(a), actor)
}

func (t *Tree) MustGetActor(a addr.Address) (*Actor, error) {
	actor, found, err := t.GetActor(a)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, xerrors.Errorf("%v: %w", a, ErrActorNotFound)
	}
	return actor, nil
}

// Loads the state of the actor at an address.
func (t *Tree) GetState(a addr.Address, out interface{}) error {
	actor, err := t.MustGetActor(a)
	if err != nil {
		return err
	}
	return t.Store.Get(t.Store.Context(), actor.Head, out)
}

func (t *Tree) ForEach(fn func(addr.Address, *Actor) error) error {
	var val Actor
	return t.Map.ForEach(&val, func(key string) error {
		a, err := addr.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		return fn(a, &val)
	})
}

// TotalBalance sums the native balances of every actor.
func (t *Tree) TotalBalance() (abi.TokenAmount, error) {
	total := big.Zero()
	err := t.ForEach(func(_ addr.Address, actor *Actor) error {
		total = big.Add(total, actor.Balance)
		return nil
	})
	return total, err
}
