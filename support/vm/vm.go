package vm

import (
	"bytes"
	"context"
	"io"
	"reflect"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	mh "github.com/multiformats/go-multihash"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
	"github.com/brainstems/intellex-vesting-contracts/actors/states"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
	"github.com/brainstems/intellex-vesting-contracts/support/ipld"
)

// Head of an actor whose constructor has not yet run.
var EmptyObjectCid cid.Cid

var emptyObject *ipldcbor.Node

func init() {
	var err error
	emptyObject, err = ipldcbor.WrapObject([]interface{}{}, mh.SHA2_256, -1)
	if err != nil {
		panic(err)
	}
	EmptyObjectCid = emptyObject.Cid()
}

// VM is a simplified message execution framework for the purposes of testing.
//
// A message runs to completion: every message it sends and every callback chained onto those
// sends executes, in the order scheduled, before ApplyMessage returns. Each invocation commits
// or rolls back independently; a failed invocation refunds the value it carried to its sender.
type VM struct {
	ctx        context.Context
	bs         *ipld.MetricsBlockStore
	store      adt.Store
	actorImpls map[cid.Cid]runtime.VMActor

	tree      *states.Tree
	timestamp runtime.Timestamp
	epoch     abi.ChainEpoch
	nextID    uint64
	logLevel  rtt.LogLevel

	// Native balance minted into accounts at creation.
	totalBalance abi.TokenAmount
}

// Message is a top level message to apply.
type Message struct {
	From   addr.Address
	To     addr.Address
	Value  abi.TokenAmount
	Method abi.MethodNum
	Params cbor.Marshaler
}

// Receipt records the outcome of one invocation.
type Receipt struct {
	From     addr.Address
	To       addr.Address
	Method   abi.MethodNum
	Value    abi.TokenAmount
	Callback bool

	Code  exitcode.ExitCode
	Ret   []byte
	Error string
	Logs  []string
}

// MessageResult is the outcome of a top level message and of everything it scheduled.
type MessageResult struct {
	Code     exitcode.ExitCode
	Ret      []byte
	Receipts []Receipt
}

// Unmarshal decodes the return value of the top level invocation.
func (r MessageResult) Unmarshal(out cbor.Unmarshaler) error {
	return out.UnmarshalCBOR(bytes.NewReader(r.Ret))
}

// Logs returns the log lines of every invocation, in execution order.
func (r MessageResult) Logs() []string {
	var logs []string
	for _, rcpt := range r.Receipts {
		logs = append(logs, rcpt.Logs...)
	}
	return logs
}

// Finds the first receipt of an invocation of method on the actor at to.
func (r MessageResult) Receipt(to addr.Address, method abi.MethodNum) (Receipt, bool) {
	for _, rcpt := range r.Receipts {
		if rcpt.To == to && rcpt.Method == method {
			return rcpt, true
		}
	}
	return Receipt{}, false
}

type callback struct {
	method abi.MethodNum
	params []byte
}

type promiseResult struct {
	code exitcode.ExitCode
	ret  []byte
}

// An invocation waiting in the queue.
type message struct {
	origin int
	from   addr.Address
	to     addr.Address
	value  abi.TokenAmount
	method abi.MethodNum
	params []byte

	// Chained onto this message by its sender.
	callback *callback
	// Set when this message is itself a callback.
	result *promiseResult
}

// NewVM creates a VM with an empty state tree, executing the given actor implementations.
func NewVM(ctx context.Context, actorImpls []runtime.VMActor) (*VM, error) {
	bs := ipld.NewMetricsBlockStore(ipld.NewBlockStoreInMemory())
	if err := bs.Put(emptyObject); err != nil {
		return nil, err
	}
	store := adt.WrapBlockStore(ctx, bs)
	tree, err := states.NewTree(store)
	if err != nil {
		return nil, xerrors.Errorf("failed to create state tree: %w", err)
	}
	return newVM(ctx, bs, store, tree, actorImpls), nil
}

// LoadVM creates a VM over a state tree exported with ExportCAR.
func LoadVM(ctx context.Context, actorImpls []runtime.VMActor, r io.Reader) (*VM, error) {
	bs := ipld.NewMetricsBlockStore(ipld.NewBlockStoreInMemory())
	if err := bs.Put(emptyObject); err != nil {
		return nil, err
	}
	root, err := ipld.LoadCAR(bs, r)
	if err != nil {
		return nil, err
	}
	store := adt.WrapBlockStore(ctx, bs)
	tree, err := states.LoadTree(store, root)
	if err != nil {
		return nil, xerrors.Errorf("failed to load state tree %v: %w", root, err)
	}
	v := newVM(ctx, bs, store, tree, actorImpls)

	if err := tree.ForEach(func(a addr.Address, actor *states.Actor) error {
		id, err := addr.IDFromAddress(a)
		if err != nil {
			return err
		}
		if id >= v.nextID {
			v.nextID = id + 1
		}
		v.totalBalance = big.Add(v.totalBalance, actor.Balance)
		return nil
	}); err != nil {
		return nil, err
	}
	return v, nil
}

func newVM(ctx context.Context, bs *ipld.MetricsBlockStore, store adt.Store, tree *states.Tree, actorImpls []runtime.VMActor) *VM {
	impls := make(map[cid.Cid]runtime.VMActor, len(actorImpls))
	for _, impl := range actorImpls {
		impls[impl.Code()] = impl
	}
	return &VM{
		ctx:          ctx,
		bs:           bs,
		store:        store,
		actorImpls:   impls,
		tree:         tree,
		nextID:       builtin.FirstNonSingletonActorId,
		logLevel:     rtt.INFO,
		totalBalance: big.Zero(),
	}
}

//
// Accessors
//

func (vm *VM) Store() adt.Store {
	return vm.store
}

func (vm *VM) Blockstore() *ipld.MetricsBlockStore {
	return vm.bs
}

func (vm *VM) StateRoot() (cid.Cid, error) {
	return vm.tree.Flush()
}

func (vm *VM) Tree() *states.Tree {
	return vm.tree
}

func (vm *VM) GetActor(a addr.Address) (*states.Actor, bool, error) {
	return vm.tree.GetActor(a)
}

// Loads the state of the actor at an address.
func (vm *VM) GetState(a addr.Address, out cbor.Unmarshaler) error {
	return vm.tree.GetState(a, out)
}

// Replaces the state of an existing actor.
func (vm *VM) SetActorState(a addr.Address, obj cbor.Marshaler) error {
	actor, err := vm.tree.MustGetActor(a)
	if err != nil {
		return err
	}
	if actor.Head, err = vm.store.Put(vm.ctx, obj); err != nil {
		return err
	}
	return vm.tree.SetActor(a, actor)
}

func (vm *VM) GetBalance(a addr.Address) (abi.TokenAmount, error) {
	actor, err := vm.tree.MustGetActor(a)
	if err != nil {
		return big.Zero(), err
	}
	return actor.Balance, nil
}

func (vm *VM) Timestamp() runtime.Timestamp {
	return vm.timestamp
}

// Sets the block timestamp, in nanoseconds, seen by subsequent messages.
// Block time never moves backwards.
func (vm *VM) SetTimestamp(ts runtime.Timestamp) error {
	if ts < vm.timestamp {
		return xerrors.Errorf("timestamp %d precedes current timestamp %d", ts, vm.timestamp)
	}
	vm.timestamp = ts
	return nil
}

// Moves block time forward by a number of seconds and advances the epoch.
func (vm *VM) AdvanceTime(seconds uint64) {
	vm.timestamp += runtime.Timestamp(seconds * builtin.NanosecondsInSecond)
	vm.epoch++
}

// Invocation logs below this level are dropped.
func (vm *VM) SetLogLevel(level rtt.LogLevel) {
	vm.logLevel = level
}

// Checks the invariants of every actor and across actors.
func (vm *VM) CheckStateInvariants() (*states.Summary, *builtin.MessageAccumulator, error) {
	return states.CheckStateInvariants(vm.tree, vm.totalBalance)
}

// ExportCAR writes the state tree and everything it references to w.
func (vm *VM) ExportCAR(w io.Writer) error {
	root, err := vm.tree.Flush()
	if err != nil {
		return err
	}
	return ipld.ExportCAR(vm.bs, root, w)
}

//
// Actor creation
//

func (vm *VM) allocateID() addr.Address {
	a, err := addr.NewIDAddress(vm.nextID)
	if err != nil {
		panic(err)
	}
	vm.nextID++
	return a
}

// CreateAccount creates an account actor for a public key address, with a native balance
// minted from nothing. Returns the account's ID address.
func (vm *VM) CreateAccount(pubkey addr.Address, balance abi.TokenAmount) (addr.Address, error) {
	snapshot, err := vm.tree.Flush()
	if err != nil {
		return addr.Undef, err
	}
	id := vm.allocateID()
	if err := vm.tree.SetActor(id, &states.Actor{
		Code:    builtin.AccountActorCodeID,
		Head:    EmptyObjectCid,
		Balance: balance,
	}); err != nil {
		return addr.Undef, err
	}

	result, err := vm.apply([]Message{{
		From:   builtin.SystemActorAddr,
		To:     id,
		Value:  big.Zero(),
		Method: builtin.MethodConstructor,
		Params: &pubkey,
	}}, false)
	if err != nil {
		return addr.Undef, err
	}
	if code := result[0].Code; !code.IsSuccess() {
		if err := vm.restore(snapshot); err != nil {
			return addr.Undef, err
		}
		return addr.Undef, xerrors.Errorf("failed to construct account for %v: exit code %v", pubkey, code)
	}
	vm.totalBalance = big.Add(vm.totalBalance, balance)
	return id, nil
}

// CreateActor creates an actor with the given code and runs its constructor, invoked by creator
// with value attached. If the constructor fails the actor is not created.
func (vm *VM) CreateActor(creator addr.Address, code cid.Cid, value abi.TokenAmount, params cbor.Marshaler) (addr.Address, MessageResult, error) {
	if _, ok := vm.actorImpls[code]; !ok {
		return addr.Undef, MessageResult{}, xerrors.Errorf("no implementation for code %v", code)
	}
	snapshot, err := vm.tree.Flush()
	if err != nil {
		return addr.Undef, MessageResult{}, err
	}
	id := vm.allocateID()
	if err := vm.tree.SetActor(id, &states.Actor{
		Code:    code,
		Head:    EmptyObjectCid,
		Balance: big.Zero(),
	}); err != nil {
		return addr.Undef, MessageResult{}, err
	}

	results, err := vm.apply([]Message{{
		From:   creator,
		To:     id,
		Value:  value,
		Method: builtin.MethodConstructor,
		Params: params,
	}}, true)
	if err != nil {
		return addr.Undef, MessageResult{}, err
	}
	if !results[0].Code.IsSuccess() {
		if err := vm.restore(snapshot); err != nil {
			return addr.Undef, MessageResult{}, err
		}
		return addr.Undef, results[0], nil
	}
	return id, results[0], nil
}

//
// Message application
//

// ApplyMessage applies a message from an actor, and everything it schedules.
// The exit code of the result is that of the top level invocation.
func (vm *VM) ApplyMessage(from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params cbor.Marshaler) (MessageResult, error) {
	results, err := vm.ApplyMessages(Message{From: from, To: to, Value: value, Method: method, Params: params})
	if err != nil {
		return MessageResult{}, err
	}
	return results[0], nil
}

// ApplyMessages applies several top level messages in one round. Each message's first invocation
// runs before anything the messages schedule, so a message can observe the committed effects of
// earlier messages while their sends are still pending.
func (vm *VM) ApplyMessages(msgs ...Message) ([]MessageResult, error) {
	return vm.apply(msgs, true)
}

func (vm *VM) apply(msgs []Message, fromActor bool) ([]MessageResult, error) {
	results := make([]MessageResult, len(msgs))
	var queue []*message

	for i, m := range msgs {
		params, err := serialize(m.Params)
		if err != nil {
			return nil, xerrors.Errorf("failed to serialize params of message %d: %w", i, err)
		}
		value := m.Value
		if value.Nil() {
			value = big.Zero()
		}
		if fromActor {
			if code, err := vm.chargeSender(m.From, value); err != nil {
				return nil, err
			} else if code != exitcode.Ok {
				results[i].Code = code
				continue
			}
		}
		queue = append(queue, &message{
			origin: i,
			from:   m.From,
			to:     m.To,
			value:  value,
			method: m.Method,
			params: params,
		})
	}

	seen := make([]bool, len(msgs))
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		rcpt, sends, err := vm.invoke(msg)
		if err != nil {
			return nil, err
		}
		res := &results[msg.origin]
		if !seen[msg.origin] {
			res.Code = rcpt.Code
			res.Ret = rcpt.Ret
			seen[msg.origin] = true
		}
		res.Receipts = append(res.Receipts, *rcpt)

		for _, s := range sends {
			s.origin = msg.origin
		}
		queue = append(queue, sends...)
		if msg.callback != nil {
			queue = append(queue, &message{
				origin: msg.origin,
				from:   msg.from,
				to:     msg.from,
				value:  big.Zero(),
				method: msg.callback.method,
				params: msg.callback.params,
				result: &promiseResult{code: rcpt.Code, ret: rcpt.Ret},
			})
		}
	}

	if _, err := vm.tree.Flush(); err != nil {
		return nil, err
	}
	return results, nil
}

// Validates the sender of a top level message and debits the value it attaches.
func (vm *VM) chargeSender(from addr.Address, value abi.TokenAmount) (exitcode.ExitCode, error) {
	sender, found, err := vm.tree.GetActor(from)
	if err != nil {
		return 0, err
	}
	if !found {
		return exitcode.SysErrSenderInvalid, nil
	}
	if value.LessThan(big.Zero()) || sender.Balance.LessThan(value) {
		return exitcode.SysErrInsufficientFunds, nil
	}
	sender.CallSeqNum++
	sender.Balance = big.Sub(sender.Balance, value)
	return exitcode.Ok, vm.tree.SetActor(from, sender)
}

// Runs one invocation. On failure the state tree is restored to what it was before the
// invocation and the value it carried is returned to the sender.
func (vm *VM) invoke(msg *message) (*Receipt, []*message, error) {
	snapshot, err := vm.tree.Flush()
	if err != nil {
		return nil, nil, err
	}

	ic := newInvocationContext(vm, msg)
	ret, code, errMsg := ic.run()
	rcpt := &Receipt{
		From:     msg.from,
		To:       msg.to,
		Method:   msg.method,
		Value:    msg.value,
		Callback: msg.result != nil,
		Code:     code,
		Ret:      ret,
		Error:    errMsg,
		Logs:     ic.logs,
	}
	if code.IsSuccess() {
		return rcpt, ic.sends, nil
	}

	if err := vm.restore(snapshot); err != nil {
		return nil, nil, err
	}
	if !msg.value.IsZero() {
		if err := vm.credit(msg.from, msg.value); err != nil {
			return nil, nil, xerrors.Errorf("failed to refund %v to %v: %w", msg.value, msg.from, err)
		}
	}
	return rcpt, nil, nil
}

func (vm *VM) restore(root cid.Cid) error {
	tree, err := states.LoadTree(vm.store, root)
	if err != nil {
		return xerrors.Errorf("failed to restore state tree %v: %w", root, err)
	}
	vm.tree = tree
	return nil
}

func (vm *VM) credit(a addr.Address, value abi.TokenAmount) error {
	actor, err := vm.tree.MustGetActor(a)
	if err != nil {
		return err
	}
	actor.Balance = big.Add(actor.Balance, value)
	return vm.tree.SetActor(a, actor)
}

func serialize(v cbor.Marshaler) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := v.MarshalCBOR(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
