package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/vault"
	"github.com/brainstems/intellex-vesting-contracts/actors/states"
	"github.com/brainstems/intellex-vesting-contracts/actors/util/adt"
	"github.com/brainstems/intellex-vesting-contracts/support/ipld"
)

// A state tree loaded from a CAR export.
type snapshot struct {
	name string
	root cid.Cid
	bs   *ipld.MetricsBlockStore
	tree *states.Tree
}

func loadSnapshot(ctx context.Context, path string) (*snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint:errcheck

	bs := ipld.NewMetricsBlockStore(ipld.NewBlockStoreInMemory())
	root, err := ipld.LoadCAR(bs, bufio.NewReader(f))
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	tree, err := states.LoadTree(adt.WrapBlockStore(ctx, bs), root)
	if err != nil {
		return nil, xerrors.Errorf("%s: failed to load state tree %v: %w", path, root, err)
	}
	return &snapshot{
		name: filepath.Base(path),
		root: root,
		bs:   bs,
		tree: tree,
	}, nil
}

type tokenReport struct {
	addr    addr.Address
	summary *token.StateSummary
}

type vaultReport struct {
	addr    addr.Address
	version vault.StateVersion
	state   *vault.State
	summary *vault.StateSummary
}

// The outcome of checking one snapshot.
type report struct {
	snap       *snapshot
	accounts   int
	tokens     []tokenReport
	vaults     []vaultReport
	violations []string
}

// Loads and checks each file concurrently. Reports are returned in the order of paths.
func checkSnapshots(ctx context.Context, paths []string) ([]*report, error) {
	reports := make([]*report, len(paths))
	grp, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := loadSnapshot(gctx, path)
			if err != nil {
				return err
			}
			r, err := checkSnapshot(snap)
			if err != nil {
				return xerrors.Errorf("%s: %w", path, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func checkSnapshot(snap *snapshot) (*report, error) {
	// Native value is neither minted nor burned after genesis, so the tree's own total is expected.
	expected, err := snap.tree.TotalBalance()
	if err != nil {
		return nil, xerrors.Errorf("failed to sum balances: %w", err)
	}
	summary, acc, err := states.CheckStateInvariants(snap.tree, expected)
	if err != nil {
		return nil, xerrors.Errorf("failed to check state invariants: %w", err)
	}

	r := &report{
		snap:       snap,
		accounts:   len(summary.Accounts),
		violations: acc.Messages(),
	}
	for a, sum := range summary.Tokens { // nolint:nomaprange
		r.tokens = append(r.tokens, tokenReport{addr: a, summary: sum})
	}
	sort.Slice(r.tokens, func(i, j int) bool { return idLess(r.tokens[i].addr, r.tokens[j].addr) })

	for a, sum := range summary.Vaults { // nolint:nomaprange
		var vs vault.VState
		if err := snap.tree.GetState(a, &vs); err != nil {
			return nil, xerrors.Errorf("failed to load vault %v: %w", a, err)
		}
		st, err := vs.Current(snap.tree.Store)
		if err != nil {
			return nil, xerrors.Errorf("failed to read vault %v: %w", a, err)
		}
		r.vaults = append(r.vaults, vaultReport{addr: a, version: vs.Version, state: st, summary: sum})
	}
	sort.Slice(r.vaults, func(i, j int) bool { return idLess(r.vaults[i].addr, r.vaults[j].addr) })
	return r, nil
}

// A page of vault accounts at a point in time.
type accountListing struct {
	vault addr.Address
	at    vault.TimestampSec
	from  uint64
	total uint64
	infos []vault.AccountInfo
}

func listAccounts(snap *snapshot, vaultAddr addr.Address, at vault.TimestampSec, from, limit uint64) (*accountListing, error) {
	if at > builtin.MaxTimestampSeconds {
		return nil, xerrors.Errorf("timestamp %d out of range, must be at most %d", at, builtin.MaxTimestampSeconds)
	}
	actor, err := snap.tree.MustGetActor(vaultAddr)
	if err != nil {
		return nil, err
	}
	if actor.Code != builtin.VaultActorCodeID {
		return nil, xerrors.Errorf("%v is not a vault actor", vaultAddr)
	}
	var vs vault.VState
	if err := snap.tree.GetState(vaultAddr, &vs); err != nil {
		return nil, xerrors.Errorf("failed to load vault %v: %w", vaultAddr, err)
	}
	st, err := vs.Current(snap.tree.Store)
	if err != nil {
		return nil, xerrors.Errorf("failed to read vault %v: %w", vaultAddr, err)
	}

	if limit == 0 {
		limit = vault.DefaultListLimit
	}
	if limit > vault.MaxListLimit {
		limit = vault.MaxListLimit
	}
	total, err := st.AccountCount(snap.tree.Store)
	if err != nil {
		return nil, err
	}
	infos, err := st.ListAccounts(snap.tree.Store, from, limit, vault.ToNano(at))
	if err != nil {
		return nil, err
	}
	return &accountListing{
		vault: vaultAddr,
		at:    at,
		from:  from,
		total: total,
		infos: infos,
	}, nil
}

//
// Rendering
//

func renderSummary(p *message.Printer, w io.Writer, r *report) {
	p.Fprintf(w, "snapshot %s\n", r.snap.name)
	p.Fprintf(w, "  actors: %d accounts, %d tokens, %d vaults\n", r.accounts, len(r.tokens), len(r.vaults))
	for _, t := range r.tokens {
		p.Fprintf(w, "  token %s\n", t.addr.String())
		p.Fprintf(w, "    holders: %d\n", t.summary.Accounts)
		p.Fprintf(w, "    supply:  %s\n", formatAmount(p, t.summary.TotalSupply))
	}
	for _, v := range r.vaults {
		p.Fprintf(w, "  vault %s\n", v.addr.String())
		p.Fprintf(w, "    version:   %d\n", uint64(v.version))
		p.Fprintf(w, "    owner:     %s\n", v.state.Owner.String())
		p.Fprintf(w, "    token:     %s\n", v.state.Token.String())
		p.Fprintf(w, "    accounts:  %d\n", v.summary.Accounts)
		p.Fprintf(w, "    deposited: %s\n", formatAmount(p, v.summary.TotalBalance))
		p.Fprintf(w, "    claimed:   %s\n", formatAmount(p, v.summary.ClaimedBalance))
		p.Fprintf(w, "    locking:   %s\n", formatAmount(p, v.summary.Locking))
	}
	if len(r.violations) == 0 {
		p.Fprintf(w, "  invariants: ok\n")
		return
	}
	p.Fprintf(w, "  invariants: %d violations\n", len(r.violations))
	for _, msg := range r.violations {
		p.Fprintf(w, "    %s\n", msg)
	}
}

func renderStats(p *message.Printer, w io.Writer, r *report) {
	p.Fprintf(w, "  root: %s\n", r.snap.root.String())
	p.Fprintf(w, "  blocks: %d read, %d written\n", r.snap.bs.ReadCount(), r.snap.bs.WriteCount())
}

func renderAccounts(p *message.Printer, w io.Writer, l *accountListing) {
	at := strconv.FormatUint(l.at, 10)
	if len(l.infos) == 0 {
		p.Fprintf(w, "vault %s: no accounts from %d of %d at %s\n", l.vault.String(), l.from, l.total, at)
		return
	}
	last := l.from + uint64(len(l.infos)) - 1
	p.Fprintf(w, "vault %s: accounts %d to %d of %d at %s\n", l.vault.String(), l.from, last, l.total, at)
	for _, info := range l.infos {
		p.Fprintf(w, "  %s\n", info.Account.String())
		p.Fprintf(w, "    schedule:  %d sessions of %s every %ds from %s\n", info.SessionNum,
			formatAmount(p, info.ReleasePerSession), info.SessionInterval, strconv.FormatUint(info.StartTimestamp, 10))
		p.Fprintf(w, "    claimed:   %d sessions, %s of %s deposited\n", info.LastClaimSession,
			formatAmount(p, info.ClaimedAmount), formatAmount(p, info.DepositedAmount))
		p.Fprintf(w, "    unclaimed: %s\n", formatAmount(p, info.UnclaimedAmount))
	}
}

// Formats an amount with digit grouping. Amounts beyond int64 are printed plainly.
func formatAmount(p *message.Printer, a abi.TokenAmount) string {
	if a.Int == nil {
		return "0"
	}
	if !a.IsInt64() {
		return a.String()
	}
	return p.Sprintf("%d", a.Int64())
}

// Orders ID addresses numerically.
func idLess(a, b addr.Address) bool {
	ida, erra := addr.IDFromAddress(a)
	idb, errb := addr.IDFromAddress(b)
	if erra != nil || errb != nil {
		return a.String() < b.String()
	}
	return ida < idb
}
