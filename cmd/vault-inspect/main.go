package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"time"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/xerrors"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/vault"
)

var summaryCmd = &cli.Command{
	Name:        "summary",
	Usage:       "check state invariants and summarize tokens and vaults",
	Description: "Loads one or more CAR exports of a state tree, checks them in parallel and prints a summary of each.",
	ArgsUsage:   "FILE...",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "print the state root and block store read counts",
		},
	},
	Action: runSummaryCmd,
}

var accountsCmd = &cli.Command{
	Name:        "accounts",
	Usage:       "list the accounts of a vault",
	Description: "Lists vault accounts in order of first configuration, with the amount claimable at a point in time.",
	ArgsUsage:   "FILE",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "vault",
			Usage:    "ID address of the vault",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "at",
			Usage: "unix time in seconds at which to compute unclaimed amounts (default: now)",
		},
		&cli.Uint64Flag{
			Name:  "from",
			Usage: "index of the first account to list",
		},
		&cli.Uint64Flag{
			Name:  "limit",
			Usage: "maximum number of accounts to list",
			Value: vault.DefaultListLimit,
		},
	},
	Action: runAccountsCmd,
}

var amountCmd = &cli.Command{
	Name:        "amount",
	Usage:       "decode a token amount",
	Description: "Decodes a token amount from hex encoded big integer bytes",
	ArgsUsage:   "HEX",
	Action:      runAmountCmd,
}

func newApp() *cli.App {
	app := &cli.App{
		Name:        "vault-inspect",
		Usage:       "Inspect exported vesting vault state",
		Description: "Inspect exported vesting vault state",
		Commands: []*cli.Command{
			summaryCmd,
			accountsCmd,
			amountCmd,
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	for _, c := range app.Commands {
		sort.Sort(cli.FlagsByName(c.Flags))
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSummaryCmd(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return xerrors.New("at least one CAR file is required")
	}
	reports, err := checkSnapshots(context.Background(), c.Args().Slice())
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	violations := 0
	for _, r := range reports {
		renderSummary(p, c.App.Writer, r)
		if c.Bool("stats") {
			renderStats(p, c.App.Writer, r)
		}
		violations += len(r.violations)
	}
	if violations > 0 {
		return cli.Exit(fmt.Sprintf("%d invariant violations", violations), 2)
	}
	return nil
}

func runAccountsCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return xerrors.New("exactly one CAR file is required")
	}
	vaultAddr, err := addr.NewFromString(c.String("vault"))
	if err != nil {
		return xerrors.Errorf("invalid vault address: %w", err)
	}
	at := c.Uint64("at")
	if !c.IsSet("at") {
		at = uint64(time.Now().Unix())
	}

	ctx := context.Background()
	snap, err := loadSnapshot(ctx, c.Args().First())
	if err != nil {
		return err
	}
	listing, err := listAccounts(snap, vaultAddr, at, c.Uint64("from"), c.Uint64("limit"))
	if err != nil {
		return err
	}
	renderAccounts(message.NewPrinter(language.English), c.App.Writer, listing)
	return nil
}

func runAmountCmd(c *cli.Context) error {
	b, err := hex.DecodeString(c.Args().First())
	if err != nil {
		return err
	}
	i, err := big.FromBytes(b)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatAmount(message.NewPrinter(language.English), i))
	return nil
}
