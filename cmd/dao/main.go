package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/yaymalaga/Investment-dao/internal/dao"
	"github.com/yaymalaga/Investment-dao/internal/store"
	"github.com/yaymalaga/Investment-dao/internal/token"
	"github.com/yaymalaga/Investment-dao/internal/treasury"
	"github.com/yaymalaga/Investment-dao/pkg/db/pebble"
	"github.com/yaymalaga/Investment-dao/pkg/log"
)

// config is the state-directory configuration written by `dao init`.
type config struct {
	Quorum uint8 `json:"quorum"`
}

// env is a fully wired governance instance over one state directory.
type env struct {
	governor *dao.Governor
	ledger   *token.Ledger
	treasury *treasury.Treasury

	stores []*pebble.KVStore
}

func (e *env) Close() {
	for _, s := range e.stores {
		if err := s.Close(); err != nil {
			log.CLI.Error().Err(err).Msg("closing store")
		}
	}
}

func openEnv(c *cli.Context) (*env, error) {
	stateDir := c.String("state-dir")

	raw, err := os.ReadFile(filepath.Join(stateDir, "config.json"))
	if err != nil {
		return nil, fmt.Errorf("read config (did you run `dao init`?): %w", err)
	}
	var cfg config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	e := &env{}
	govKV, err := pebble.NewKVStore(filepath.Join(stateDir, "governance"))
	if err != nil {
		return nil, fmt.Errorf("open governance store: %w", err)
	}
	e.stores = append(e.stores, govKV)

	tokenKV, err := pebble.NewKVStore(filepath.Join(stateDir, "token"))
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open token store: %w", err)
	}
	e.stores = append(e.stores, tokenKV)

	treasuryKV, err := pebble.NewKVStore(filepath.Join(stateDir, "treasury"))
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open treasury store: %w", err)
	}
	e.stores = append(e.stores, treasuryKV)

	e.ledger = token.NewLedger(tokenKV)
	e.treasury = treasury.New(treasuryKV)
	e.governor, err = dao.New(store.NewGovernance(govKV), e.ledger, e.treasury, nil, cfg.Quorum)
	if err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return amount, nil
}

// proposalView is the JSON rendering of a proposal and its tally.
type proposalView struct {
	ID            uint32 `json:"id"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	VoteStart     uint64 `json:"vote_start"`
	VoteEnd       uint64 `json:"vote_end"`
	Executed      bool   `json:"executed"`
	ForWeight     uint64 `json:"for_weight"`
	AgainstWeight uint64 `json:"against_weight"`
}

func render(id dao.ProposalID, p dao.Proposal, t dao.ProposalTally) proposalView {
	return proposalView{
		ID:            uint32(id),
		To:            p.To.String(),
		Amount:        p.Amount.Dec(),
		VoteStart:     p.VoteStart,
		VoteEnd:       p.VoteEnd,
		Executed:      p.Executed,
		ForWeight:     t.For,
		AgainstWeight: t.Against,
	}
}

func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func main() {
	app := &cli.App{
		Name:  "dao",
		Usage: "token-weighted governance over a local state directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "state-dir",
				Value: "dao-state",
				Usage: "directory holding governance, token and treasury state",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "trace, debug, info, warn, error",
			},
		},
		Before: func(c *cli.Context) error {
			level, err := log.ParseLogLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			log.Init(log.Options{LogLevel: level, Type: log.ConsoleLogger})
			return nil
		},
		Commands: []*cli.Command{
			initCommand(),
			proposeCommand(),
			voteCommand(),
			executeCommand(),
			showCommand(),
			listCommand(),
			nextIDCommand(),
			balanceCommand(),
			supplyCommand(),
			treasuryCommand(),
			depositCommand(),
			transferCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "create a state directory, mint the token supply and fund the treasury",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "supply", Required: true, Usage: "initial token supply"},
			&cli.StringFlag{Name: "holder", Required: true, Usage: "account the supply is minted to (hex)"},
			&cli.UintFlag{Name: "quorum", Required: true, Usage: "quorum percentage (0-100)"},
			&cli.StringFlag{Name: "deposit", Value: "0", Usage: "initial treasury deposit"},
		},
		Action: func(c *cli.Context) error {
			stateDir := c.String("state-dir")
			if c.Uint("quorum") > 100 {
				return dao.ErrInvalidQuorum
			}
			holder, err := dao.ParseAccountID(c.String("holder"))
			if err != nil {
				return err
			}
			supply, err := parseAmount(c.String("supply"))
			if err != nil {
				return err
			}
			deposit, err := parseAmount(c.String("deposit"))
			if err != nil {
				return err
			}

			if err := os.MkdirAll(stateDir, 0o755); err != nil {
				return fmt.Errorf("create state dir: %w", err)
			}
			cfg, err := json.Marshal(config{Quorum: uint8(c.Uint("quorum"))})
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(stateDir, "config.json"), cfg, 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.ledger.Mint(holder, supply); err != nil {
				return err
			}
			if !deposit.IsZero() {
				if err := e.treasury.Deposit(deposit); err != nil {
					return err
				}
			}
			log.CLI.Info().
				Str("state_dir", stateDir).
				Str("supply", supply.Dec()).
				Str("holder", holder.String()).
				Uint("quorum", c.Uint("quorum")).
				Msg("state initialized")
			return nil
		},
	}
}

func proposeCommand() *cli.Command {
	return &cli.Command{
		Name:  "propose",
		Usage: "open a spending proposal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Required: true, Usage: "destination account (hex)"},
			&cli.StringFlag{Name: "amount", Required: true, Usage: "amount to transfer"},
			&cli.Uint64Flag{Name: "duration", Required: true, Usage: "voting window in minutes"},
		},
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			to, err := dao.ParseAccountID(c.String("to"))
			if err != nil {
				return err
			}
			amount, err := parseAmount(c.String("amount"))
			if err != nil {
				return err
			}
			id, err := e.governor.Propose(to, amount, c.Uint64("duration"))
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
}

func voteCommand() *cli.Command {
	return &cli.Command{
		Name:  "vote",
		Usage: "cast a vote on a proposal",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "id", Required: true},
			&cli.StringFlag{Name: "voter", Required: true, Usage: "voting account (hex)"},
			&cli.BoolFlag{Name: "against", Usage: "vote against instead of for"},
		},
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			voter, err := dao.ParseAccountID(c.String("voter"))
			if err != nil {
				return err
			}
			kind := dao.VoteFor
			if c.Bool("against") {
				kind = dao.VoteAgainst
			}
			return e.governor.Vote(c.Context, voter, dao.ProposalID(c.Uint("id")), kind)
		},
	}
}

func executeCommand() *cli.Command {
	return &cli.Command{
		Name:  "execute",
		Usage: "pay out an accepted proposal",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "id", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()
			return e.governor.Execute(dao.ProposalID(c.Uint("id")))
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "print a proposal and its tally",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "id", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			id := dao.ProposalID(c.Uint("id"))
			proposal, err := e.governor.GetProposal(id)
			if err != nil {
				return err
			}
			tally, err := e.governor.Tally(id)
			if err != nil {
				return err
			}
			return printJSON(render(id, proposal, tally))
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "print all proposals in id order",
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			records, err := e.governor.Proposals()
			if err != nil {
				return err
			}
			views := make([]proposalView, 0, len(records))
			for _, record := range records {
				tally, err := e.governor.Tally(record.ID)
				if err != nil {
					return err
				}
				views = append(views, render(record.ID, record.Proposal, tally))
			}
			return printJSON(views)
		},
	}
}

func nextIDCommand() *cli.Command {
	return &cli.Command{
		Name:  "next-id",
		Usage: "print the next unassigned proposal id",
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			id, err := e.governor.NextProposalID()
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
}

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "balance",
		Usage: "print an account's token balance",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account", Required: true, Usage: "account (hex)"},
		},
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			account, err := dao.ParseAccountID(c.String("account"))
			if err != nil {
				return err
			}
			balance, err := e.governor.BalanceOf(c.Context, account)
			if err != nil {
				return err
			}
			fmt.Println(balance.Dec())
			return nil
		},
	}
}

func supplyCommand() *cli.Command {
	return &cli.Command{
		Name:  "supply",
		Usage: "print the total token supply",
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			supply, err := e.governor.TotalSupply(c.Context)
			if err != nil {
				return err
			}
			fmt.Println(supply.Dec())
			return nil
		},
	}
}

func treasuryCommand() *cli.Command {
	return &cli.Command{
		Name:  "treasury",
		Usage: "print the treasury balance",
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			balance, err := e.treasury.Balance()
			if err != nil {
				return err
			}
			fmt.Println(balance.Dec())
			return nil
		},
	}
}

func depositCommand() *cli.Command {
	return &cli.Command{
		Name:  "deposit",
		Usage: "add funds to the treasury",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "amount", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			amount, err := parseAmount(c.String("amount"))
			if err != nil {
				return err
			}
			return e.treasury.Deposit(amount)
		},
	}
}

func transferCommand() *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "move tokens between accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "sender account (hex)"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "recipient account (hex)"},
			&cli.StringFlag{Name: "amount", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			from, err := dao.ParseAccountID(c.String("from"))
			if err != nil {
				return err
			}
			to, err := dao.ParseAccountID(c.String("to"))
			if err != nil {
				return err
			}
			amount, err := parseAmount(c.String("amount"))
			if err != nil {
				return err
			}
			return e.ledger.Transfer(from, to, amount)
		},
	}
}
