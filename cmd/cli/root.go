package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amirasaad/banksystem/infra/initializer"
	"github.com/amirasaad/banksystem/pkg/app"
	"github.com/amirasaad/banksystem/pkg/config"
	"github.com/spf13/cobra"
)

// runtime is shared by every command of one invocation.
type runtime struct {
	out    io.Writer
	errOut io.Writer
	dbPath string
	app    *app.App
}

// execute runs one invocation and always releases the store, including when
// the command fails. Command output goes to out; cobra errors and usage go to
// errOut.
func execute(out, errOut io.Writer, args []string) error {
	rt := &runtime{out: out, errOut: errOut}
	cmd := newRootCmd(rt)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if closeErr := rt.close(); err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "banksystem",
		Short:        "Record bank owners and their account balances",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipStore(cmd) {
				return nil
			}
			return rt.open()
		},
	}
	cmd.SetOut(rt.out)
	cmd.SetErr(rt.errOut)
	cmd.PersistentFlags().StringVar(&rt.dbPath, "db", "", "SQLite database file (overrides DATABASE_PATH)")

	cmd.AddCommand(
		newDemoCommand(rt),
		newOwnerCommand(rt),
		newOwnersCommand(rt),
		newAccountCommand(rt),
		newDepositCommand(rt),
		newWithdrawCommand(rt),
		newBalanceCommand(rt),
		newTotalCommand(rt),
	)
	return cmd
}

// skipStore reports whether cmd runs without opening the store.
func skipStore(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}

func (rt *runtime) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if rt.dbPath != "" {
		cfg.DB.Path = rt.dbPath
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	rt.app = app.New(deps, cfg)
	return nil
}

func (rt *runtime) close() error {
	if rt.app == nil {
		return nil
	}
	err := rt.app.Close()
	rt.app = nil
	return err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid owner id %q", s)
	}
	return id, nil
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}
