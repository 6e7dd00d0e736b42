package main

import (
	"fmt"

	"github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/domain/owner"
	"github.com/amirasaad/banksystem/pkg/dto"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	okColor     = color.New(color.FgGreen)
	rejectColor = color.New(color.FgYellow)
)

func newDemoCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Save John Doe with a 1000.0 account and print the store summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := rt.app.AccountService

			o := owner.New("John Doe", "123 Street", "1234567890")
			acc := account.New(o, 1000.0)
			if err := svc.OpenAccount(ctx, acc); err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Owner: %s, Balance: %s\n", o, account.FormatBalance(acc.Balance))

			if err := printOwners(rt, cmd); err != nil {
				return err
			}

			balance, err := svc.BalanceFor(ctx, o.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Account balance for owner %s: %s\n", o.Name, account.FormatBalance(balance))

			return printTotal(rt, cmd)
		},
	}
}

func newOwnerCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Owner management",
	}
	cmd.AddCommand(newOwnerAddCommand(rt))
	return cmd
}

func newOwnerAddCommand(rt *runtime) *cobra.Command {
	var name, address, phone string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register an owner",
		Example: "  banksystem owner add --name \"John Doe\" --address \"123 Street\" --phone 1234567890",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := owner.New(name, address, phone)
			if err := rt.app.AccountService.RegisterOwner(cmd.Context(), o); err != nil {
				return err
			}
			okColor.Fprintf(rt.out, "Owner ID: %d, %s\n", o.ID, o)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Owner name")
	cmd.Flags().StringVar(&address, "address", "", "Owner address")
	cmd.Flags().StringVar(&phone, "phone", "", "Owner phone")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newOwnersCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "owners",
		Short: "List every owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printOwners(rt, cmd)
		},
	}
}

func newAccountCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
	}
	cmd.AddCommand(newAccountOpenCommand(rt))
	return cmd
}

func newAccountOpenCommand(rt *runtime) *cobra.Command {
	var (
		ownerID              int64
		name, address, phone string
		balance              float64
	)
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open an account for an existing owner, or for a new one in a single transaction",
		Example: "  banksystem account open --owner-id 1 --balance 100\n" +
			"  banksystem account open --name \"Jane Roe\" --address \"1 Road\" --phone 555 --balance 50",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := rt.app.AccountService

			var acc *account.Account
			switch {
			case ownerID > 0:
				o, err := svc.LoadOwner(ctx, ownerID)
				if err != nil {
					return err
				}
				acc = account.New(o, balance)
				if err := svc.OpenAccount(ctx, acc); err != nil {
					return err
				}
			case name != "":
				acc = account.New(owner.New(name, address, phone), balance)
				if err := svc.OpenAccountTx(ctx, acc); err != nil {
					return err
				}
			default:
				return fmt.Errorf("account open requires --owner-id or --name")
			}
			okColor.Fprintf(rt.out, "Owner ID: %d, %s\n", acc.OwnerID(), acc)
			return nil
		},
	}
	cmd.Flags().Int64Var(&ownerID, "owner-id", 0, "Existing owner id")
	cmd.Flags().StringVar(&name, "name", "", "New owner name")
	cmd.Flags().StringVar(&address, "address", "", "New owner address")
	cmd.Flags().StringVar(&phone, "phone", "", "New owner phone")
	cmd.Flags().Float64Var(&balance, "balance", 0, "Opening balance")
	cmd.MarkFlagsMutuallyExclusive("owner-id", "name")
	return cmd
}

func newDepositCommand(rt *runtime) *cobra.Command {
	return newTransactionCommand(rt, "deposit", "Deposit into an owner's account",
		func(cmd *cobra.Command, acc *account.Account, amount float64) (account.Receipt, error) {
			return rt.app.AccountService.Deposit(cmd.Context(), acc, amount)
		})
}

func newWithdrawCommand(rt *runtime) *cobra.Command {
	return newTransactionCommand(rt, "withdraw", "Withdraw from an owner's account",
		func(cmd *cobra.Command, acc *account.Account, amount float64) (account.Receipt, error) {
			return rt.app.AccountService.Withdraw(cmd.Context(), acc, amount)
		})
}

type transactionFunc func(cmd *cobra.Command, acc *account.Account, amount float64) (account.Receipt, error)

func newTransactionCommand(rt *runtime, use, short string, apply transactionFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <owner-id> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			acc, err := rt.app.AccountService.LoadAccount(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			r, err := apply(cmd, acc, amount)
			if err != nil {
				return err
			}
			printReceipt(rt, r)
			return nil
		},
	}
}

func newBalanceCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <owner-id>",
		Short: "Print the balance of an owner's account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := parseID(args[0])
			if err != nil {
				return err
			}
			o, err := rt.app.AccountService.LoadOwner(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			balance, err := rt.app.AccountService.BalanceFor(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Account balance for owner %s: %s\n", o.Name, account.FormatBalance(balance))
			return nil
		},
	}
}

func newTotalCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the sum of every account balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTotal(rt, cmd)
		},
	}
}

func printOwners(rt *runtime, cmd *cobra.Command) error {
	owners, err := rt.app.AccountService.Owners(cmd.Context())
	if err != nil {
		return err
	}
	for _, o := range owners {
		fmt.Fprintln(rt.out, ownerLine(o))
	}
	return nil
}

func ownerLine(o dto.OwnerRead) string {
	return fmt.Sprintf("Owner ID: %d, Name: %s, Address: %s, Phone: %s", o.ID, o.Name, o.Address, o.Phone)
}

func printTotal(rt *runtime, cmd *cobra.Command) error {
	total, err := rt.app.AccountService.TotalBalance(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.out, "Total balance in the bank system: %s\n", account.FormatBalance(total))
	return nil
}

func printReceipt(rt *runtime, r account.Receipt) {
	if r.Accepted() {
		okColor.Fprintln(rt.out, r.String())
		return
	}
	rejectColor.Fprintln(rt.out, r.String())
}
