package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/fundme/internal/cli/render"
	"github.com/trebuchet-org/fundme/internal/domain/bindings"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// defaultFundValue matches the amount sent by the tutorial's fund script
const defaultFundValue = "0.1"

// NewFundCmd creates the fund command
func NewFundCmd() *cobra.Command {
	var (
		value   string
		account string
		address string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Send ETH to the FundMe contract",
		Long: `Call fund() on the deployed FundMe contract.

The amount is checked against the contract's USD minimum at the current
price feed answer before the transaction is sent; use --force to skip the
check (the contract will then revert with "Didn't send enough!").

Examples:
  fundme fund
  fundme fund --value 0.05 --account 2
  fundme fund --network sepolia --value 0.02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			wei, err := bindings.ParseEther(value)
			if err != nil {
				return err
			}

			result, err := app.Fund.Run(cmd.Context(), usecase.FundParams{
				Address: address,
				Account: account,
				Value:   wei,
				Force:   force,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewFundMeRenderer(cmd.OutOrStdout(), useColor()).RenderFund(result)
		},
	}

	cmd.Flags().StringVar(&value, "value", defaultFundValue, "Amount in ETH")
	cmd.Flags().StringVar(&account, "account", "", "Named account or signer index (default deployer)")
	cmd.Flags().StringVar(&address, "address", "", "FundMe address (default: stored deployment)")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the minimum contribution check")

	return cmd
}

// NewWithdrawCmd creates the withdraw command
func NewWithdrawCmd() *cobra.Command {
	var (
		account string
		address string
		cheaper bool
	)

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw all funds as the contract owner",
		Long: `Call withdraw() (or cheaperWithdraw() with --cheaper) on the deployed
FundMe contract. Only the owner can withdraw; other accounts revert with
FundMe__NotOwner.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.Withdraw.Run(cmd.Context(), usecase.WithdrawParams{
				Address: address,
				Account: account,
				Cheaper: cheaper,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewFundMeRenderer(cmd.OutOrStdout(), useColor()).RenderWithdraw(result)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Named account or signer index (default deployer)")
	cmd.Flags().StringVar(&address, "address", "", "FundMe address (default: stored deployment)")
	cmd.Flags().BoolVar(&cheaper, "cheaper", false, "Use cheaperWithdraw()")

	return cmd
}

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var (
		address    string
		format     string
		maxFunders int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the on-chain state of the FundMe contract",
		Long: `Read owner, price feed, minimum, balance and funders of the deployed
FundMe contract.

Examples:
  fundme show
  fundme show --format yaml
  fundme show --network sepolia --max-funders 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			state, err := app.ShowFundMe.Run(cmd.Context(), usecase.ShowFundMeParams{
				Address:    address,
				MaxFunders: maxFunders,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				format = render.FormatJSON
			}
			return render.NewFundMeRenderer(cmd.OutOrStdout(), useColor()).RenderState(state, format)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "FundMe address (default: stored deployment)")
	cmd.Flags().StringVarP(&format, "format", "o", render.FormatTable, "Output format (table, json, yaml)")
	cmd.Flags().IntVar(&maxFunders, "max-funders", 0, "Stop after this many funders (0 for the default cap)")

	return cmd
}

// NewQuoteCmd creates the quote command
func NewQuoteCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show the minimum contribution at the current ETH/USD price",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.Quote.Run(cmd.Context(), usecase.QuoteParams{Address: address})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewFundMeRenderer(cmd.OutOrStdout(), useColor()).RenderQuote(result)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "FundMe address (default: stored deployment)")

	return cmd
}
