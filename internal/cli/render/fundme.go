package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/fundme/internal/domain/models"
	"github.com/trebuchet-org/fundme/internal/usecase"
)

// Output formats accepted by the show command
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var labelStyle = color.New(color.FgHiBlack)

// FundMeRenderer renders FundMe interactions and state
type FundMeRenderer struct {
	out   io.Writer
	color bool
}

// NewFundMeRenderer creates a new FundMe renderer
func NewFundMeRenderer(out io.Writer, color bool) *FundMeRenderer {
	return &FundMeRenderer{
		out:   out,
		color: color,
	}
}

func (r *FundMeRenderer) field(label string, value interface{}) {
	fmt.Fprintf(r.out, "  %s %v\n", labelStyle.Sprintf("%-15s", label+":"), value)
}

func (r *FundMeRenderer) outcome(outcome *models.TxOutcome) {
	if outcome == nil {
		return
	}
	r.field("Transaction", outcome.Hash.Hex())
	r.field("Block", outcome.BlockNumber)
	r.field("Gas used", printer.Sprintf("%d", outcome.GasUsed))
	r.field("Gas cost", FormatEther(outcome.GasCost))
}

// RenderFund renders a completed fund() call
func (r *FundMeRenderer) RenderFund(result *usecase.FundResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Funded %s with %s", result.Contract.Hex(), FormatEther(result.Value))))
	r.field("Funder", result.Funder.Hex())
	r.field("Total funded", FormatEther(result.Total))
	if result.Minimum != nil {
		r.field("Minimum", FormatEther(result.Minimum))
	}
	r.outcome(result.Outcome)
	return nil
}

// RenderWithdraw renders a completed withdraw() or cheaperWithdraw() call
func (r *FundMeRenderer) RenderWithdraw(result *usecase.WithdrawResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Withdrew %s from %s", FormatEther(result.Withdrawn), result.Contract.Hex())))
	r.field("Owner", result.Owner.Hex())
	r.field("Start balance", FormatEther(result.StartBalance))
	r.field("End balance", FormatEther(result.EndBalance))
	r.field("Net change", FormatEther(result.BalanceChange))
	r.outcome(result.Outcome)
	return nil
}

// RenderQuote renders the minimum contribution at the current feed price
func (r *FundMeRenderer) RenderQuote(result *usecase.QuoteResult) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "💱 FundMe %s\n", result.Contract.Hex())
	r.field("Price feed", result.PriceFeed.Hex())
	r.field("ETH/USD", FormatUSD(result.EthUsdPrice))
	r.field("Minimum (USD)", FormatUSD(result.MinimumUSD))
	r.field("Minimum (ETH)", FormatEther(result.MinimumWei))
	r.field("Minimum (wei)", FormatWei(result.MinimumWei))
	return nil
}

// RenderState renders a contract snapshot in the requested format
func (r *FundMeRenderer) RenderState(state *models.FundMeState, format string) error {
	switch format {
	case FormatJSON:
		return RenderJSON(r.out, state)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "FundMe on %s\n", state.Network)
	r.field("Address", state.Address.Hex())
	r.field("Owner", state.Owner.Hex())
	r.field("Price feed", state.PriceFeed.Hex())
	r.field("Feed version", state.FeedVersion)
	r.field("ETH/USD", FormatUSD(state.EthUsdPrice))
	r.field("Minimum (USD)", FormatUSD(state.MinimumUSD))
	r.field("Balance", FormatEther(state.Balance))

	fmt.Fprintln(r.out)
	if len(state.Funders) == 0 {
		fmt.Fprintln(r.out, "No funders")
		return nil
	}

	color.New(color.Bold).Fprintf(r.out, "Funders (%d):\n", len(state.Funders))
	t := newTable(r.out)
	t.AppendHeader(table.Row{"#", "Funder", "Amount"})
	for _, f := range state.Funders {
		t.AppendRow(table.Row{f.Index, f.Address.Hex(), FormatEther(f.Amount)})
	}
	t.Render()
	return nil
}
