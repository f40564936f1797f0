package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/fundme/internal/usecase"
)

// AccountsRenderer renders the signers available on a network
type AccountsRenderer struct {
	out   io.Writer
	color bool
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer, color bool) *AccountsRenderer {
	return &AccountsRenderer{
		out:   out,
		color: color,
	}
}

// Render renders the account table
func (r *AccountsRenderer) Render(accounts []usecase.AccountBalance, network string) error {
	if len(accounts) == 0 {
		fmt.Fprintf(r.out, "No accounts available on %s\n", network)
		return nil
	}

	withBalances := accounts[0].Balance != nil

	fmt.Fprintf(r.out, "👛 Accounts on %s:\n\n", network)
	t := newTable(r.out)
	header := table.Row{"#", "Name", "Address", "Source"}
	if withBalances {
		header = append(header, "Balance")
	}
	t.AppendHeader(header)
	for _, a := range accounts {
		name := color.New(color.Faint).Sprint("-")
		if a.Account.Name != "" {
			name = color.New(color.FgCyan).Sprint(a.Account.Name)
		}
		row := table.Row{a.Account.Index, name, a.Account.Address.Hex(), string(a.Account.Source)}
		if withBalances {
			row = append(row, FormatEther(a.Balance))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}
