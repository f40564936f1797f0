package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/trebuchet-org/fundme/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// RenderNetworksList renders the configured networks and, when checked, their RPC status
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in fundme.toml [networks]")
		return nil
	}

	checked := lo.SomeBy(result.Networks, func(n usecase.NetworkStatus) bool {
		return n.Reachable || n.Error != nil
	})

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable(r.out)
	header := table.Row{"Network", "Chain ID", "Type", "Price Feed"}
	if checked {
		header = append(header, "RPC")
	}
	t.AppendHeader(header)

	for _, n := range result.Networks {
		kind := color.New(color.FgBlue).Sprint("live")
		if n.Development {
			kind = color.New(color.FgMagenta).Sprint("development")
		}
		chainID := "-"
		if n.ChainID != 0 {
			chainID = fmt.Sprintf("%d", n.ChainID)
		}
		feed := n.PriceFeed
		if feed == "" {
			if n.Development {
				feed = color.New(color.Faint).Sprint("mock")
			} else {
				feed = color.New(color.FgRed).Sprint("none")
			}
		}
		row := table.Row{n.Name, chainID, kind, feed}
		if checked {
			row = append(row, rpcStatus(n))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}

func rpcStatus(n usecase.NetworkStatus) string {
	switch {
	case n.Error != nil:
		return color.New(color.FgRed).Sprintf("❌ %v", n.Error)
	case n.ChainID != 0 && n.RemoteChainID != n.ChainID:
		return color.New(color.FgYellow).Sprintf("⚠️  chain %d", n.RemoteChainID)
	default:
		return color.New(color.FgGreen).Sprint("✅ reachable")
	}
}
