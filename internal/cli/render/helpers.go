package render

import (
	"io"
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)

	weiPerEther = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatEther renders a wei amount as ETH with grouped thousands
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther).Float64()
	return printer.Sprintf("%.4f ETH", eth)
}

// FormatUSD renders an 18 decimal USD amount
func FormatUSD(amount *big.Int) string {
	if amount == nil {
		return "-"
	}
	usd, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), weiPerEther).Float64()
	return printer.Sprintf("$%.2f", usd)
}

// FormatWei renders a raw wei amount with grouped thousands
func FormatWei(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	if !wei.IsInt64() {
		return wei.String() + " wei"
	}
	return printer.Sprintf("%d wei", wei.Int64())
}

// Title capitalises each word of s
func Title(s string) string {
	return titler.String(s)
}

// newTable creates a borderless table in the style used by all list commands
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.Style().Format.Header = text.FormatUpper
	return t
}

func shortHash(hash string) string {
	if len(hash) <= 18 {
		return hash
	}
	return hash[:10] + "..." + hash[len(hash)-6:]
}
