package render

import (
	"fmt"
	"io"

	"github.com/definance/dexgate/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format Format
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format Format) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)

type networkJSON struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	Factory     string `json:"factory,omitempty"`
	Router      string `json:"router,omitempty"`
	Configured  bool   `json:"configured"`
	Usable      bool   `json:"usable"`
	Error       string `json:"error,omitempty"`
}

// Render renders the list of networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.format.Machine() {
		out := make([]networkJSON, 0, len(result.Networks))
		for _, n := range result.Networks {
			entry := networkJSON{
				Name:        n.Name,
				ChainID:     n.ChainID,
				ExplorerURL: n.ExplorerURL,
				Factory:     n.Factory,
				Router:      n.Router,
				Configured:  n.Configured,
				Usable:      n.Usable,
			}
			if n.Error != nil {
				entry.Error = n.Error.Error()
			}
			out = append(out, entry)
		}
		return WriteMachine(r.out, r.format, out)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Supported Networks:")
	fmt.Fprintln(r.out)

	if result.SettingsError != nil {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Domain settings unavailable: %v", result.SettingsError)))
		fmt.Fprintln(r.out)
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"", "Network", "Chain ID", "Explorer", "Factory", "Router"})
	for _, n := range result.Networks {
		t.AppendRow(table.Row{statusIcon(n), n.Name, n.ChainID, n.ExplorerURL, n.Factory, n.Router})
	}
	t.Render()

	for _, n := range result.Networks {
		if n.Error != nil {
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", n.Name, n.Error)
		}
	}

	return nil
}

func statusIcon(n usecase.NetworkStatus) string {
	switch {
	case n.Error != nil:
		return "❌"
	case n.Usable:
		return "✅"
	case n.Configured:
		return "⚠️"
	default:
		return "·"
	}
}
