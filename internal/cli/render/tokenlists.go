package render

import (
	"fmt"
	"io"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// TokenListsRenderer renders fetched token lists
type TokenListsRenderer struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewTokenListsRenderer creates a new token lists renderer. verbose lists every token.
func NewTokenListsRenderer(out io.Writer, format Format, verbose bool) *TokenListsRenderer {
	return &TokenListsRenderer{out: out, format: format, verbose: verbose}
}

var _ Renderer[*usecase.FetchTokenListsResult] = (*TokenListsRenderer)(nil)

type tokenListJSON struct {
	Source  string            `json:"source"`
	List    *domain.TokenList `json:"list,omitempty"`
	Dropped int               `json:"dropped"`
	Error   string            `json:"error,omitempty"`
}

// Render renders the fetch result
func (r *TokenListsRenderer) Render(result *usecase.FetchTokenListsResult) error {
	if r.format.Machine() {
		out := make([]tokenListJSON, 0, len(result.Lists))
		for _, l := range result.Lists {
			entry := tokenListJSON{Source: l.Source, List: l.List, Dropped: l.Dropped}
			if l.Error != nil {
				entry.Error = l.Error.Error()
			}
			out = append(out, entry)
		}
		return WriteMachine(r.out, r.format, out)
	}

	if len(result.Lists) == 0 {
		fmt.Fprintln(r.out, "No remote token lists configured")
		return nil
	}

	fmt.Fprintf(r.out, "📜 Token lists for chain %d:\n\n", result.ChainID)
	for _, l := range result.Lists {
		if l.Error != nil {
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", l.Source, l.Error)
			continue
		}
		fmt.Fprintf(r.out, "  ✅ %s (%s) - %d tokens", valueStyle.Sprint(l.List.Name), l.Source, len(l.List.Tokens))
		if l.Dropped > 0 {
			fmt.Fprintf(r.out, ", %s", missingStyle.Sprintf("%d dropped", l.Dropped))
		}
		fmt.Fprintln(r.out)

		if r.verbose && len(l.List.Tokens) > 0 {
			t := newTable(r.out)
			t.AppendHeader(table.Row{"Symbol", "Name", "Address", "Decimals"})
			for _, token := range l.List.Tokens {
				t.AppendRow(table.Row{token.Symbol, token.Name, token.Address, token.Decimals})
			}
			t.Render()
			fmt.Fprintln(r.out)
		}
	}

	return nil
}
