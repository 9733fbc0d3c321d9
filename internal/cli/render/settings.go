package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/definance/dexgate/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// SettingsView is a resolved snapshot and the chain it was resolved for
type SettingsView struct {
	ChainID  uint64
	Network  string
	Settings *domain.DomainSettings
}

// SettingsRenderer renders domain settings snapshots
type SettingsRenderer struct {
	out    io.Writer
	format Format
}

// NewSettingsRenderer creates a new settings renderer
func NewSettingsRenderer(out io.Writer, format Format) *SettingsRenderer {
	return &SettingsRenderer{out: out, format: format}
}

var _ Renderer[*SettingsView] = (*SettingsRenderer)(nil)

// Render writes the snapshot
func (r *SettingsRenderer) Render(view *SettingsView) error {
	if r.format.Machine() {
		return WriteMachine(r.out, r.format, view.Settings)
	}

	s := view.Settings
	title := lo.CoalesceOrEmpty(s.ProjectName, s.Domain, "(unnamed)")
	fmt.Fprintf(r.out, "⚙️  %s\n\n", headerStyle.Sprint(title))

	t := newTable(r.out)
	t.Style().Options.SeparateHeader = false
	t.AppendRows([]table.Row{
		{labelStyle.Sprint("Domain"), orMissing(s.Domain)},
		{labelStyle.Sprint("Admin"), orMissing(s.Admin)},
		{labelStyle.Sprint("Chain"), formatChain(view.ChainID, view.Network)},
		{labelStyle.Sprint("Factory"), orMissing(s.Factory)},
		{labelStyle.Sprint("Router"), orMissing(s.Router)},
		{labelStyle.Sprint("Pair hash"), orMissing(s.PairHash)},
		{labelStyle.Sprint("Fee recipient"), orMissing(s.FeeRecipient)},
		{labelStyle.Sprint("Protocol fee"), formatUint(s.ProtocolFee)},
		{labelStyle.Sprint("Total fee"), formatUint(s.TotalFee)},
		{labelStyle.Sprint("All fee to protocol"), formatBool(s.AllFeeToProtocol)},
		{labelStyle.Sprint("Total swaps"), formatTotalSwaps(s)},
		{labelStyle.Sprint("Protocol fee options"), formatPercents(s.PossibleProtocolPercent)},
		{labelStyle.Sprint("Logo"), orMissing(s.Logo)},
		{labelStyle.Sprint("Favicon"), orMissing(s.Favicon)},
		{labelStyle.Sprint("Brand color"), orMissing(s.BrandColor)},
		{labelStyle.Sprint("Default swap"), formatSwap(s.DefaultSwapCurrency)},
	})
	t.Render()

	r.renderContracts(s)
	r.renderTokenLists(s)
	r.renderLinks(s)
	return nil
}

func (r *SettingsRenderer) renderContracts(s *domain.DomainSettings) {
	fmt.Fprintln(r.out)
	ids := s.ConfiguredChainIDs()
	if len(ids) == 0 {
		fmt.Fprintln(r.out, headerStyle.Sprint("Contracts:"), missingStyle.Sprint("none configured"))
		return
	}

	fmt.Fprintln(r.out, headerStyle.Sprint("Contracts:"))
	t := newTable(r.out)
	t.AppendHeader(table.Row{"Chain", "Factory", "Router", "Usable"})
	for _, id := range ids {
		c := s.Contracts[id]
		usable := failStyle.Sprint("no")
		if s.IsUsableChain(id) {
			usable = okStyle.Sprint("yes")
		}
		t.AppendRow(table.Row{id, orMissing(c.Factory), orMissing(c.Router), usable})
	}
	t.Render()
}

func (r *SettingsRenderer) renderTokenLists(s *domain.DomainSettings) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s %d\n", headerStyle.Sprint("Token lists:"), len(s.TokenLists))
	for _, list := range s.TokenLists {
		fmt.Fprintf(r.out, "  • %s (%s) - %d tokens\n", valueStyle.Sprint(lo.CoalesceOrEmpty(list.Name, list.ID)), list.ID, len(list.Tokens))
	}
	if len(s.AddressesOfTokenLists) > 0 {
		fmt.Fprintf(r.out, "  remote: %s\n", strings.Join(s.AddressesOfTokenLists, ", "))
	}
}

func (r *SettingsRenderer) renderLinks(s *domain.DomainSettings) {
	links := append(append([]domain.Link{}, s.NavigationLinks...), s.MenuLinks...)
	if len(links) == 0 && len(s.SocialLinks) == 0 {
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headerStyle.Sprint("Links:"))
	for _, link := range links {
		fmt.Fprintf(r.out, "  • %s → %s\n", link.Name, link.Source)
	}
	for _, social := range s.SocialLinks {
		fmt.Fprintf(r.out, "  • %s\n", social)
	}
}

func formatChain(chainID uint64, network string) string {
	if chainID == 0 {
		return missingStyle.Sprint("(not selected)")
	}
	if network == "" {
		return strconv.FormatUint(chainID, 10)
	}
	return fmt.Sprintf("%s (%d)", network, chainID)
}

func formatUint(v *uint64) string {
	if v == nil {
		return missingStyle.Sprint("-")
	}
	return strconv.FormatUint(*v, 10)
}

func formatBool(v *bool) string {
	if v == nil {
		return missingStyle.Sprint("-")
	}
	if *v {
		return "yes"
	}
	return "no"
}

func formatTotalSwaps(s *domain.DomainSettings) string {
	if s.TotalSwaps == nil {
		return missingStyle.Sprint("-")
	}
	return s.TotalSwaps.String()
}

func formatPercents(values []uint64) string {
	if len(values) == 0 {
		return missingStyle.Sprint("-")
	}
	return strings.Join(lo.Map(values, func(v uint64, _ int) string {
		return strconv.FormatUint(v, 10)
	}), ", ")
}

func formatSwap(c domain.SwapCurrency) string {
	if c.Input == "" && c.Output == "" {
		return missingStyle.Sprint("(not set)")
	}
	return fmt.Sprintf("%s → %s", orMissing(c.Input), orMissing(c.Output))
}
