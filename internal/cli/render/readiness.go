package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/definance/dexgate/internal/domain"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ReadinessView is the readiness of one wallet state
type ReadinessView struct {
	Wallet    domain.WalletSignals `json:"wallet"`
	Readiness domain.Readiness     `json:"readiness"`
}

// ReadinessRenderer renders readiness states
type ReadinessRenderer struct {
	out    io.Writer
	format Format
}

// NewReadinessRenderer creates a new readiness renderer
func NewReadinessRenderer(out io.Writer, format Format) *ReadinessRenderer {
	return &ReadinessRenderer{out: out, format: format}
}

var _ Renderer[*ReadinessView] = (*ReadinessRenderer)(nil)

var stateStyles = map[domain.ReadinessState]*color.Color{
	domain.StateLoading:          color.New(color.FgYellow, color.Bold),
	domain.StateAdminPanel:       color.New(color.FgMagenta, color.Bold),
	domain.StateMainApp:          color.New(color.FgGreen, color.Bold),
	domain.StateGreeting:         color.New(color.FgCyan, color.Bold),
	domain.StateConnectionPrompt: color.New(color.FgBlue, color.Bold),
}

var promptDescriptions = map[domain.PromptKind]string{
	domain.PromptAdminSetup:         "Configuration is incomplete. The connected account is the admin and can open the admin panel.",
	domain.PromptNotReady:           "Configuration is incomplete. Only the admin can finish the setup.",
	domain.PromptUnsupportedNetwork: "The connected network is not supported by this domain.",
	domain.PromptConnectWallet:      "Connect a wallet to continue.",
}

// Render writes the readiness state
func (r *ReadinessRenderer) Render(view *ReadinessView) error {
	if r.format.Machine() {
		return WriteMachine(r.out, r.format, view)
	}

	state := view.Readiness.State
	style, ok := stateStyles[state]
	if !ok {
		style = valueStyle
	}

	fmt.Fprintf(r.out, "🧭 Surface: %s\n", style.Sprint(StateTitle(state)))
	if desc, ok := promptDescriptions[view.Readiness.Prompt]; ok {
		fmt.Fprintf(r.out, "   %s\n", desc)
	}
	fmt.Fprintln(r.out)

	w := view.Wallet
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Wallet:         "), formatWallet(w))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Network usable: "), yesNo(view.Readiness.IsAvailableNetwork))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Setup required: "), yesNo(view.Readiness.IsSetupRequired))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Admin:          "), yesNo(view.Readiness.IsAdmin))
	return nil
}

// StateTitle turns a state like "admin_panel" into "Admin Panel"
func StateTitle(state domain.ReadinessState) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(state), "_", " "))
}

func formatWallet(w domain.WalletSignals) string {
	if !w.Connected {
		return missingStyle.Sprint("disconnected")
	}
	account := orMissing(w.Account)
	if w.ChainID == 0 {
		return account
	}
	return fmt.Sprintf("%s on chain %d", account, w.ChainID)
}

func yesNo(v bool) string {
	if v {
		return okStyle.Sprint("yes")
	}
	return failStyle.Sprint("no")
}
