package domain

import "github.com/samber/lo"

// ReadinessState selects the surface the client renders
type ReadinessState string

const (
	StateLoading          ReadinessState = "loading"
	StateAdminPanel       ReadinessState = "admin_panel"
	StateMainApp          ReadinessState = "main_app"
	StateGreeting         ReadinessState = "greeting"
	StateConnectionPrompt ReadinessState = "connection_prompt"
)

// PromptKind distinguishes the variants of the connection prompt
type PromptKind string

const (
	PromptNone PromptKind = ""
	// PromptAdminSetup: configuration is incomplete and the connected account is the admin,
	// who may go straight to the admin panel.
	PromptAdminSetup PromptKind = "admin_setup"
	// PromptNotReady: configuration is incomplete and the viewer cannot fix it.
	PromptNotReady           PromptKind = "not_ready"
	PromptUnsupportedNetwork PromptKind = "unsupported_network"
	PromptConnectWallet      PromptKind = "connect_wallet"
)

// WalletSignals are the wallet connection inputs. ChainID 0 means unknown.
type WalletSignals struct {
	Connected bool   `json:"connected"`
	ChainID   uint64 `json:"chainId"`
	Account   string `json:"account"`
}

// ReadinessInput is everything readiness is derived from
type ReadinessInput struct {
	// Loaded is true once a fetch completed for the current chain
	Loaded            bool
	Management        bool
	Wallet            WalletSignals
	Settings          *DomainSettings
	SupportedChainIDs []uint64
}

// Readiness is the derived render state plus the flags the connection prompt needs
type Readiness struct {
	State              ReadinessState `json:"state"`
	IsAvailableNetwork bool           `json:"isAvailableNetwork"`
	IsSetupRequired    bool           `json:"isSetupRequired"`
	IsAdmin            bool           `json:"isAdmin"`
	Prompt             PromptKind     `json:"prompt,omitempty"`
}

// DeriveReadiness classifies the application. Rules are evaluated in order and the first
// match wins:
//
//  1. no completed fetch for the current chain -> loading
//  2. management mode -> admin panel, regardless of network availability
//  3. isAvailableNetwork: chain supported and its factory and router are valid addresses
//  4. appIsReady: wallet connected and admin, factory, router all set
//  5. appIsReady && isAvailableNetwork -> main app
//  6. isSetupRequired: admin, factory or router is not a valid address
//  7. no snapshot or no admin -> greeting
//  8. otherwise -> connection prompt
func DeriveReadiness(in ReadinessInput) Readiness {
	if !in.Loaded {
		return Readiness{State: StateLoading}
	}

	s := in.Settings
	r := Readiness{
		IsAvailableNetwork: isAvailableNetwork(in),
	}
	if s != nil {
		r.IsAdmin = !IsZeroAddress(s.Admin) && SameAddress(s.Admin, in.Wallet.Account)
	}

	if in.Management {
		r.State = StateAdminPanel
		return r
	}

	appIsReady := in.Wallet.Connected && s != nil && s.Admin != "" && s.Factory != "" && s.Router != ""
	if appIsReady && r.IsAvailableNetwork {
		r.State = StateMainApp
		return r
	}

	r.IsSetupRequired = s == nil || !(IsValidAddress(s.Admin) && IsValidAddress(s.Factory) && IsValidAddress(s.Router))

	if s == nil || s.Admin == "" {
		r.State = StateGreeting
		return r
	}

	r.State = StateConnectionPrompt
	switch {
	case r.IsSetupRequired && r.IsAdmin:
		r.Prompt = PromptAdminSetup
	case r.IsSetupRequired:
		r.Prompt = PromptNotReady
	case !r.IsAvailableNetwork:
		r.Prompt = PromptUnsupportedNetwork
	default:
		r.Prompt = PromptConnectWallet
	}
	return r
}

func isAvailableNetwork(in ReadinessInput) bool {
	if in.Wallet.ChainID == 0 || in.Settings == nil {
		return false
	}
	if !lo.Contains(in.SupportedChainIDs, in.Wallet.ChainID) {
		return false
	}
	return in.Settings.IsUsableChain(in.Wallet.ChainID)
}
