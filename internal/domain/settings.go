package domain

import (
	"math/big"
	"sort"
)

// StorageAppKey is the root key of the JSON document kept in the storage contract.
const StorageAppKey = "definance"

// ChainContracts holds the swap contracts configured for one chain
type ChainContracts struct {
	Factory string `json:"factory"`
	Router  string `json:"router"`
}

// Token is a single entry of a token list
type Token struct {
	ChainID  uint64 `json:"chainId"`
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI,omitempty"`
}

// TokenList is a named list of tokens. ID is the key the list is stored under.
type TokenList struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	LogoURI string  `json:"logoURI,omitempty"`
	Tokens  []Token `json:"tokens"`
}

// Link is a navigation or menu entry
type Link struct {
	Source string `json:"source"`
	Name   string `json:"name"`
}

// SwapCurrency holds the default input/output tokens of the swap page
type SwapCurrency struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// DomainSettings is the resolved configuration snapshot for the current domain.
// A snapshot is never mutated after it is published; a new fetch replaces it.
type DomainSettings struct {
	Admin     string                    `json:"admin"`
	Contracts map[uint64]ChainContracts `json:"contracts"`
	Factory   string                    `json:"factory"`
	Router    string                    `json:"router"`

	PairHash     string `json:"pairHash"`
	FeeRecipient string `json:"feeRecipient"`

	// Populated only by factory enrichment
	ProtocolFee             *uint64  `json:"protocolFee,omitempty"`
	TotalFee                *uint64  `json:"totalFee,omitempty"`
	AllFeeToProtocol        *bool    `json:"allFeeToProtocol,omitempty"`
	TotalSwaps              *big.Int `json:"totalSwaps,omitempty"`
	PossibleProtocolPercent []uint64 `json:"possibleProtocolPercent"`

	Domain      string `json:"domain"`
	ProjectName string `json:"projectName"`
	Logo        string `json:"logo"`
	Favicon     string `json:"favicon"`
	BrandColor  string `json:"brandColor"`

	TokenListsByChain map[uint64]map[string]TokenList `json:"tokenListsByChain"`
	TokenLists        []TokenList                     `json:"tokenLists"`

	NavigationLinks       []Link       `json:"navigationLinks"`
	MenuLinks             []Link       `json:"menuLinks"`
	SocialLinks           []string     `json:"socialLinks"`
	AddressesOfTokenLists []string     `json:"addressesOfTokenLists"`
	DefaultSwapCurrency   SwapCurrency `json:"defaultSwapCurrency"`
}

// DefaultSettings returns the zero-value snapshot: empty strings, empty collections
// and unset optional fields. Every merge starts from this value.
func DefaultSettings() DomainSettings {
	return DomainSettings{
		Contracts:               map[uint64]ChainContracts{},
		PossibleProtocolPercent: []uint64{},
		TokenListsByChain:       map[uint64]map[string]TokenList{},
		TokenLists:              []TokenList{},
		NavigationLinks:         []Link{},
		MenuLinks:               []Link{},
		SocialLinks:             []string{},
		AddressesOfTokenLists:   []string{},
	}
}

// ContractsFor returns the contracts configured for chainID
func (s *DomainSettings) ContractsFor(chainID uint64) (ChainContracts, bool) {
	if s == nil || s.Contracts == nil {
		return ChainContracts{}, false
	}
	c, ok := s.Contracts[chainID]
	return c, ok
}

// IsUsableChain reports whether both factory and router configured for chainID are valid addresses.
func (s *DomainSettings) IsUsableChain(chainID uint64) bool {
	c, ok := s.ContractsFor(chainID)
	if !ok {
		return false
	}
	return IsValidAddress(c.Factory) && IsValidAddress(c.Router)
}

// ConfiguredChainIDs returns the chain ids present in Contracts in ascending order
func (s *DomainSettings) ConfiguredChainIDs() []uint64 {
	if s == nil {
		return nil
	}
	ids := make([]uint64, 0, len(s.Contracts))
	for id := range s.Contracts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FactoryInfo is the aggregate fee/config state read from a factory contract
type FactoryInfo struct {
	FeeTo                   string
	ProtocolFee             uint64
	TotalFee                uint64
	AllFeeToProtocol        bool
	PossibleProtocolPercent []uint64
	TotalSwaps              *big.Int
	InitCodePairHash        string
}

// StorageRecord is the raw record kept in the storage contract for a domain
type StorageRecord struct {
	Info  string
	Owner string
}
