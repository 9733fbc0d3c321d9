package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork selects a network from a list
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []config.Network, prompt string) (*config.Network, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(networks) == 0 {
		return nil, fmt.Errorf("no networks provided for selection")
	}

	if len(networks) == 1 {
		return &networks[0], nil
	}

	options := FormatNetworkOptions(networks)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to search, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          FuzzySearch(networkSearchKeys(networks)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &networks[index], nil
}

// FormatNetworkOptions creates display strings like "bsc (56)"
func FormatNetworkOptions(networks []config.Network) []string {
	options := make([]string, len(networks))
	for i, network := range networks {
		name := color.New(color.FgWhite, color.Bold).Sprint(network.Name)
		chain := color.New(color.FgBlue).Sprintf("%d", network.ChainID)
		options[i] = fmt.Sprintf("%s (%s)", name, chain)
	}
	return options
}

// networkSearchKeys returns uncolored search text for each network
func networkSearchKeys(networks []config.Network) []string {
	keys := make([]string, len(networks))
	for i, network := range networks {
		keys[i] = fmt.Sprintf("%s %d", network.Name, network.ChainID)
	}
	return keys
}

// FuzzySearch creates a fuzzy search function for promptui over items
func FuzzySearch(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
