package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/definance/dexgate/internal/domain"
)

// storedSettings is the schema of the document kept under domain.StorageAppKey
type storedSettings struct {
	Contracts             map[string]domain.ChainContracts       `json:"contracts"`
	PairHash              string                                 `json:"pairHash"`
	FeeRecipient          string                                 `json:"feeRecipient"`
	Domain                string                                 `json:"domain"`
	ProjectName           string                                 `json:"projectName"`
	LogoURL               string                                 `json:"logoUrl"`
	FaviconURL            string                                 `json:"faviconUrl"`
	BrandColor            string                                 `json:"brandColor"`
	NavigationLinks       []domain.Link                          `json:"navigationLinks"`
	MenuLinks             []domain.Link                          `json:"menuLinks"`
	SocialLinks           []string                               `json:"socialLinks"`
	TokenLists            map[string]map[string]domain.TokenList `json:"tokenLists"`
	AddressesOfTokenLists []string                               `json:"addressesOfTokenLists"`
	DefaultSwapCurrency   *domain.SwapCurrency                   `json:"defaultSwapCurrency"`
}

// ParseSettings decodes the storage payload into a settings snapshot for chainID.
// Any absent key keeps its zero value. A document that is not an object yields the
// zero-value snapshot together with a *domain.ParseError. A key of the wrong type keeps
// its zero value while the other keys are still applied; the returned *domain.ParseError
// then names the skipped keys.
// Token list filtering is left to the caller.
func ParseSettings(info string, chainID uint64) (domain.DomainSettings, error) {
	settings := domain.DefaultSettings()

	stored, err := decodeStoredSettings(info)
	if stored == nil {
		if err != nil {
			return settings, &domain.ParseError{Source: info, Err: err}
		}
		return settings, nil
	}

	for key, contracts := range stored.Contracts {
		id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
		if err != nil {
			continue
		}
		if domain.IsZeroAddress(contracts.Factory) {
			contracts.Factory = ""
		}
		if domain.IsZeroAddress(contracts.Router) {
			contracts.Router = ""
		}
		settings.Contracts[id] = contracts
	}
	if c, ok := settings.Contracts[chainID]; ok {
		settings.Factory = c.Factory
		settings.Router = c.Router
	}

	if !domain.IsZeroHash(stored.PairHash) {
		settings.PairHash = stored.PairHash
	}
	if !domain.IsZeroAddress(stored.FeeRecipient) {
		settings.FeeRecipient = stored.FeeRecipient
	}

	settings.Domain = stored.Domain
	settings.ProjectName = stored.ProjectName
	settings.Logo = stored.LogoURL
	settings.Favicon = stored.FaviconURL
	settings.BrandColor = stored.BrandColor

	if len(stored.NavigationLinks) > 0 {
		settings.NavigationLinks = stored.NavigationLinks
	}
	if len(stored.MenuLinks) > 0 {
		settings.MenuLinks = stored.MenuLinks
	}
	if len(stored.SocialLinks) > 0 {
		settings.SocialLinks = stored.SocialLinks
	}
	if len(stored.AddressesOfTokenLists) > 0 {
		settings.AddressesOfTokenLists = stored.AddressesOfTokenLists
	}

	for key, lists := range stored.TokenLists {
		id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
		if err != nil || len(lists) == 0 {
			continue
		}
		byID := make(map[string]domain.TokenList, len(lists))
		for listID, list := range lists {
			list.ID = listID
			if list.Tokens == nil {
				list.Tokens = []domain.Token{}
			}
			byID[listID] = list
		}
		settings.TokenListsByChain[id] = byID
	}

	if stored.DefaultSwapCurrency != nil {
		settings.DefaultSwapCurrency.Input = stored.DefaultSwapCurrency.Input
		settings.DefaultSwapCurrency.Output = stored.DefaultSwapCurrency.Output
	}

	if err != nil {
		return settings, &domain.ParseError{Source: info, Err: err}
	}
	return settings, nil
}

// decodeStoredSettings validates the payload shape. It returns nil settings when the
// document is empty or has no app section. Keys are decoded one by one: a key that fails
// to decode is left unset and reported in the error next to the partial settings.
func decodeStoredSettings(info string) (*storedSettings, error) {
	payload := bytes.TrimSpace([]byte(info))
	if len(payload) == 0 {
		return nil, nil
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("invalid settings document: %w", err)
	}

	section, ok := root[domain.StorageAppKey]
	if !ok || len(section) == 0 || string(section) == "null" {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(section, &fields); err != nil {
		return nil, fmt.Errorf("invalid %q section: %w", domain.StorageAppKey, err)
	}

	var stored storedSettings
	decoders := []struct {
		key    string
		decode func(json.RawMessage) error
	}{
		{"contracts", decodeField(&stored.Contracts)},
		{"pairHash", decodeField(&stored.PairHash)},
		{"feeRecipient", decodeField(&stored.FeeRecipient)},
		{"domain", decodeField(&stored.Domain)},
		{"projectName", decodeField(&stored.ProjectName)},
		{"logoUrl", decodeField(&stored.LogoURL)},
		{"faviconUrl", decodeField(&stored.FaviconURL)},
		{"brandColor", decodeField(&stored.BrandColor)},
		{"navigationLinks", decodeField(&stored.NavigationLinks)},
		{"menuLinks", decodeField(&stored.MenuLinks)},
		{"socialLinks", decodeField(&stored.SocialLinks)},
		{"tokenLists", decodeField(&stored.TokenLists)},
		{"addressesOfTokenLists", decodeField(&stored.AddressesOfTokenLists)},
		{"defaultSwapCurrency", decodeField(&stored.DefaultSwapCurrency)},
	}

	var errs []error
	for _, d := range decoders {
		raw, ok := fields[d.key]
		if !ok {
			continue
		}
		if err := d.decode(raw); err != nil {
			errs = append(errs, fmt.Errorf("invalid %q: %w", d.key, err))
		}
	}
	return &stored, errors.Join(errs...)
}

// decodeField returns a decoder that only assigns dst when raw decodes completely.
func decodeField[T any](dst *T) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}
