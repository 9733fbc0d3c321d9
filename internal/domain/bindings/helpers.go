package bindings

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// PossibleProtocolPercent returns the allowed protocol fee percentages as plain integers
func (o AllInfoOutput) PossibleProtocolPercent() []uint64 {
	return lo.Map(o.POSSIBLEPROTOCOLPERCENT, func(v uint16, _ int) uint64 {
		return uint64(v)
	})
}

// InitCodePairHash returns the pair init code hash as 0x-prefixed hex
func (o AllInfoOutput) InitCodePairHash() string {
	return common.Hash(o.INITCODEPAIRHASH).Hex()
}

func (o AllInfoOutput) String() string {
	return fmt.Sprintf(
		"allInfo: feeTo=%s protocolFee=%d totalFee=%d allFeeToProtocol=%t pairHash=%s",
		o.FeeTo.Hex(),
		o.ProtocolFee,
		o.TotalFee,
		o.AllFeeToProtocol,
		o.InitCodePairHash(),
	)
}

func (d StorageData) String() string {
	return fmt.Sprintf("storage: owner=%s info=%d bytes", d.Owner.Hex(), len(d.Info))
}
