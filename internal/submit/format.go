package submit

import (
	"math/big"

	"github.com/holiman/uint256"
)

// weiOneEth is the number of wei in one ether.
var weiOneEth = big.NewFloat(1e18)

// weiToEthString renders a wei amount as a human-readable ETH figure
// for the "gas / ETH" cost-summary log line spec.md §7 calls for.
func weiToEthString(wei *uint256.Int) string {
	asFloat := new(big.Float).SetInt(wei.ToBig())
	eth := new(big.Float).Quo(asFloat, weiOneEth)
	return eth.Text('f', 6)
}
