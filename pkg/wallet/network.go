package wallet

import "strings"

// Network is a canonical payment network name.
type Network string

// Supported payment networks.
const (
	NetworkAmex            Network = "amex"
	NetworkCartesBancaires Network = "cartesBancaires"
	NetworkChinaUnionPay   Network = "chinaUnionPay"
	NetworkDiscover        Network = "discover"
	NetworkEftpos          Network = "eftpos"
	NetworkElectron        Network = "electron"
	NetworkElo             Network = "elo"
	NetworkInterac         Network = "interac"
	NetworkJCB             Network = "jcb"
	NetworkMada            Network = "mada"
	NetworkMaestro         Network = "maestro"
	NetworkMasterCard      Network = "masterCard"
	NetworkVisa            Network = "visa"
	NetworkVPay            Network = "vPay"
)

// networks is keyed by lower-case name.
var networks = map[string]Network{}

func init() {
	for _, n := range SupportedNetworks() {
		networks[strings.ToLower(string(n))] = n
	}
	// Common spellings used by card issuers.
	networks["mastercard"] = NetworkMasterCard
	networks["americanexpress"] = NetworkAmex
	networks["unionpay"] = NetworkChinaUnionPay
}

// SupportedNetworks returns the allow-list in a stable order.
func SupportedNetworks() []Network {
	return []Network{
		NetworkAmex,
		NetworkCartesBancaires,
		NetworkChinaUnionPay,
		NetworkDiscover,
		NetworkEftpos,
		NetworkElectron,
		NetworkElo,
		NetworkInterac,
		NetworkJCB,
		NetworkMada,
		NetworkMaestro,
		NetworkMasterCard,
		NetworkVisa,
		NetworkVPay,
	}
}

// ParseNetwork returns the canonical network for name. Matching ignores case
// and surrounding whitespace.
func ParseNetwork(name string) (Network, bool) {
	n, ok := networks[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// String returns the network name.
func (n Network) String() string {
	return string(n)
}
