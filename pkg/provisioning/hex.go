package provisioning

import "encoding/hex"

// EncodeHex returns the lowercase hex encoding of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex decodes a hex string, accepting either case.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

func encodeChain(chain [][]byte) []string {
	out := make([]string, len(chain))
	for i, cert := range chain {
		out[i] = EncodeHex(cert)
	}
	return out
}
