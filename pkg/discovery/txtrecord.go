package discovery

import (
	"fmt"
	"sort"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeIssuerTXT creates TXT records for an issuer.
func EncodeIssuerTXT(info *IssuerInfo) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyVersion: ProtocolVersion,
		TXTKeyPath:    info.Path,
	}
	if txt[TXTKeyPath] == "" {
		txt[TXTKeyPath] = "/"
	}
	if info.Name != "" {
		txt[TXTKeyName] = info.Name
	}
	if len(info.Networks) > 0 {
		txt[TXTKeyNetworks] = strings.Join(info.Networks, ",")
	}
	return txt
}

// DecodeIssuerTXT parses issuer TXT records.
func DecodeIssuerTXT(txt TXTRecordMap) (*IssuerInfo, error) {
	v, ok := txt[TXTKeyVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	if v != ProtocolVersion {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}

	path, ok := txt[TXTKeyPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyPath)
	}

	info := &IssuerInfo{Path: path, Name: txt[TXTKeyName]}
	if nets := txt[TXTKeyNetworks]; nets != "" {
		for _, n := range strings.Split(nets, ",") {
			if n = strings.TrimSpace(n); n != "" {
				info.Networks = append(info.Networks, n)
			}
		}
	}
	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		k, v, found := strings.Cut(s, "=")
		if found {
			txt[k] = v
		} else if k != "" {
			// Key without value (boolean flag)
			txt[k] = ""
		}
	}
	return txt
}
