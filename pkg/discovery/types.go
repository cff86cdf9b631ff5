package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Service constants.
const (
	// ServiceType is the DNS-SD service type of issuer services.
	ServiceType = "_passissuer._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is used when an issuer does not specify one.
	DefaultPort = 8080

	// ProtocolVersion is the TXT "v" value this package understands.
	ProtocolVersion = "1"

	// MaxInstanceNameLen is the DNS-SD instance label limit.
	MaxInstanceNameLen = 63
)

// TXT record keys.
const (
	TXTKeyVersion  = "v"
	TXTKeyPath     = "path"
	TXTKeyName     = "name"
	TXTKeyNetworks = "nets"
)

// Discovery errors.
var (
	ErrMissingRequired     = errors.New("missing required TXT record")
	ErrUnsupportedVersion  = errors.New("unsupported issuer protocol version")
	ErrInvalidInstanceName = errors.New("invalid instance name")
	ErrNotFound            = errors.New("no issuer found")
)

// IssuerInfo is what an issuer advertises.
type IssuerInfo struct {
	// InstanceName is the DNS-SD instance label.
	InstanceName string

	// Port the issuer's HTTP API listens on.
	Port uint16

	// Path is the API base path, e.g. "/".
	Path string

	// Name is a human-readable issuer name.
	Name string

	// Networks lists the payment networks the issuer provisions.
	Networks []string
}

// IssuerService is an issuer found on the network.
type IssuerService struct {
	InstanceName string
	Host         string
	Port         uint16
	Addresses    []string
	Path         string
	Name         string
	Networks     []string
}

// BaseURL returns the issuer's HTTP base URL using its first address, or
// its host name when no address is known.
func (s *IssuerService) BaseURL() string {
	host := strings.TrimSuffix(s.Host, ".")
	if len(s.Addresses) > 0 {
		host = s.Addresses[0]
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
	}
	path := strings.TrimRight(s.Path, "/")
	return fmt.Sprintf("http://%s:%d%s", host, s.Port, path)
}

// Advertiser announces an issuer service.
type Advertiser interface {
	// Advertise starts announcing info, replacing any previous announcement.
	Advertise(ctx context.Context, info *IssuerInfo) error

	// Stop withdraws the announcement.
	Stop() error
}

// Browser finds issuer services.
type Browser interface {
	// Browse streams issuers until ctx is done.
	Browse(ctx context.Context) (<-chan *IssuerService, error)
}

// AdvertiserConfig configures an MDNSAdvertiser.
type AdvertiserConfig struct {
	// Interface restricts announcements to one network interface.
	Interface string

	// TTL of the DNS records. Zero uses the library default.
	TTL time.Duration
}

// BrowserConfig configures an MDNSBrowser.
type BrowserConfig struct {
	// Interface restricts browsing to one network interface.
	Interface string
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInstanceName)
	}
	if len(name) > MaxInstanceNameLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidInstanceName, MaxInstanceNameLen)
	}
	return nil
}
