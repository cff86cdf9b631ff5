package discovery

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(instance string, ips ...string) *zeroconf.ServiceEntry {
	entry := &zeroconf.ServiceEntry{ServiceRecord: zeroconf.ServiceRecord{Instance: instance, Service: ServiceType, Domain: Domain}}
	entry.HostName = "issuer.local."
	entry.Port = 9443
	entry.Text = []string{"v=1", "path=/", "name=Dev Bank"}
	for _, s := range ips {
		ip := net.ParseIP(s)
		if ip.To4() != nil {
			entry.AddrIPv4 = append(entry.AddrIPv4, ip)
		} else {
			entry.AddrIPv6 = append(entry.AddrIPv6, ip)
		}
	}
	return entry
}

func TestEntryToIssuer(t *testing.T) {
	svc := entryToIssuer(testEntry("dev", "192.168.1.10", "fe80::1"))
	require.NotNil(t, svc)

	assert.Equal(t, "dev", svc.InstanceName)
	assert.Equal(t, "issuer.local.", svc.Host)
	assert.Equal(t, uint16(9443), svc.Port)
	assert.Equal(t, []string{"192.168.1.10", "fe80::1"}, svc.Addresses)
	assert.Equal(t, "Dev Bank", svc.Name)
}

func TestEntryToIssuerInvalidTXT(t *testing.T) {
	entry := testEntry("dev", "10.0.0.1")
	entry.Text = []string{"path=/"}
	assert.Nil(t, entryToIssuer(entry))
}

func TestAggregatorMergesAddresses(t *testing.T) {
	agg := newAggregator()

	first := agg.add(testEntry("dev", "10.0.0.1"))
	require.NotNil(t, first)
	assert.Nil(t, agg.add(testEntry("dev", "10.0.0.1", "10.0.0.2")))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, first.Addresses)

	agg.remove(testEntry("dev", "10.0.0.1"))
	assert.Equal(t, []string{"10.0.0.2"}, first.Addresses)

	agg.remove(testEntry("dev", "10.0.0.2"))
	assert.Empty(t, agg.services)

	// Seen again after full removal.
	assert.NotNil(t, agg.add(testEntry("dev", "10.0.0.3")))
}

func TestAggregatorIgnoresUnknownRemoval(t *testing.T) {
	agg := newAggregator()
	agg.remove(testEntry("ghost", "10.0.0.1"))
	assert.Empty(t, agg.services)
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name string
		svc  IssuerService
		want string
	}{
		{"ipv4", IssuerService{Host: "h.local.", Port: 80, Addresses: []string{"10.0.0.1"}, Path: "/"}, "http://10.0.0.1:80"},
		{"ipv6", IssuerService{Port: 8080, Addresses: []string{"fe80::1"}, Path: "/api/"}, "http://[fe80::1]:8080/api"},
		{"host", IssuerService{Host: "h.local.", Port: 8080, Path: "/"}, "http://h.local:8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.svc.BaseURL())
		})
	}
}

func TestAdvertiserRejectsInvalidName(t *testing.T) {
	adv := NewMDNSAdvertiser(AdvertiserConfig{})
	err := adv.Advertise(context.Background(), &IssuerInfo{})
	assert.ErrorIs(t, err, ErrInvalidInstanceName)
	assert.NoError(t, adv.Stop())
}

type fakeBrowser struct {
	services []*IssuerService
}

func (f *fakeBrowser) Browse(ctx context.Context) (<-chan *IssuerService, error) {
	out := make(chan *IssuerService, len(f.services))
	for _, s := range f.services {
		out <- s
	}
	close(out)
	return out, nil
}

func TestFindFirst(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	svc, err := FindFirst(ctx, &fakeBrowser{services: []*IssuerService{{InstanceName: "a"}, {InstanceName: "b"}}})
	require.NoError(t, err)
	assert.Equal(t, "a", svc.InstanceName)

	_, err = FindFirst(ctx, &fakeBrowser{})
	assert.ErrorIs(t, err, ErrNotFound)
}
