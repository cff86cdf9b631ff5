package simulator

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/passbridge/passbridge-go/pkg/wallet"
)

// Library is an in-memory wallet.
type Library struct {
	mu      sync.RWMutex
	canAdd  bool
	paired  bool
	passes  []wallet.Pass
	remote  []wallet.Pass
	opened  []string
	openErr error
}

// NewLibrary creates an empty wallet that can add passes.
func NewLibrary() *Library {
	return &Library{canAdd: true}
}

// PassFixture is the YAML form of a pass.
type PassFixture struct {
	SerialNumber             string `yaml:"serialNumber"`
	PrimaryAccountIdentifier string `yaml:"primaryAccountIdentifier"`
	PrimaryAccountSuffix     string `yaml:"primaryAccountSuffix"`
	DeviceAccountSuffix      string `yaml:"deviceAccountSuffix"`
	Description              string `yaml:"description"`
	Network                  string `yaml:"network"`
	ActivationState          string `yaml:"activationState"`
	PassURL                  string `yaml:"passURL"`
	ActivationURL            string `yaml:"activationURL"`
}

// Fixture is the YAML form of a wallet.
type Fixture struct {
	// CanAddPasses defaults to true when omitted.
	CanAddPasses    *bool         `yaml:"canAddPasses"`
	CompanionPaired bool          `yaml:"companionPaired"`
	Passes          []PassFixture `yaml:"passes"`
	RemotePasses    []PassFixture `yaml:"remotePasses"`
}

// LoadLibrary reads a YAML fixture.
func LoadLibrary(r io.Reader) (*Library, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse wallet fixture: %w", err)
	}
	return f.Library()
}

// LoadLibraryFile reads a YAML fixture from path.
func LoadLibraryFile(path string) (*Library, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadLibrary(file)
}

// Library builds a wallet from the fixture.
func (f Fixture) Library() (*Library, error) {
	lib := NewLibrary()
	if f.CanAddPasses != nil {
		lib.canAdd = *f.CanAddPasses
	}
	lib.paired = f.CompanionPaired

	for i, pf := range f.Passes {
		p, err := pf.pass()
		if err != nil {
			return nil, fmt.Errorf("passes[%d]: %w", i, err)
		}
		lib.passes = append(lib.passes, p)
	}
	for i, pf := range f.RemotePasses {
		p, err := pf.pass()
		if err != nil {
			return nil, fmt.Errorf("remotePasses[%d]: %w", i, err)
		}
		lib.remote = append(lib.remote, p)
	}
	return lib, nil
}

func (pf PassFixture) pass() (wallet.Pass, error) {
	if pf.PrimaryAccountSuffix == "" {
		return wallet.Pass{}, fmt.Errorf("primaryAccountSuffix is required")
	}
	state, err := wallet.ParseActivationState(pf.ActivationState)
	if err != nil {
		return wallet.Pass{}, err
	}
	network := wallet.Network(pf.Network)
	if n, ok := wallet.ParseNetwork(pf.Network); ok {
		network = n
	}
	serial := pf.SerialNumber
	if serial == "" {
		serial = "sim-" + pf.PrimaryAccountSuffix
	}
	passURL := pf.PassURL
	if passURL == "" {
		passURL = passURLFor(serial)
	}
	return wallet.Pass{
		SerialNumber:               serial,
		PrimaryAccountIdentifier:   pf.PrimaryAccountIdentifier,
		PrimaryAccountNumberSuffix: pf.PrimaryAccountSuffix,
		DeviceAccountNumberSuffix:  pf.DeviceAccountSuffix,
		LocalizedDescription:       pf.Description,
		Network:                    network,
		ActivationState:            state,
		PassURL:                    passURL,
		ActivationURL:              pf.ActivationURL,
	}, nil
}

func passURLFor(serial string) string {
	return "wallet://pass/" + serial
}

// CanAddPasses implements wallet.Library.
func (l *Library) CanAddPasses() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.canAdd
}

// Passes implements wallet.Library.
func (l *Library) Passes() []wallet.Pass {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.passes)
}

// RemotePasses implements wallet.Library.
func (l *Library) RemotePasses() []wallet.Pass {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.remote)
}

// CompanionPaired implements wallet.Library.
func (l *Library) CompanionPaired() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.paired
}

// SetCanAddPasses sets the device capability.
func (l *Library) SetCanAddPasses(v bool) {
	l.mu.Lock()
	l.canAdd = v
	l.mu.Unlock()
}

// SetCompanionPaired sets whether a companion is paired.
func (l *Library) SetCompanionPaired(v bool) {
	l.mu.Lock()
	l.paired = v
	l.mu.Unlock()
}

// AddPass stores p on the device. A pass with the same primary account
// identifier is replaced.
func (l *Library) AddPass(p wallet.Pass) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.passes = upsert(l.passes, p)
}

// AddRemotePass stores p on the companion.
func (l *Library) AddRemotePass(p wallet.Pass) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.remote = upsert(l.remote, p)
}

func upsert(passes []wallet.Pass, p wallet.Pass) []wallet.Pass {
	if p.PrimaryAccountIdentifier != "" {
		for i := range passes {
			if passes[i].PrimaryAccountIdentifier == p.PrimaryAccountIdentifier {
				passes[i] = p
				return passes
			}
		}
	}
	return append(passes, p)
}

// Open implements wallet.Opener. URLs are recorded in order.
func (l *Library) Open(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.openErr != nil {
		return l.openErr
	}
	l.opened = append(l.opened, url)
	return nil
}

// SetOpenError makes subsequent Open calls fail with err. Nil clears it.
func (l *Library) SetOpenError(err error) {
	l.mu.Lock()
	l.openErr = err
	l.mu.Unlock()
}

// Opened returns the URLs opened so far.
func (l *Library) Opened() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.opened)
}

var (
	_ wallet.Library = (*Library)(nil)
	_ wallet.Opener  = (*Library)(nil)
)
