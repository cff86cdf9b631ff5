package wallet

import (
	"errors"
	"fmt"
	"strings"
)

// Wallet errors.
var (
	ErrPassNotFound = errors.New("pass not found")
	ErrNoPassURL    = errors.New("pass has no URL to open")
)

// Action is something the application may offer for a card.
type Action string

// Actions reported by AvailableActions.
const (
	ActionAdd Action = "ADD"
	ActionPay Action = "PAY"
)

// ActionSet is a set of actions.
type ActionSet uint8

const (
	actionAddBit ActionSet = 1 << iota
	actionPayBit
)

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	switch a {
	case ActionAdd:
		return s&actionAddBit != 0
	case ActionPay:
		return s&actionPayBit != 0
	default:
		return false
	}
}

// With returns the set with a added.
func (s ActionSet) With(a Action) ActionSet {
	switch a {
	case ActionAdd:
		return s | actionAddBit
	case ActionPay:
		return s | actionPayBit
	default:
		return s
	}
}

// Slice returns the actions in a stable order. Never nil.
func (s ActionSet) Slice() []Action {
	out := []Action{}
	if s.Has(ActionAdd) {
		out = append(out, ActionAdd)
	}
	if s.Has(ActionPay) {
		out = append(out, ActionPay)
	}
	return out
}

// String returns the actions joined by "|", or "NONE".
func (s ActionSet) String() string {
	actions := s.Slice()
	if len(actions) == 0 {
		return "NONE"
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, "|")
}

// AvailableActions reports the actions available for the card ending in
// accountSuffix.
func AvailableActions(lib Library, accountSuffix string) ActionSet {
	var set ActionSet
	if lib == nil || accountSuffix == "" {
		return set
	}

	local, onDevice := findBySuffix(lib.Passes(), accountSuffix)

	if lib.CanAddPasses() {
		missingLocally := !onDevice
		missingRemotely := false
		if lib.CompanionPaired() {
			_, onCompanion := findBySuffix(lib.RemotePasses(), accountSuffix)
			missingRemotely = !onCompanion
		}
		if missingLocally || missingRemotely {
			set = set.With(ActionAdd)
		}
	}

	if onDevice && local.ActivationState == ActivationActivated {
		set = set.With(ActionPay)
	}

	return set
}

// FindPass returns the pass for the card ending in accountSuffix, looking on
// the device first and then on a paired companion.
func FindPass(lib Library, accountSuffix string) (Pass, bool) {
	if lib == nil || accountSuffix == "" {
		return Pass{}, false
	}
	if p, ok := findBySuffix(lib.Passes(), accountSuffix); ok {
		return p, true
	}
	if lib.CompanionPaired() {
		return findBySuffix(lib.RemotePasses(), accountSuffix)
	}
	return Pass{}, false
}

// OpenCard opens the device pass for the card ending in accountSuffix. A pass
// awaiting activation opens its activation URL when it has one; otherwise
// the pass detail view is opened.
func OpenCard(lib Library, opener Opener, accountSuffix string) error {
	if lib == nil {
		return ErrPassNotFound
	}
	pass, ok := findBySuffix(lib.Passes(), accountSuffix)
	if !ok {
		return fmt.Errorf("%w: suffix %s", ErrPassNotFound, accountSuffix)
	}

	url := pass.PassURL
	if pass.ActivationState == ActivationRequiresActivation && pass.ActivationURL != "" {
		url = pass.ActivationURL
	}
	if url == "" {
		return ErrNoPassURL
	}

	if err := opener.Open(url); err != nil {
		return fmt.Errorf("failed to open pass %s: %w", pass.SerialNumber, err)
	}
	return nil
}

func findBySuffix(passes []Pass, suffix string) (Pass, bool) {
	for _, p := range passes {
		if p.PrimaryAccountNumberSuffix == suffix && p.ActivationState != ActivationDeactivated {
			return p, true
		}
	}
	return Pass{}, false
}
