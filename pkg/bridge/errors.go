package bridge

import (
	"errors"

	"github.com/passbridge/passbridge-go/pkg/provisioning"
	"github.com/passbridge/passbridge-go/pkg/wallet"
)

// Bridge errors.
var (
	ErrUnknownMethod = errors.New("unknown method")
	ErrBadOptions    = errors.New("malformed call options")
)

// Bridge-only error codes. Provisioning errors use provisioning.Code.
const (
	CodeUnimplemented = "UNIMPLEMENTED"
	CodePassNotFound  = "PASS_NOT_FOUND"
)

// Code returns the error code reported to the shell for err.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnknownMethod):
		return CodeUnimplemented
	case errors.Is(err, ErrBadOptions):
		return provisioning.CodeInvalidInput
	case errors.Is(err, wallet.ErrPassNotFound), errors.Is(err, wallet.ErrNoPassURL):
		return CodePassNotFound
	default:
		return provisioning.Code(err)
	}
}
