package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Trace files are read back from disk, possibly cut short or corrupted, so
// decoding is bounded well above what an Event needs.
const (
	maxEventNesting  = 6
	maxEventMapPairs = 32
	maxEventArray    = 64
)

var (
	traceEnc cbor.EncMode
	traceDec cbor.DecMode
)

func init() {
	var err error

	traceEnc, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace encoder mode: %v", err))
	}

	traceDec, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthForbidden,
		MaxNestedLevels:  maxEventNesting,
		MaxMapPairs:      maxEventMapPairs,
		MaxArrayElements: maxEventArray,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("trace decoder mode: %v", err))
	}
}

// EncodeEvent encodes one event as a canonical CBOR map with integer keys.
func EncodeEvent(event Event) ([]byte, error) {
	return traceEnc.Marshal(event)
}

// DecodeEvent decodes a single event. Duplicate keys and indefinite-length
// items are rejected.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := traceDec.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

func newEncoder(w io.Writer) *cbor.Encoder {
	return traceEnc.NewEncoder(w)
}

func newDecoder(r io.Reader) *cbor.Decoder {
	return traceDec.NewDecoder(r)
}
