package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

var errNoLength = errors.New("no /Length entry")

type lengthStrategy struct {
	name    Strategy
	measure func(r Resolver, sd types.StreamDict) (int64, error)
}

// lengthStrategies are tried in order; the first success wins
var lengthStrategies = []lengthStrategy{
	{StrategyDeclaredLength, declaredLength},
	{StrategyDecode, decodedLength},
}

// EncodedLength returns the best available encoded size of a stream.
// It never fails: when nothing can be measured the result is 0.
func EncodedLength(r Resolver, sd types.StreamDict) int64 {
	return MeasureLength(r, sd).Length
}

// MeasureLength is EncodedLength with the strategy that produced the value
// and the reasons the earlier strategies were skipped.
func MeasureLength(r Resolver, sd types.StreamDict) (res LengthResult) {
	defer func() {
		// A broken filter implementation must not take the page down with it
		if p := recover(); p != nil {
			res.Failures = append(res.Failures, StrategyFailure{Strategy: StrategyDecode, Err: errors.Errorf("panic: %v", p)})
			res.Length, res.Strategy = 0, StrategyZero
		}
	}()

	for _, s := range lengthStrategies {
		n, err := s.measure(r, sd)
		if err == nil {
			res.Length, res.Strategy = n, s.name
			return res
		}
		res.Failures = append(res.Failures, StrategyFailure{Strategy: s.name, Err: err})
	}
	res.Strategy = StrategyZero
	return res
}

// declaredLength reads /Length, following an indirect reference if needed
func declaredLength(r Resolver, sd types.StreamDict) (int64, error) {
	o, err := entry(r, sd.Dict, "Length")
	if err != nil {
		return 0, err
	}
	if o == nil {
		return 0, errNoLength
	}
	n, err := asInt("Length", o)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Errorf("negative /Length %d", n)
	}
	return n, nil
}

// decodedLength runs the filter pipeline and measures the result. This is
// the decoded size, not the encoded one.
func decodedLength(_ Resolver, sd types.StreamDict) (int64, error) {
	if sd.Content != nil {
		return int64(len(sd.Content)), nil
	}
	if sd.Raw == nil {
		return 0, errors.New("stream data not loaded")
	}
	// sd is a copy, so decoding does not touch the document's object
	if err := sd.Decode(); err != nil {
		return 0, errors.Wrap(err, "failed to decode stream")
	}
	return int64(len(sd.Content)), nil
}
