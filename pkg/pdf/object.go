package pdf

import (
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

// Deref resolves one level of indirection. Direct objects are returned as
// they are; lookup errors come back from the resolver unchanged.
func Deref(r Resolver, o types.Object) (types.Object, error) {
	switch v := o.(type) {
	case types.IndirectRef:
		return r.Dereference(v)
	case *types.IndirectRef:
		if v == nil {
			return nil, nil
		}
		return r.Dereference(*v)
	default:
		return o, nil
	}
}

// entry looks up key in d and dereferences it. A missing key or a null value
// yields nil.
func entry(r Resolver, d types.Dict, key string) (types.Object, error) {
	if d == nil {
		return nil, nil
	}
	o, found := d.Find(key)
	if !found || o == nil {
		return nil, nil
	}
	o, err := Deref(r, o)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dereference /%s", key)
	}
	return o, nil
}

// asStream matches the stream variant
func asStream(key string, o types.Object) (types.StreamDict, error) {
	switch v := o.(type) {
	case types.StreamDict:
		return v, nil
	case *types.StreamDict:
		if v != nil {
			return *v, nil
		}
	}
	return types.StreamDict{}, &DecodeError{Key: key, Want: "stream", Got: o}
}

// asDict matches the dictionary variant. A stream is not accepted here even
// though it carries a dictionary.
func asDict(key string, o types.Object) (types.Dict, error) {
	if d, ok := o.(types.Dict); ok {
		return d, nil
	}
	return nil, &DecodeError{Key: key, Want: "dictionary", Got: o}
}

// asInt converts an integer object. Reals are accepted when they carry an
// integral value, since some writers emit "/Length 512.0".
func asInt(key string, o types.Object) (int64, error) {
	switch v := o.(type) {
	case types.Integer:
		return int64(v), nil
	case types.Float:
		f := float64(v)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int64(f), nil
		}
	}
	return 0, &DecodeError{Key: key, Want: "integer", Got: o}
}
