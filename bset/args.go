package bset

import (
	"fmt"
	"runtime"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Site basis names accepted in Args.SiteBasis.
const (
	SiteBasisOccupation = "occupation"
	SiteBasisChebychev  = "chebychev"
)

// DefaultMaxPolyOrder leaves the polynomial order unbounded.
const DefaultMaxPolyOrder = -1

// Args are the engine-independent basis arguments.
type Args struct {
	// MaxPolyOrder bounds the total order of a function; non-positive is unbounded.
	MaxPolyOrder int `mapstructure:"max_poly_order" json:"max_poly_order"`
	// SiteBasis names the single-site function family.
	SiteBasis string `mapstructure:"site_basis_functions" json:"site_basis_functions"`
}

// DefaultArgs returns unbounded occupation arguments.
func DefaultArgs() Args {
	return Args{MaxPolyOrder: DefaultMaxPolyOrder, SiteBasis: SiteBasisOccupation}
}

// DecodeArgs decodes a generic map, as found in YAML or JSON input, over
// DefaultArgs. Unknown keys are rejected.
func DecodeArgs(in map[string]any) (Args, error) {
	args := DefaultArgs()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &args,
	})
	if err != nil {
		return Args{}, fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	if err := dec.Decode(in); err != nil {
		return Args{}, fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	switch args.SiteBasis {
	case SiteBasisOccupation, SiteBasisChebychev:
	default:
		return Args{}, fmt.Errorf("%w: site_basis_functions %q", ErrBadArgs, args.SiteBasis)
	}

	return args, nil
}

// Options control Propagate.
type Options struct {
	// Workers is the number of orbits processed at once; non-positive means GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}
