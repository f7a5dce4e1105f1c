package gen

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Options control naming and placement of generated code. Zero fields are
// filled from the default tags by New.
type Options struct {
	Suffix         string `default:"_singleton.go" mapstructure:"suffix"`
	RuntimePackage string `default:"github.com/hnhuaxi/singleton" mapstructure:"runtime"`
	InitPrefix     string `default:"Initialize" mapstructure:"init_prefix"`
	WritePrefix    string `default:"Write" mapstructure:"write_prefix"`
	ReadPrefix     string `default:"Read" mapstructure:"read_prefix"`
	GlobalPrefix   string `default:"Global" mapstructure:"global_prefix"`
	BuildTags      string `mapstructure:"tags"`
}

var ErrInvalidOptions = errors.New("invalid generator options")

// Merge returns opts with every non-zero field of override applied on top.
func (opts Options) Merge(override Options) (Options, error) {
	if err := mergo.Merge(&opts, override, mergo.WithOverride); err != nil {
		return opts, errors.Wrap(err, "merge options")
	}
	return opts, nil
}

func (opts *Options) Validate() error {
	var errs error

	if !strings.HasSuffix(opts.Suffix, ".go") || strings.HasSuffix(opts.Suffix, "_test.go") {
		errs = multierr.Append(errs, fmt.Errorf("%w: suffix %q must end in .go and not _test.go", ErrInvalidOptions, opts.Suffix))
	}

	if opts.RuntimePackage == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: runtime package is empty", ErrInvalidOptions))
	}

	prefixes := map[string]string{
		"init_prefix":   opts.InitPrefix,
		"write_prefix":  opts.WritePrefix,
		"read_prefix":   opts.ReadPrefix,
		"global_prefix": opts.GlobalPrefix,
	}
	for _, key := range []string{"init_prefix", "write_prefix", "read_prefix", "global_prefix"} {
		if !token.IsIdentifier(prefixes[key]) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s %q is not a Go identifier", ErrInvalidOptions, key, prefixes[key]))
		}
	}

	if strings.EqualFold(opts.InitPrefix, opts.WritePrefix) ||
		strings.EqualFold(opts.InitPrefix, opts.ReadPrefix) ||
		strings.EqualFold(opts.WritePrefix, opts.ReadPrefix) ||
		strings.EqualFold(opts.InitPrefix, opts.GlobalPrefix) {
		errs = multierr.Append(errs, fmt.Errorf("%w: generated function prefixes must be distinct", ErrInvalidOptions))
	}

	return errs
}
