package singleton

import "go.uber.org/zap"

type Option struct {
	Name string
	Log  *zap.Logger
}

type OptionFunc func(opt *Option)

// OptName overrides the type name used in panics and log lines.
func OptName(name string) OptionFunc {
	return func(opt *Option) {
		opt.Name = name
	}
}

func OptLogger(logger *zap.Logger) OptionFunc {
	return func(opt *Option) {
		opt.Log = logger
	}
}

func buildOption(ops []OptionFunc) Option {
	var opts Option
	for _, op := range ops {
		op(&opts)
	}
	return opts
}
