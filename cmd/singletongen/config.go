package main

import (
	"strings"

	"github.com/hnhuaxi/singleton/gen"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	configName = ".singletongen"
	envPrefix  = "SINGLETONGEN"
)

var optionKeys = []string{"suffix", "runtime", "init_prefix", "write_prefix", "read_prefix", "global_prefix", "tags"}

// loadOptions reads .singletongen.yaml from dir (or the --config file) and
// the SINGLETONGEN_* environment, then applies command line flags on top.
func loadOptions(cmd *cobra.Command, dir string) (gen.Options, error) {
	var (
		v        = viper.New()
		fileOpts gen.Options
		flags    = cmd.Flags()
	)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range optionKeys {
		if err := v.BindEnv(key); err != nil {
			return fileOpts, errors.Wrapf(err, "bind env %s", key)
		}
	}

	configFile, _ := flags.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return fileOpts, errors.Wrap(err, "read config")
		}
	}

	if err := v.Unmarshal(&fileOpts); err != nil {
		return fileOpts, errors.Wrap(err, "decode config")
	}

	var flagOpts gen.Options
	flagOpts.Suffix, _ = flags.GetString("suffix")
	flagOpts.RuntimePackage, _ = flags.GetString("runtime")
	flagOpts.BuildTags, _ = flags.GetString("tags")

	return fileOpts.Merge(flagOpts)
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	return cfg.Build()
}
