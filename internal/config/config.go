package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Check holds configuration values for the check command, loaded from
// flags, env, or config file. Unset range bounds stay at -1 and are
// resolved from the chain head later.
type Check struct {
	SrcRPC     string
	DstRPC     string
	Address    string
	Signature  string
	SrcFrom    int64
	SrcTo      int64
	DstFrom    int64
	DstTo      int64
	Step       uint64
	Timeout    time.Duration
	AllowDrift uint64
	JSON       bool
	LogLevel   string
}

// LoadCheck merges config file, environment variables, and flags into Check.
func LoadCheck(cfgFile string, flags *pflag.FlagSet) (Check, error) {
	v := viper.New()
	v.SetEnvPrefix("MIRROR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("src-from", int64(-1))
	v.SetDefault("src-to", int64(-1))
	v.SetDefault("dst-from", int64(-1))
	v.SetDefault("dst-to", int64(-1))
	v.SetDefault("step", uint64(2000))
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("allow-drift", uint64(0))
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Check{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Check{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Check{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Check{
		SrcRPC:     v.GetString("src-rpc"),
		DstRPC:     v.GetString("dst-rpc"),
		Address:    v.GetString("address"),
		Signature:  v.GetString("signature"),
		SrcFrom:    v.GetInt64("src-from"),
		SrcTo:      v.GetInt64("src-to"),
		DstFrom:    v.GetInt64("dst-from"),
		DstTo:      v.GetInt64("dst-to"),
		Step:       v.GetUint64("step"),
		Timeout:    v.GetDuration("timeout"),
		AllowDrift: v.GetUint64("allow-drift"),
		JSON:       v.GetBool("json"),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}
