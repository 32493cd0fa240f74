// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewRootCommand enables all children commands to read flags from CLI flags, environment variables prefixed with WAVEFRONT, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("WAVEFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/wavefront", "$HOME/.wavefront", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}
	_ = viper.ReadInConfig()

	return &cobra.Command{
		Use:   "wavefront",
		Short: "Shortest paths on 2D traversability grids",
		Long: `Shortest paths on 2D traversability grids.

Maps are raw buffers of width*height bytes where 1 marks a traversable cell and
0 a blocked one. Searches run a breadth-first wavefront, optionally limited to a
corridor around the straight line and optionally split into two waves that meet
in the middle.`,
		SilenceUsage: true,
	}
}

// MustBindPFlag attempts to bind a specific key to a pflag (as used by cobra) and panics
// if the binding fails with a non-nil error.
func MustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}
