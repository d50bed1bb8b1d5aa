package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// NewRootCmd creates the root command for stakeclaimd.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stakeclaimd",
		Short: "StakeClaim engine daemon",
		Long: `StakeClaim runs a trading-and-staking engine where control of a
collectible belongs to its largest liquidity staker. It serves the
engine over a REST API with Prometheus metrics.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.stakeclaim/config.yaml)")

	rootCmd.AddCommand(
		NewStartCmd(),
		NewVersionCmd(),
	)
	return rootCmd
}

// NewVersionCmd reports the build version.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(Version)
		},
	}
}

// initViper loads configuration from file and environment. Environment
// variables use the STAKECLAIM_ prefix with underscores, e.g.
// STAKECLAIM_API_PORT overrides api.port.
func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.stakeclaim")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("STAKECLAIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return v, nil
}
