package main

import (
	"fmt"
	"os"
	"reflect"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stakeclaim/stakeclaim/api"
	"github.com/stakeclaim/stakeclaim/app"
)

// NewStartCmd creates the command that runs the engine and its API server.
func NewStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the engine and API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := initViper(cmd)
			if err != nil {
				return err
			}

			engineCfg, apiCfg, err := loadConfig(v)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := log.NewLogger(os.Stderr)

			engine, err := app.New(engineCfg, logger)
			if err != nil {
				return fmt.Errorf("build engine: %w", err)
			}

			srv := api.NewServer(engine, apiCfg, logger)
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().String("api.host", "", "API listen host")
	cmd.Flags().String("api.port", "", "API listen port")
	return cmd
}

// loadConfig merges defaults, the config file, environment, and flags into
// the engine and API configurations.
func loadConfig(v *viper.Viper) (app.Config, *api.Config, error) {
	engineCfg := app.DefaultConfig()
	apiCfg := api.DefaultConfig()

	if sub := v.Sub("engine"); sub != nil {
		if err := decodeInto(sub, &engineCfg); err != nil {
			return engineCfg, nil, err
		}
	}
	if sub := v.Sub("api"); sub != nil {
		if err := decodeInto(sub, apiCfg); err != nil {
			return engineCfg, nil, err
		}
	}
	if host := v.GetString("api.host"); host != "" {
		apiCfg.Host = host
	}
	if port := v.GetString("api.port"); port != "" {
		apiCfg.Port = port
	}

	if err := engineCfg.Validate(); err != nil {
		return engineCfg, nil, err
	}
	return engineCfg, apiCfg, nil
}

// decodeInto unmarshals a viper section with big-integer support. Amounts
// in YAML are plain strings or numbers and decode into math.Int.
func decodeInto(v *viper.Viper, target any) error {
	return v.Unmarshal(target, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mathIntHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
}

func mathIntHook(_, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(math.Int{}) {
		return data, nil
	}
	s, err := cast.ToStringE(data)
	if err != nil {
		return nil, err
	}
	n, ok := math.NewIntFromString(s)
	if !ok {
		return nil, fmt.Errorf("invalid integer amount %q", s)
	}
	return n, nil
}
