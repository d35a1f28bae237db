package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/direct-connect/go-tiger/server"
)

type Config struct {
	Serve struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		MaxBody int64  `yaml:"max_body" mapstructure:"max_body"`
	} `yaml:"serve"`
	Database struct {
		Type string `yaml:"type"`
		Path string `yaml:"path"`
	} `yaml:"database"`
}

const defaultConfig = "tigersum.yml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "write the default config",
}

func initConfig(path string) error {
	return viper.WriteConfigAs(path)
}

// readConfig loads the config file. If create is set, a missing config is initialized with defaults.
// Otherwise the defaults are used as-is.
func readConfig(create bool) (*Config, error) {
	err := viper.ReadInConfig()
	if err == nil {
		log.Info("loaded config", zap.String("path", viper.ConfigFileUsed()))
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		if !create {
			err = nil
		} else if err = initConfig(defaultConfig); err == nil {
			err = viper.ReadInConfig()
			if err == nil {
				log.Info("initialized config", zap.String("path", viper.ConfigFileUsed()))
			}
		}
	}
	if err != nil {
		return nil, err
	}
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// mustBind binds the config key to the flag. Flags are defined statically, so an error is a bug.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func init() {
	viper.AddConfigPath(".")
	if runtime.GOOS != "windows" {
		viper.AddConfigPath("/etc/tigersum")
	}
	viper.SetConfigName("tigersum")
	viper.SetDefault("serve.host", "127.0.0.1")
	viper.SetDefault("serve.port", 8192)
	viper.SetDefault("serve.max_body", server.DefaultMaxBody)
	viper.SetDefault("database.type", "")
	viper.SetDefault("database.path", "")

	initCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := initConfig(defaultConfig); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "initialized config:", defaultConfig)
		return nil
	}
	Root.AddCommand(initCmd)
}
