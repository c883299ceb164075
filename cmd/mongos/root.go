package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/guneyilmaz0/MongoS/pkg/mongos"
)

var (
	cfgFile    string
	collection string
	opts       = mongos.NewOptions()

	rootCmd = &cobra.Command{
		Use:   "mongos",
		Short: "Key/value operations against a MongoDB deployment",
		Long: `mongos is a small CLI over the MongoS client library. It stores every
value as a {key, value} document in the chosen collection and exposes the
basic key/value operations for ad hoc use.`,
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.mongos.yaml)")
	rootCmd.PersistentFlags().StringVarP(&collection, "collection", "c", "data", "collection to operate on")
	opts.AddFlags(rootCmd.PersistentFlags(), "mongo-")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(delCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(statusCmd)
}

// initConfig reads the config file and environment into viper.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".mongos")
		}
	}

	viper.SetEnvPrefix("MONGOS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

// applyConfig overlays config file and environment values onto flags the
// user did not set on the command line. Flags always win.
func applyConfig(cmd *cobra.Command) error {
	var applyErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			if err := f.Value.Set(viper.GetString(f.Name)); err != nil && applyErr == nil {
				applyErr = fmt.Errorf("invalid config value for %s: %w", f.Name, err)
			}
		}
	})
	return applyErr
}

// newClient connects using the effective options.
func newClient(cmd *cobra.Command) (*mongos.Client, error) {
	if err := applyConfig(cmd); err != nil {
		return nil, err
	}
	if opts.Database == "" {
		opts.Database = "mongos"
	}
	return mongos.New(opts)
}
