package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hance08/txengine/internal/app"
	"github.com/hance08/txengine/internal/config"
	"github.com/hance08/txengine/internal/errhandler"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	if err := NewRootCmd(migrations).Execute(); err != nil {
		errhandler.HandleError(err)
	}
}

func NewRootCmd(migrations fs.FS) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "txengine <transactions.csv>",
		Short: "txengine replays a CSV stream of client transactions into account balances",
		Long: `txengine replays deposits, withdrawals, disputes, resolves and chargebacks
in file order and prints the resulting balance of every client account as CSV.

Rejected or malformed rows are reported on stderr and skipped.`,
		Example: `  # Process a file and write the snapshot to stdout
  txengine transactions.csv > accounts.csv

  # Read from stdin, keep transaction history in SQLite, print a summary
  cat transactions.csv | txengine - --memory-backend sqlite --summary`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &processRunner{
				cfg:        cfg,
				migrations: migrations,
				input:      args[0],
				stdin:      cmd.InOrStdin(),
				stdout:     cmd.OutOrStdout(),
				stderr:     cmd.ErrOrStderr(),
			}
			return runner.Run()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	flags := rootCmd.Flags()
	flags.StringP("output", "o", "", "write the account snapshot to this file instead of stdout")
	flags.Bool("summary", false, "print a run summary on stderr")
	flags.String("memory-backend", "", "where settled transactions are remembered: memory or sqlite")
	flags.String("metrics-textfile", "", "write Prometheus metrics to this file after the run")
	rootCmd.PersistentFlags().String("log-level", "", "trace, debug, info, warn, error or disabled")
	rootCmd.PersistentFlags().String("log-format", "", "text or json")

	bindFlag("output.path", flags.Lookup("output"))
	bindFlag("output.summary", flags.Lookup("summary"))
	bindFlag("memory.backend", flags.Lookup("memory-backend"))
	bindFlag("metrics.textfile", flags.Lookup("metrics-textfile"))
	bindFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func setDefaults() {
	def := config.NewDefault()
	viper.SetDefault("log.level", def.Log.Level)
	viper.SetDefault("log.format", def.Log.Format)
	viper.SetDefault("memory.backend", def.Memory.Backend)
	viper.SetDefault("memory.path", def.Memory.Path)
	viper.SetDefault("memory.expected_transactions", def.Memory.ExpectedTransactions)
	viper.SetDefault("output.path", def.Output.Path)
	viper.SetDefault("output.summary", def.Output.Summary)
	viper.SetDefault("metrics.textfile", def.Metrics.Textfile)
}

func initConfig() error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.AppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TXENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}
