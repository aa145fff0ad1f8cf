package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcoot/metrogame/internal/config"
	"github.com/mcoot/metrogame/internal/factory"
)

var (
	v   *viper.Viper
	cfg *config.Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v = config.NewViper()
	cfg = nil
	app = nil

	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "metro",
		Short: "Play Metro, the tile-laying railway game",
		Long: `metro runs games of Metro stored in a local or shared backend.

Players take turns placing track tiles on the board, extending the routes
that leave their stations. Each command loads the named game, applies one
action and stores the result.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			if verbose {
				loaded.Log.Level = "debug"
			}
			cfg = loaded

			logger, err := factory.NewLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			app, err = factory.New(cfg, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default ./config.yaml or ~/.metro/config.yaml)")
	flags.String("storage", "", "Storage backend: memory, file, redis, sqlite (env: METRO_STORAGE_TYPE)")
	flags.String("data-dir", "", "Save directory for file storage (env: METRO_STORAGE_DATA_DIR)")
	flags.String("redis-url", "", "Redis URL for redis storage (env: METRO_STORAGE_REDIS_URL)")
	flags.String("sqlite-path", "", "Database path for sqlite storage (env: METRO_STORAGE_SQLITE_PATH)")
	flags.StringP("output", "o", "", "Output format: text, json (env: METRO_OUTPUT)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	bindFlag(rootCmd, "storage.type", "storage")
	bindFlag(rootCmd, "storage.data_dir", "data-dir")
	bindFlag(rootCmd, "storage.redis.url", "redis-url")
	bindFlag(rootCmd, "storage.sqlite.path", "sqlite-path")
	bindFlag(rootCmd, "output", "output")

	// Add subcommands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newPlaceCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

// bindFlag makes a flag override the config key when it is set on the command line
func bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	// Lookup only fails on a typo in the flag name
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// outputFormat is the configured output format, falling back to the raw
// setting when config failed to load
func outputFormat() string {
	if cfg != nil {
		return cfg.Output
	}
	return v.GetString("output")
}

// Execute runs the root command
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		NewOutput(outputFormat(), cmd.ErrOrStderr()).PrintError(err)
		os.Exit(1)
	}
}
