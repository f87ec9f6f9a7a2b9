// Package cmd implements the command-line interface for the hutbe
// harvester: the root command plus the harvest and catalog subcommands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	catalogcmd "github.com/talhay/open-hutbe-api/cmd/catalog"
	"github.com/talhay/open-hutbe-api/cmd/harvest"
	"github.com/talhay/open-hutbe-api/internal/config"
)

var (
	// cfgFile holds the path to an optional configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "hutbe",
		Short: "Mirror Diyanet sermon PDFs and maintain their JSON catalog",
		Long: `hutbe incrementally harvests sermon PDFs from the language sections of
dinhizmetleri.diyanet.gov.tr, mirrors them locally, and maintains JSON
catalogs suitable for serving from a static host.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are visible to viper.
	_ = godotenv.Load()

	// Parse flags early so --config and --debug are known before viper
	// is initialized.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hutbe version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(harvest.Command())
	rootCmd.AddCommand(catalogcmd.Command())
}

// initConfig wires viper: env vars and an optional config file over
// defaults. The harvester itself only ever sees the explicit
// config.Config built from the result.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// The config file is optional; env vars and defaults cover everything.
	_ = viper.ReadInConfig()

	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug {
		viper.Set("logger.level", "debug")
	}

	return nil
}

// bindEnvVars maps the published environment variables onto config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"github.username":              {"GITHUB_USERNAME"},
		"github.repo":                  {"GITHUB_REPO"},
		"harvest.max_pages":            {"HUTBE_MAX_PAGES"},
		"harvest.timeout":              {"HUTBE_TIMEOUT"},
		"harvest.data_dir":             {"HUTBE_DATA_DIR"},
		"harvest.insecure_skip_verify": {"HUTBE_INSECURE_SKIP_VERIFY"},
		"logger.level":                 {"LOG_LEVEL"},
		"logger.encoding":              {"LOG_FORMAT"},
	}

	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return nil
}

// setDefaults sets default configuration values matching the published
// mirror deployment.
func setDefaults() {
	viper.SetDefault("github", map[string]any{
		"username": config.DefaultGitHubUser,
		"repo":     config.DefaultGitHubRepo,
	})

	viper.SetDefault("harvest", map[string]any{
		"max_pages":            config.DefaultMaxPages,
		"timeout":              config.DefaultTimeout.String(),
		"data_dir":             ".",
		"insecure_skip_verify": true,
	})

	viper.SetDefault("logger", map[string]any{
		"level":    "info",
		"encoding": "console",
	})
}
