package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/adaptive/internal/app"
	"github.com/zjrosen/adaptive/internal/config"
	"github.com/zjrosen/adaptive/internal/log"
	"github.com/zjrosen/adaptive/internal/tracing"
)

func init() {
	// Query the terminal background before Bubble Tea owns the input, so the
	// OSC 11 reply does not leak into the program as key presses.
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".adaptive/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	noWatch   bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "adaptive",
	Short: "Responsive terminal layouts that switch variants as the window resizes",
	Long: `adaptive lays out a main and a sidebar view, each switching between
Mobile, Tablet and Desktop variants as the terminal is resized. Hidden
variants can be retained so switching back restores their scroll position.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .adaptive/config.yaml, then ~/.config/adaptive/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log and enable the log pane (ctrl+x)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"do not reload when the config file changes")
	rootCmd.Flags().Bool("no-retain", false,
		"start with retention of hidden variants off")

	_ = viper.BindPFlag("no_retain", rootCmd.Flags().Lookup("no-retain"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. .adaptive/config.yaml (current directory)
		// 2. ~/.config/adaptive/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "adaptive"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging turns logging on for --debug or ADAPTIVE_DEBUG. ADAPTIVE_LOG
// overrides the log path.
func initLogging() (func(), error) {
	if !debugFlag && os.Getenv("ADAPTIVE_DEBUG") == "" {
		return func() {}, nil
	}
	debugFlag = true

	logPath := os.Getenv("ADAPTIVE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, "adaptive")
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "adaptive starting", "version", version, "log", logPath)
	return cleanup, nil
}

// configPath is the file reloads read and the retention toggle writes.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return localConfigPath
}

// tracingConfig fills in the trace file next to the config file when the file
// exporter has no path.
func tracingConfig(c config.Config, cfgPath string) tracing.Config {
	tc := c.Tracing
	if tc.Enabled && tc.Exporter == "file" && tc.FilePath == "" {
		tc.FilePath = filepath.Join(filepath.Dir(cfgPath), "traces", "traces.jsonl")
	}
	return tc
}

func runApp(_ *cobra.Command, _ []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if viper.GetBool("no_retain") {
		cfg.RetainUnusedVariants = false
	}

	path := configPath()
	provider, err := tracing.NewProvider(tracingConfig(cfg, path))
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown", err)
		}
	}()

	zone.NewGlobal()

	model, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: path,
		Watch:      !noWatch,
		Tracer:     provider.Tracer(),
		Debug:      debugFlag,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if m, ok := final.(app.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
