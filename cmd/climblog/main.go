package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/climblog/climblog/internal/config"
	"github.com/climblog/climblog/internal/utils"
	"github.com/climblog/climblog/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "climblog",
	Short:         "Log climbing sessions and keep them in sync with a bucket",
	Version:       version.Detailed(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// flags are parsed by now, so --data-dir and the config file both count
		closer, err := setupLogging(logFilePath(cmd))
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		closeLog = closer
		return nil
	},
}

// closeLog flushes the file log opened for the running command.
var closeLog = func() {}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.SortFlags = false
	pf.StringP("config", "c", "", fmt.Sprintf("climblog config file (default %s)", config.DefaultConfigPath))
	pf.StringP("logs-dir", "l", config.DefaultLogsDir, "directory holding the JSON activity logs")
	pf.String("data-dir", config.DefaultDataDir, "directory for the lock file, database and app logs")
	pf.StringP("bucket", "b", config.DefaultBucket, "bucket to reconcile against")
}

func main() {
	// a .env next to the binary's working dir feeds CLIMBLOG_* variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
	}

	defer func() { closeLog() }()

	// Setup root context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red.Render("Error:"), err)
		stop()
		closeLog()
		os.Exit(1)
	}
}

// logFilePath resolves data_dir through the same chain as loadConfig
// without validating the rest, so broken configs still get a file log.
func logFilePath(cmd *cobra.Command) string {
	v := viper.New()
	config.SetDefaults(v)

	path, _ := cmd.Flags().GetString("config")
	if err := config.Read(v, path); err != nil {
		slog.Debug("log path", "error", err)
	}
	if f := cmd.Flags().Lookup("data-dir"); f != nil {
		v.BindPFlag("data_dir", f)
	}

	dataDir := v.GetString("data_dir")
	if resolved, err := utils.ResolvePath(dataDir); err == nil {
		dataDir = resolved
	}
	return filepath.Join(dataDir, "logs", "climblog.log")
}

// setupLogging fans slog out to a tinted stderr handler and a plain text
// handler on logFile. The returned func flushes and closes the file.
func setupLogging(logFile string) (func(), error) {
	if err := utils.EnsureParent(logFile); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	stderrHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	logInterceptor := utils.NewLogInterceptor(file)
	fileHandler := slog.NewTextHandler(logInterceptor, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		// the interceptor stamps each line
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(utils.NewMultiLogHandler(stderrHandler, fileHandler)))

	var closed bool
	return func() {
		if closed {
			return
		}
		closed = true
		_ = logInterceptor.Close()
		_ = file.Close()
	}, nil
}

// loadConfig reads the config file, CLIMBLOG_* env and the persistent flags,
// in rising priority.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)

	path, _ := cmd.Flags().GetString("config")
	if err := config.Read(v, path); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	v.BindPFlag("logs_dir", flags.Lookup("logs-dir"))
	v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	v.BindPFlag("bucket", flags.Lookup("bucket"))
	if f := flags.Lookup("workers"); f != nil {
		v.BindPFlag("workers", f)
	}
	if f := flags.Lookup("addr"); f != nil {
		v.BindPFlag("http.addr", f)
	}

	return config.Load(v)
}
