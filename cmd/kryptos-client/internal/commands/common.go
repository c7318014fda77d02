package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justmedusty/Kryptos-Client/internal/pkg/config"
	"github.com/justmedusty/Kryptos-Client/internal/pkg/logger"
)

// RegisterLoggerFlags adds the logging flags shared by every command.
func RegisterLoggerFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("log-level", config.LogLevelInfo, "Log level (debug, info, warning, error, critical)")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file with rotation instead of stderr")
}

func setupLogger(cmd *cobra.Command) (logger.Logger, error) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("invalid log-level flag: %w", err)
	}
	filePath, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return nil, fmt.Errorf("invalid log-file flag: %w", err)
	}

	if err := logger.InitLogger(config.NewLoggerSettings(level, filePath)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
