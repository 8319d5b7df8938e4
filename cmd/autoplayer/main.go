package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"autoplayer/internal/config"
	"autoplayer/internal/logger"
	"autoplayer/internal/osutils"
	"autoplayer/internal/player"
	"autoplayer/internal/runstate"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var configFile string

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "autoplayer",
		Short:        "Lane autoplayer: presses lane keys when the hit zone lights up",
		SilenceUsage: true,
		RunE:         runAutoplayerCmd,
	}

	addConfigFlag(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newProbeCmd())
	rootCmd.AddCommand(newSpamCmd())

	return rootCmd
}

func addConfigFlag(fs *pflag.FlagSet) {
	fs.StringVarP(&configFile, "config", "c", "", "YAML config file (default ./autoplayer.yaml if present)")
}

// setup читает конфигурацию и создает логгер
func setup() (*config.Config, *logger.LoggerManager, error) {
	c, err := config.InitConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	loggerManager, err := logger.NewLoggerManager(c.LogFilePath, c.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}

	for _, w := range c.Warnings {
		loggerManager.Info("[WARN] %s", w)
	}
	return c, loggerManager, nil
}

func runAutoplayerCmd(cmd *cobra.Command, _ []string) error {
	c, loggerManager, err := setup()
	if err != nil {
		return err
	}
	defer loggerManager.Close()

	if c.HighPriority {
		if err := osutils.RaisePriority(); err != nil {
			loggerManager.Debug("process priority not raised: %v", err)
		}
	}

	deps, err := player.Open(c)
	if err != nil {
		loggerManager.LogError(err, "startup")
		return err
	}
	defer func() {
		loggerManager.LogError(deps.Close(), "shutdown")
	}()

	state := runstate.New()
	stop := stopOnSignal(cmd.Context(), state)
	defer stop()

	player.Run(c, state, deps, loggerManager)
	return nil
}

// stopOnSignal переводит running в false по SIGINT/SIGTERM,
// чтобы воркеры успели отпустить клавиши
func stopOnSignal(ctx context.Context, state *runstate.State) context.CancelFunc {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		state.Stop()
	}()
	return cancel
}
