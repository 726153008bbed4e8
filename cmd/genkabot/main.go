package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coffeops/genkabot/internal/profile"
	"github.com/coffeops/genkabot/plugin/telegram"
	"github.com/coffeops/genkabot/server"
	"github.com/coffeops/genkabot/server/service/report"
	"github.com/coffeops/genkabot/store"
	"github.com/coffeops/genkabot/store/db"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "genkabot",
	Short: "Telegram bot collecting cleaning reports from coffee-shop staff",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := &profile.Profile{
			Mode:        viper.GetString("mode"),
			Addr:        viper.GetString("addr"),
			Port:        viper.GetInt("port"),
			Data:        viper.GetString("data"),
			Driver:      viper.GetString("driver"),
			DSN:         viper.GetString("dsn"),
			BotToken:    viper.GetString("bot-token"),
			AdminChatID: viper.GetInt64("admin-chat-id"),
			Version:     version,
		}
		instanceProfile.FromEnv()

		logger := newLogger(instanceProfile)
		slog.SetDefault(logger)

		if err := instanceProfile.Validate(); err != nil {
			logger.Error("invalid configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			logger.Error("failed to create db driver", slog.String("error", err.Error()))
			os.Exit(1)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		defer storeInstance.Close()

		if err := storeInstance.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", slog.String("error", err.Error()))
			os.Exit(1)
		}

		client, err := telegram.NewClient(instanceProfile, logger)
		if err != nil {
			logger.Error("failed to create telegram client", slog.String("error", err.Error()))
			os.Exit(1)
		}

		sessions := report.NewSessionStore()
		finalizer := report.NewFinalizer(storeInstance, client, sessions, logger)
		engine := report.NewEngine(report.DefaultCatalog(), sessions, finalizer, logger)
		poller := telegram.NewPoller(client, engine, logger)

		srv := server.New(instanceProfile, storeInstance, poller, logger)

		logger.Info("starting genkabot",
			slog.String("version", version),
			slog.String("mode", instanceProfile.Mode),
			slog.String("driver", instanceProfile.Driver))

		if err := srv.Start(ctx); err != nil {
			logger.Error("server stopped with error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	},
}

func newLogger(p *profile.Profile) *slog.Logger {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the bot, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the ops http server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of the ops http server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().String("bot-token", "", "telegram bot api token")
	rootCmd.PersistentFlags().Int64("admin-chat-id", 0, "chat that receives finished reports")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "bot-token", "admin-chat-id"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("genkabot")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
