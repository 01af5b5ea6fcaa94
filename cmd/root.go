package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jaggernaut555/chaoticbot/bot"
	"github.com/Jaggernaut555/chaoticbot/config"
	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "chaoticbot [flags]",
	Short:        "Discord bot running blackjack, connect 4 and minesweeper",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		logging.Setup(cfg.LogLevel)
		return bot.LaunchBot(cmd.Context(), cfg)
	},
}

// Execute runs the root command until it fails or the process is interrupted
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("error reading config file %s: %v", configFile, err)
		}
	}
	if err := godotenv.Load(); err != nil {
		logging.Logger("config").Debug("no .env file found")
	}
	config.SetDefaults(viper.GetViper())
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file to use")
	flags.StringP("token", "t", "", "Discord Authentication token")
	flags.StringP("password", "p", "", "Password for database user")
	flags.Bool("purge", false, "Use this flag to purge the game tables")

	fatalErr := func(err error) {
		if err != nil {
			log.Fatalf("error: %v", err)
		}
	}
	fatalErr(viper.BindPFlag("token", flags.Lookup("token")))
	fatalErr(viper.BindPFlag("database.password", flags.Lookup("password")))
	fatalErr(viper.BindPFlag("purge", flags.Lookup("purge")))
}
