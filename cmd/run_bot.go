package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheVovchenskiy/sportify-tg-bot/server"

	"github.com/spf13/cobra"
)

var runBotCmd = &cobra.Command{
	Use:   "run-bot",
	Short: "Runs sportify telegram bot.",
	Long:  "Use this command to run the telegram bot and its notification http server.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		configPaths, err := cmd.Flags().GetStringSlice("config-path")
		if err != nil {
			return err
		}

		baseCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		srv := server.Server{}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-stop
			cancel()

			if err := srv.Shutdown(context.Background()); err != nil {
				cmd.PrintErrln(err)
			}
		}()

		return srv.Run(baseCtx, configPaths)
	},
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(runBotCmd)

	//nolint:lll
	runBotCmd.Flags().StringSliceP("config-path", "c", []string{}, "Path to config file dir to search in for config. Can be accepted multiple times.")
}
