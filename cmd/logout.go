package cmd

import (
	"context"
	"fmt"

	"github.com/byxorna/tinyhouse/pkg/config"
	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/model"
	"github.com/byxorna/tinyhouse/pkg/session"
	"github.com/spf13/cobra"
)

var logout = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewFromFile(flags.ConfigFile)
		if err != nil {
			return err
		}
		log, err := model.NewLogger(cfg)
		if err != nil {
			return err
		}
		store, err := session.NewDefaultStore()
		if err != nil {
			return err
		}
		if _, ok := store.Get(); !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()

		// the local session goes away even if the server can't be reached
		if _, err := gateway.LogOut(ctx, gateway.New(cfg, store, log)); err != nil {
			log.WithError(err).Warn("unable to log out remotely")
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: the server could not be reached, clearing the local session only")
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}
