package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/byxorna/tinyhouse/pkg/model"
	"github.com/byxorna/tinyhouse/pkg/route"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flags = struct {
		ConfigFile string
	}{}

	root = &cobra.Command{
		Use:   "tinyhouse [route]",
		Short: "TinyHouse is a terminal client for finding and hosting vacation rentals",
		Long: `TinyHouse is a terminal client for finding and hosting vacation rentals.

The optional route picks the page to start on, for example
  tinyhouse /listings/Toronto
  tinyhouse "/login?code=4/0AX4XfWh..."
  tinyhouse "/stripe?code=ac_..."`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := route.Home()
			if len(args) > 0 {
				start = route.Parse(args[0])
				if start.Kind == route.NotFound {
					return fmt.Errorf("unknown route %q", args[0])
				}
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			m, err := model.NewFromConfigFile(ctx, flags.ConfigFile, start)
			if err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithAltScreen())
			err = p.Start()
			return err
		},
	}
)

func init() {
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "~/.tinyhouse.yaml", "configuration file")
	root.AddCommand(logout)
}

func Execute() {
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
