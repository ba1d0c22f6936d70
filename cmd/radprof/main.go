/*radprof computes radial profiles of halos and transforms them between real,
projected and Fourier space. Every mode reads a gcfg configuration file:

	radprof pressure pressure.config
	radprof transform transform.config
	radprof miscenter miscenter.config
	radprof xi xi.config

and an annotated example of each file is printed by

	radprof example-config <mode>
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	rpio "github.com/phil-mansfield/radprof/io"
	"github.com/phil-mansfield/radprof/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logging.New(os.Stderr, log.InfoLevel).Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose, performance bool

	root := &cobra.Command{
		Use:           "radprof",
		Short:         "radprof computes and transforms radial halo profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case verbose:
				logging.Mode = logging.Debug
			case performance:
				logging.Mode = logging.Performance
			default:
				logging.Mode = logging.Nil
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(
		&performance, "performance", "p", false, "log stage timings and memory usage",
	)

	root.AddCommand(newPressureCmd())
	root.AddCommand(newTransformCmd())
	root.AddCommand(newMiscenterCmd())
	root.AddCommand(newXiCmd())
	root.AddCommand(newExampleConfigCmd())
	return root
}

func newExampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config <mode>",
		Short: "Print an example configuration file for pressure, transform, miscenter or xi",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := rpio.ExampleConfig(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}
