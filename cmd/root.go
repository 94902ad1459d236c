package cmd

import (
	"github.com/jsphweid/gscore2midi/constants"
	"github.com/jsphweid/gscore2midi/logger"
	"github.com/jsphweid/gscore2midi/resolve"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	order    string
	strict   bool
)

var rootCmd = &cobra.Command{
	Use:   "gscore2midi",
	Short: "Converts gscore files to midi",
	Long: `gscore2midi turns a gscore XML score into a standard midi file with one
track per score track, plus a leading tempo and time signature track.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// args are valid by now, later errors are not usage errors
		cmd.SilenceUsage = true
		return logger.Init(cmd.OutOrStdout(), logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&order, "order", constants.GetOrder(),
		"what to do with blocks whose messages are not in time order: passthrough, sort or reject")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false,
		"reject velocities and pitches outside 0..127 and block times outside [0,1)")
}

func resolveOptions() (resolve.Options, error) {
	o, err := resolve.ParseOrder(order)
	if err != nil {
		return resolve.Options{}, err
	}
	return resolve.Options{Order: o, Strict: strict}, nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// ExecuteArgs runs the root command with args instead of os.Args.
func ExecuteArgs(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
