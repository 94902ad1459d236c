package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/gscore2midi/convert"
	"github.com/jsphweid/gscore2midi/logger"
	"github.com/jsphweid/gscore2midi/resolve"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	pollInterval time.Duration
	settle       time.Duration
)

func init() {
	watchCmd.Flags().DurationVar(&pollInterval, "poll", 500*time.Millisecond, "how often to check the input file")
	watchCmd.Flags().DurationVar(&settle, "settle", time.Second, "wait this long after the last change before converting")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <inputfile>",
	Short: "Converts a gscore file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return watch(ctx, cmd.OutOrStdout(), args[0], opts)
	},
}

// watch converts once, then again each time the modification time of input
// changes. Bursts of writes collapse into one conversion.
func watch(ctx context.Context, out io.Writer, input string, opts resolve.Options) error {
	stat, err := os.Stat(input)
	if err != nil {
		return errors.Wrap(err, "could not watch input")
	}
	lastMod := stat.ModTime()

	// stopped is set under mu once ctx is done, so a conversion still waiting
	// to settle never runs after watch returns
	var mu sync.Mutex
	stopped := false
	reconvert := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		res, err := convert.ConvertFile(input, opts)
		if err != nil {
			// keep watching, the author is probably mid-edit
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "Saved midi file as '%s'\n", res.Output)
	}
	reconvert()

	debounced := debounce.New(settle)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			stopped = true
			mu.Unlock()
			return nil
		case <-ticker.C:
			stat, err := os.Stat(input)
			if err != nil {
				logger.Get().Warn("could not stat input", "input", input, "err", err)
				continue
			}
			if !stat.ModTime().Equal(lastMod) {
				lastMod = stat.ModTime()
				logger.Get().Debug("input changed", "input", input)
				debounced(reconvert)
			}
		}
	}
}
