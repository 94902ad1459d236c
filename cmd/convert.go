package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/gscore2midi/constants"
	"github.com/jsphweid/gscore2midi/convert"
	"github.com/jsphweid/gscore2midi/publish"
	"github.com/jsphweid/gscore2midi/resolve"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var publishURL string

type publisher interface {
	Publish(ctx context.Context, loc publish.Location, body io.Reader) (string, error)
}

var newPublisher = func() (publisher, error) {
	return publish.NewS3Publisher(constants.GetAWSRegion())
}

func init() {
	convertCmd.Flags().StringVar(&publishURL, "publish", "", "also upload the midi file to s3://bucket/key")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <inputfile>",
	Short: "Converts a gscore file",
	Long:  `Converts a gscore file and saves the result next to it as <inputfile>.mid`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions()
		if err != nil {
			return err
		}
		res, err := run(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved midi file as '%s'\n", res.Output)
		return nil
	},
}

func run(ctx context.Context, out io.Writer, input string, opts resolve.Options) (convert.Result, error) {
	var loc publish.Location
	if publishURL != "" {
		var err error
		if loc, err = publish.ParseURL(publishURL); err != nil {
			return convert.Result{}, err
		}
	}

	res, err := convert.ConvertFile(input, opts)
	if err != nil {
		return res, err
	}
	if publishURL == "" {
		return res, nil
	}

	p, err := newPublisher()
	if err != nil {
		return res, err
	}
	f, err := os.Open(res.Output)
	if err != nil {
		return res, errors.Wrap(err, "could not reopen output")
	}
	defer f.Close()
	if ctx == nil {
		ctx = context.Background()
	}
	where, err := p.Publish(ctx, loc, f)
	if err != nil {
		return res, err
	}
	fmt.Fprintf(out, "Published midi file to %s\n", where)
	return res, nil
}
