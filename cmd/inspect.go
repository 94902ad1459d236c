package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/gscore2midi/model"
	"github.com/jsphweid/gscore2midi/score"
	"github.com/jsphweid/gscore2midi/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <inputfile>",
	Short: "Inspects a gscore file",
	Long:  `Prints tempo, meter, block definitions and tracks of a gscore file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := score.LoadFile(args[0])
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), s)
		return nil
	},
}

func inspect(w io.Writer, s *model.Score) {
	fmt.Fprintf(w, "tempo: %v\n", s.Tempo)
	fmt.Fprintf(w, "beatspermeasure: %v\n", s.BeatsPerMeasure)
	if s.KeySignature != "" {
		fmt.Fprintf(w, "keysignature: %v\n", s.KeySignature)
	}
	for _, name := range util.SortedKeys(s.BlockDefs) {
		fmt.Fprintf(w, "blockdef: %v (%v messages)\n", name, len(s.BlockDefs[name].Messages))
	}
	for i, t := range s.Tracks {
		var names []string
		for _, b := range t.Blocks {
			if b.IsSilent() {
				names = append(names, "-")
			} else {
				names = append(names, b.Name)
			}
		}
		fmt.Fprintf(w, "track %v: velocity %v blocks %v\n", i, t.Velocity, names)
	}
}
