// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eigenframes/dataset"
	"github.com/katalvlaran/eigenframes/matrix"
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Inspect stored reconstruction sessions",
}

var framesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		sessions, err := store.Sessions(ctx)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tSAMPLES\tFEATURES\tCOMPONENTS\tBLOCK\tLABEL")
		for _, s := range sessions {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
				s.ID, s.CreatedAt.Format(time.RFC3339), s.Samples, s.Features, s.Components, s.BlockSize, s.Label)
		}

		return tw.Flush()
	},
}

var (
	showIndex  int
	showSample int
	showWidth  int
	showCSV    bool
)

var framesShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's frames, or one frame with --index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		sess, err := store.Session(ctx, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if showIndex < 0 {
			frames, err := store.Frames(ctx, sess.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "session %s (%d×%d, %d components, block %d) %q\n",
				sess.ID, sess.Samples, sess.Features, sess.Components, sess.BlockSize, sess.Label)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tCONSUMED\tSHAPE")
			for _, f := range frames {
				fmt.Fprintf(tw, "%d\t%d\t%dx%d\n", f.Index, f.Consumed, f.Rows, f.Cols)
			}
			return tw.Flush()
		}

		f, err := store.Frame(ctx, sess.ID, showIndex)
		if err != nil {
			return err
		}
		m, err := f.Matrix()
		if err != nil {
			return err
		}
		if len(sess.Mean) == m.Cols() {
			if m, err = matrix.AddRowVector(m, sess.Mean); err != nil {
				return err
			}
		}
		if showCSV {
			return dataset.WriteCSV(out, m)
		}
		row, err := m.Row(showSample)
		if err != nil {
			return fmt.Errorf("--sample %d: %w", showSample, err)
		}
		width := showWidth
		if width == 0 {
			width = squareSide(len(row))
		}
		g, err := dataset.Grid(row, width)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "frame %d of %s (%d components)\n%s", f.Index, sess.ID, f.Consumed, dataset.Render(g))

		return nil
	},
}

var framesDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its frames",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if err = store.DeleteSession(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "session %s deleted\n", args[0])

		return nil
	},
}

func init() {
	framesCmd.AddCommand(framesListCmd, framesShowCmd, framesDeleteCmd)

	framesShowCmd.Flags().IntVar(&showIndex, "index", -1, "Frame index to print (default: list frames)")
	framesShowCmd.Flags().IntVar(&showSample, "sample", 0, "Sample row to render")
	framesShowCmd.Flags().IntVar(&showWidth, "width", 0, "Image width (default: square root of the feature count)")
	framesShowCmd.Flags().BoolVar(&showCSV, "csv", false, "Print the whole frame as CSV instead of rendering a sample")
}
