package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Permanently delete your entire watch history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			entries, err := s.watchHistory(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleting %d watch history entries\n\n", len(entries))

			// deletions are independent: a failed entry doesn't stop the others
			var failed int
			for _, entry := range entries {
				fmt.Fprintln(out, entry)
				if err = s.remove(ctx, entry.ID); err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "failed to delete %q: %v\n", entry.Item, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("deleted %d of %d watch history entries", len(entries)-failed, len(entries))
			}
			return nil
		},
	}
}
