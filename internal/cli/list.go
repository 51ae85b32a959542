package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func listCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Display all your watched movies and shows, along with the date you watched them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := connect(cmd, opts)
			if err != nil {
				return err
			}
			entries, err := s.watchHistory(cmd.Context())
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}
}
