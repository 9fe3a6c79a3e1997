package dormctl

import (
	"dorm-delivery/pkg/client"
	"github.com/spf13/cobra"
)

func (a *app) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin Dashboard",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Aggregate statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard(client.RoleAdmin); err != nil {
				return err
			}

			stats, err := a.client.Stats(cmd.Context())
			if err != nil {
				return a.failed("get stats", "Error loading stats", err)
			}

			out := cmd.OutOrStdout()
			writef(out, "Users:              %d\n", stats.UsersCount)
			writef(out, "Total deliveries:   %d\n", stats.TotalDeliveries)
			writef(out, "Active deliveries:  %d\n", stats.ActiveDeliveries)
			writef(out, "Pending:            %d\n", stats.PendingDeliveries)
			writef(out, "In progress:        %d\n", stats.InProgress)
			writef(out, "Held payments:      %d\n", stats.TotalHeldPayments)
			return nil
		},
	})
	return cmd
}
