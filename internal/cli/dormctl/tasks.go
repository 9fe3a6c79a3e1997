package dormctl

import (
	"context"

	"dorm-delivery/pkg/client"
	"github.com/spf13/cobra"
)

func (a *app) tasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Delivery worker tasks",
	}

	// клиент создается в PersistentPreRunE, поэтому метод берется через method expression
	transition := func(use, short, op string, call func(c *client.Client, ctx context.Context, id int64) (*client.Delivery, error)) *cobra.Command {
		return a.idCommand(use, short, client.RoleDelivery, func(cmd *cobra.Command, id int64) error {
			d, err := call(a.client, cmd.Context(), id)
			if err != nil {
				return a.failed(op, "Failed to update task status", err)
			}
			writef(cmd.OutOrStdout(), "Task #%d is %s\n", d.ID, d.Status)
			return nil
		})
	}

	cmd.AddCommand(
		a.tasksAvailableCommand(),
		a.tasksMyCommand(),
		transition("accept", "Accept an available task", "accept task", (*client.Client).AcceptTask),
		transition("start", "Start Delivery", "start task", (*client.Client).StartTask),
		transition("deliver", "Mark Delivered", "mark delivered", (*client.Client).MarkDelivered),
		transition("fail", "Give up an assigned task", "fail task", (*client.Client).FailTask),
	)
	return cmd
}

func (a *app) tasksAvailableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "Available Tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard(client.RoleDelivery); err != nil {
				return err
			}

			list, err := a.client.AvailableTasks(cmd.Context())
			if err != nil {
				return a.failed("list available tasks", "Error loading available tasks", err)
			}
			return renderList(cmd, list, "No tasks available", availableCard)
		},
	}
}

func (a *app) tasksMyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "my",
		Short: "My Tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard(client.RoleDelivery); err != nil {
				return err
			}

			list, err := a.client.MyTasks(cmd.Context())
			if err != nil {
				return a.failed("list assigned tasks", "Error loading assigned tasks", err)
			}
			return renderList(cmd, list, "No assigned tasks", taskCard)
		},
	}
}
