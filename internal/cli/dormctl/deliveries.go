package dormctl

import (
	"fmt"
	"io"
	"strconv"

	"dorm-delivery/pkg/client"
	"github.com/AlekSi/pointer"
	"github.com/spf13/cobra"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid delivery id %q", raw)
	}
	return id, nil
}

// idCommand - команда вида "<use> ID" под проверкой роли.
func (a *app) idCommand(use, short string, role client.Role, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "" {
				if err := a.guard(role); err != nil {
					return err
				}
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, id)
		},
	}
}

func (a *app) deliveriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deliveries",
		Aliases: []string{"orders"},
		Short:   "Customer delivery requests",
	}

	cmd.AddCommand(
		a.deliveriesListCommand(),
		a.deliveriesCreateCommand(),
		a.idCommand("confirm", "Confirm a delivered request", client.RoleCustomer, func(cmd *cobra.Command, id int64) error {
			d, err := a.client.ConfirmDelivery(cmd.Context(), id)
			if err != nil {
				return a.failed("confirm delivery", "Failed to confirm delivery", err)
			}
			writef(cmd.OutOrStdout(), "Delivery confirmed: #%d is %s\n", d.ID, d.Status)
			return nil
		}),
		a.idCommand("pay", "Hold the fee for a request", client.RoleCustomer, func(cmd *cobra.Command, id int64) error {
			receipt, err := a.client.Pay(cmd.Context(), id)
			if err != nil {
				return a.failed("pay delivery", "Payment failed", err)
			}
			writef(cmd.OutOrStdout(), "Payment %s, reference %s\n", receipt.Status, receipt.PaymentReference)
			return nil
		}),
		a.idCommand("release", "Release the held payment of a delivered request", client.RoleCustomer, func(cmd *cobra.Command, id int64) error {
			d, err := a.client.Release(cmd.Context(), id)
			if err != nil {
				return a.failed("release payment", "Failed to release payment", err)
			}
			writef(cmd.OutOrStdout(), "Payment for #%d is %s\n", d.ID, d.PaymentStatus)
			return nil
		}),
		// трекинг доступен владельцу, исполнителю и админу, это решает сервер
		a.idCommand("show", "Track a single request", "", func(cmd *cobra.Command, id int64) error {
			d, err := a.client.Delivery(cmd.Context(), id)
			if err != nil {
				return a.failed("get delivery", "Failed to load delivery", err)
			}
			orderCard(cmd.OutOrStdout(), *d)
			return nil
		}),
	)
	return cmd
}

func (a *app) deliveriesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "My Requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard(client.RoleCustomer); err != nil {
				return err
			}

			list, err := a.client.MyDeliveries(cmd.Context())
			if err != nil {
				return a.failed("list deliveries", "Error loading deliveries", err)
			}
			return renderList(cmd, list, "No delivery requests yet", orderCard)
		},
	}
}

func (a *app) deliveriesCreateCommand() *cobra.Command {
	var (
		create client.DeliveryCreate
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "New Delivery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard(client.RoleCustomer); err != nil {
				return err
			}
			if cmd.Flags().Changed("amount") {
				create.Amount = pointer.ToFloat64(amount)
			}

			d, err := a.client.CreateDelivery(cmd.Context(), create)
			if err != nil {
				return a.failed("create delivery", "Failed to create delivery", err)
			}
			writef(cmd.OutOrStdout(), "Delivery request #%d created\n", d.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&create.Title, "title", "", "what to deliver")
	cmd.Flags().StringVar(&create.Description, "description", "", "details for the worker")
	cmd.Flags().StringVar(&create.PickupLocation, "pickup", "", "pickup location")
	cmd.Flags().StringVar(&create.DropoffLocation, "dropoff", "", "dropoff location")
	cmd.Flags().StringVar(&create.ParcelType, "parcel-type", "parcel", "parcel or canteen")
	cmd.Flags().Float64Var(&amount, "amount", 0, "delivery fee")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func renderList(cmd *cobra.Command, list []client.Delivery, empty string, card func(w io.Writer, d client.Delivery)) error {
	out := cmd.OutOrStdout()
	if emptyList(out, list, empty) {
		return nil
	}
	for _, d := range list {
		card(out, d)
	}
	return nil
}

