package cmd

import (
	"context"
	"fmt"

	"havenstay/config"
	"havenstay/database"
	bookingRepo "havenstay/database/repository/booking"
	"havenstay/services/booking"
	"havenstay/utils"

	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete-bookings",
		Short: "Mark confirmed stays past checkout as completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.InitDB(); err != nil {
				return err
			}
			ctx := context.Background()
			defer database.Close(ctx)

			svc := &booking.DefaultBookingService{
				Bookings: bookingRepo.NewMongoBookingRepo(database.DB()),
				Location: config.Location(),
				Logger:   utils.GetLogger(),
			}
			n, err := svc.CompleteDue(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed %d bookings\n", n)
			return nil
		},
	}
}
