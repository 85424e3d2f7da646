package cmd

import (
	"context"
	"fmt"

	"havenstay/database"
	amenityRepo "havenstay/database/repository/amenity"
	"havenstay/models"

	"github.com/spf13/cobra"
)

// DefaultAmenities is the catalogue hosts pick from.
var DefaultAmenities = []models.Amenity{
	{ID: "wifi", Name: "Wifi", IconName: "wifi"},
	{ID: "kitchen", Name: "Kitchen", IconName: "kitchen"},
	{ID: "parking", Name: "Free parking", IconName: "local_parking"},
	{ID: "pool", Name: "Pool", IconName: "pool"},
	{ID: "ac", Name: "Air conditioning", IconName: "ac_unit"},
	{ID: "washer", Name: "Washer", IconName: "local_laundry_service"},
	{ID: "workspace", Name: "Dedicated workspace", IconName: "desk"},
	{ID: "tv", Name: "TV", IconName: "tv"},
	{ID: "pets", Name: "Pets allowed", IconName: "pets"},
	{ID: "beach", Name: "Beach access", IconName: "beach_access"},
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert or refresh the amenity catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.InitDB(); err != nil {
				return err
			}
			ctx := context.Background()
			defer database.Close(ctx)

			repo := amenityRepo.NewMongoAmenityRepo(database.DB())
			if err := repo.Upsert(ctx, DefaultAmenities); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d amenities\n", len(DefaultAmenities))
			return nil
		},
	}
}
