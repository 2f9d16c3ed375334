package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawmarket/api/internal/cache"
	"github.com/pawmarket/api/internal/repository"
	"github.com/pawmarket/api/internal/service"
)

func recalcRatingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recalc-ratings",
		Short: "Rebuild every caregiver's rating aggregate from stored reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			store := cache.NewMemoryCache(time.Minute)
			defer func() { _ = store.Close() }()

			caregivers := service.NewCaregiverService(service.CaregiverServiceConfig{
				ProfileRepo:      repository.NewProfileRepository(db),
				CatalogRepo:      repository.NewCatalogRepository(db),
				AvailabilityRepo: repository.NewAvailabilityRepository(db),
				ReviewRepo:       repository.NewReviewRepository(db),
				Cache:            store,
			})

			updated, err := caregivers.RecalcAllRatings(cmd.Context())
			if err != nil {
				return fmt.Errorf("recalc ratings: %w", err)
			}

			fmt.Printf("%d caregivers updated\n", updated)
			return nil
		},
	}
}
