package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawmarket/api/internal/service"
)

func seedCmd() *cobra.Command {
	var (
		owners     int
		caregivers int
		bookings   int
		city       string
		completed  bool
		reviews    bool
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the marketplace with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			seeder := service.NewSeederService(db, service.NewCommissionCalculator(cfg.Platform.FeePercent))
			result, err := seeder.SeedAll(cmd.Context(), service.SeedAllRequest{
				Owners:      owners,
				Caregivers:  caregivers,
				Bookings:    bookings,
				City:        city,
				Completed:   completed,
				WithReviews: reviews,
				Prefix:      prefix,
			})
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			fmt.Printf("seeded %d records in %dms\n", result.Created, result.Duration)
			return nil
		},
	}

	cmd.Flags().IntVar(&owners, "owners", 0, "owners to create (0 uses the default)")
	cmd.Flags().IntVar(&caregivers, "caregivers", 0, "caregivers to create (0 uses the default)")
	cmd.Flags().IntVar(&bookings, "bookings", 0, "bookings to create (0 uses the default)")
	cmd.Flags().StringVar(&city, "city", "", "pin every caregiver to one city")
	cmd.Flags().BoolVar(&completed, "completed", false, "backdate bookings and mark them paid")
	cmd.Flags().BoolVar(&reviews, "with-reviews", false, "review the completed bookings")
	cmd.Flags().StringVar(&prefix, "prefix", "", "marker prefix for seeded emails and usernames")

	cmd.AddCommand(seedCleanupCmd())
	return cmd
}

func seedCleanupCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove previously seeded records by prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			seeder := service.NewSeederService(db, service.NewCommissionCalculator(cfg.Platform.FeePercent))
			result, err := seeder.Cleanup(cmd.Context(), prefix)
			if err != nil {
				return fmt.Errorf("cleanup: %w", err)
			}

			fmt.Printf("deleted %d records in %dms\n", result.Deleted, result.Duration)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "seed prefix to remove (empty uses the default)")
	return cmd
}
