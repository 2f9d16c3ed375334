package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawmarket/api/pkg/jwt"
)

func tokenCmd() *cobra.Command {
	var (
		userID  string
		email   string
		expMins int
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an admin access token offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Signing needs only the private key, so no database connection
			jwtService, err := jwt.NewService(jwt.Config{
				PrivateKeyPath: cfg.JWT.PrivateKeyPath,
				Issuer:         cfg.JWT.Issuer,
				ExpirationMins: expMins,
			})
			if err != nil {
				return fmt.Errorf("load signing key: %w", err)
			}

			token, err := jwtService.Sign(jwt.Claims{
				UserID:   userID,
				Email:    email,
				Username: "admin",
				Role:     "admin",
			})
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			expires := time.Now().Add(time.Duration(expMins) * time.Minute)
			fmt.Printf("expires: %s\n", expires.Format(time.RFC3339))
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "user:admin", "subject user ID for the token")
	cmd.Flags().StringVar(&email, "email", "admin@pawmarket.dev", "email claim for the token")
	cmd.Flags().IntVar(&expMins, "exp", 60*24, "token lifetime in minutes")
	return cmd
}
