package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/repository"
)

func createAdminCmd() *cobra.Command {
	var email, username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			db, closeDB, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			hash := string(hashBytes)

			user := &model.User{
				Email:    email,
				Username: username,
				Hash:     &hash,
				Role:     model.UserRoleAdmin,
				Active:   true,
			}
			if err := repository.NewUserRepository(db).Create(cmd.Context(), user); err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			fmt.Printf("admin created: %s (%s)\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password (min 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
