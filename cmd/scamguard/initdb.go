package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/database"
)

// NewInitDBCmd creates the initdb command.
func NewInitDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Initialize the ScamGuard database",
		Long: `Initdb creates the SQLite database and seeds it with the built-in
threat lists (suspicious TLDs, known sites, payment gateways, and the
scam keyword table).

Optionally creates a user account for the API's login endpoint.

Examples:
  # Create and seed the database in the default data directory
  scamguard initdb

  # Seed from a custom lists file
  scamguard initdb -l mylists.yaml

  # Also create a user account
  scamguard initdb --email ana@example.com --password s3cret`,
		Args: cobra.NoArgs,
		RunE: runInitDBCmd,
	}

	cmd.Flags().StringP("lists", "l", "",
		"Threat lists file path (default: lists.yaml in current or config directory)")
	cmd.Flags().String("email", "", "Create a user account with this email")
	cmd.Flags().String("password", "", "Password for the created user account")

	return cmd
}

// runInitDBCmd executes the initdb command.
func runInitDBCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	var err error

	cfg.ListsFilePath, err = cmd.Flags().GetString("lists")
	if err != nil {
		return err
	}
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		return err
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return err
	}
	if (email == "") != (password == "") {
		return errors.New("--email and --password must be given together")
	}

	lists, err := loadLists(cfg)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := db.Seed(ctx, lists); err != nil {
		return fmt.Errorf("failed to seed threat lists: %w", err)
	}
	fmt.Printf("Database initialized: %s\n", db.Path())

	if email != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := db.CreateUser(ctx, email, string(hash)); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return fmt.Errorf("user already exists: %s", email)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		fmt.Printf("Created user: %s\n", email)
	}

	return nil
}
