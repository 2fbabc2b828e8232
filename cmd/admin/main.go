// Command admin creates an administrator account directly in the
// database. The HTTP API requires an existing admin to create users, so
// the first one is bootstrapped here.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/upanishads/sutra-api/internal/auth"
	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
	"github.com/upanishads/sutra-api/internal/server/storage/sqlite"
	"github.com/upanishads/sutra-api/internal/validation"
)

func main() {
	var (
		dbPath    = flag.String("db", "./upanishads.db", "Path to the SQLite database")
		email     = flag.String("email", "", "Admin email (required)")
		password  = flag.String("password", "", "Admin password (required)")
		firstName = flag.String("first-name", "", "First name (required)")
		lastName  = flag.String("last-name", "", "Last name")
		phoneNo   = flag.String("phone", "", "Phone number")
	)
	flag.Parse()

	if err := run(*dbPath, *email, *password, *firstName, *lastName, *phoneNo); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dbPath, email, password, firstName, lastName, phoneNo string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("-email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("-password: %w", err)
	}
	if strings.TrimSpace(firstName) == "" {
		return errors.New("-first-name is required")
	}

	ctx := context.Background()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	hash, err := auth.NewHasher().Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	id, err := store.CreateUser(ctx, &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		PhoneNo:      phoneNo,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return fmt.Errorf("user %s already exists", email)
		}
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("admin user created: id=%d email=%s\n", id, email)
	return nil
}
