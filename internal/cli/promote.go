// Package cli holds operator-run maintenance commands that run against the
// database directly, outside the HTTP surface. Superuser promotion lives
// here on purpose: no request path may touch the privilege flag.
package cli

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/foliogate/internal/db"
	"github.com/terraincognita07/foliogate/internal/models"
	"github.com/terraincognita07/foliogate/internal/services"
	"gorm.io/gorm"
)

// RunPromoteAdminCommand flips the privilege flag for the account with the
// given email. This is the only code path that sets is_superuser.
func RunPromoteAdminCommand(dbPath string, email string) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return errors.New("a valid email is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	repo := db.NewUserRepository(database)
	user, err := repo.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	if user.IsSuperuser {
		fmt.Printf("%s is already a superuser\n", user.Email)
		return nil
	}

	if err := repo.SetSuperuser(user.ID, true); err != nil {
		return fmt.Errorf("promote user: %w", err)
	}

	fmt.Printf("✅ %s promoted to superuser\n", user.Email)
	fmt.Println("Existing sessions pick the change up on their next request.")
	return nil
}

// RunDemoteAdminCommand clears the privilege flag; the demotion takes
// effect on the user's next authenticated request regardless of any
// still-valid token.
func RunDemoteAdminCommand(dbPath string, email string) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return errors.New("a valid email is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	repo := db.NewUserRepository(database)
	var user models.User
	user, err = repo.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	if !user.IsSuperuser {
		fmt.Printf("%s is not a superuser\n", user.Email)
		return nil
	}

	if err := repo.SetSuperuser(user.ID, false); err != nil {
		return fmt.Errorf("demote user: %w", err)
	}

	fmt.Printf("✅ %s demoted to ordinary user\n", user.Email)
	return nil
}
