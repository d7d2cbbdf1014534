package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/foliogate/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type stubRegistrationRepo struct {
	exists    bool
	existsErr error
	createErr error
	created   *models.User
}

func (stub *stubRegistrationRepo) ExistsByNormalizedEmail(string) (bool, error) {
	return stub.exists, stub.existsErr
}

func (stub *stubRegistrationRepo) Create(user *models.User) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	stub.created = user
	return nil
}

func newRegistrationService(repo *stubRegistrationRepo) *RegistrationService {
	return NewRegistrationService(repo, NewInvitePolicy("LETMEIN-42"))
}

func TestRegisterRejectsMissingAndWrongInvite(t *testing.T) {
	service := newRegistrationService(&stubRegistrationRepo{})

	_, err := service.Register("alice@example.com", "StrongPass1", "Alice", "")
	if !errors.Is(err, ErrInviteRequired) {
		t.Fatalf("expected ErrInviteRequired, got %v", err)
	}

	_, err = service.Register("alice@example.com", "StrongPass1", "Alice", "WRONG")
	if !errors.Is(err, ErrInvalidInvite) {
		t.Fatalf("expected ErrInvalidInvite, got %v", err)
	}
}

func TestRegisterValidatesInputs(t *testing.T) {
	service := newRegistrationService(&stubRegistrationRepo{})

	_, err := service.Register("", "StrongPass1", "Alice", "LETMEIN-42")
	if !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}

	_, err = service.Register("not-an-email", "StrongPass1", "Alice", "LETMEIN-42")
	if !errors.Is(err, ErrEmailInvalid) {
		t.Fatalf("expected ErrEmailInvalid, got %v", err)
	}

	_, err = service.Register("alice@example.com", "StrongPass1", "  ", "LETMEIN-42")
	if !errors.Is(err, ErrFullNameRequired) {
		t.Fatalf("expected ErrFullNameRequired, got %v", err)
	}

	_, err = service.Register("alice@example.com", "", "Alice", "LETMEIN-42")
	if !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}

	_, err = service.Register("alice@example.com", "weak", "Alice", "LETMEIN-42")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterRejectsExistingEmail(t *testing.T) {
	service := newRegistrationService(&stubRegistrationRepo{exists: true})

	_, err := service.Register("alice@example.com", "StrongPass1", "Alice", "LETMEIN-42")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterTranslatesLostInsertRace(t *testing.T) {
	service := newRegistrationService(&stubRegistrationRepo{
		createErr: errors.New("UNIQUE constraint failed: users.email"),
	})

	_, err := service.Register("alice@example.com", "StrongPass1", "Alice", "LETMEIN-42")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists from unique violation, got %v", err)
	}
}

func TestRegisterCreatesOrdinaryUser(t *testing.T) {
	repo := &stubRegistrationRepo{}
	service := newRegistrationService(repo)

	user, err := service.Register("  Alice@Example.COM ", "StrongPass1", "  Alice Moreau ", "LETMEIN-42")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected Create() to be called")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.FullName != "Alice Moreau" {
		t.Fatalf("expected trimmed full name, got %q", user.FullName)
	}
	if user.IsSuperuser {
		t.Fatal("registration must never produce a superuser")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("StrongPass1")) != nil {
		t.Fatal("password hash does not verify against the original password")
	}
}
