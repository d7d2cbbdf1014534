package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/foliogate/internal/db"
	"github.com/terraincognita07/foliogate/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInviteRequired   = errors.New("invite code required")
	ErrEmailRequired    = errors.New("email required")
	ErrEmailInvalid     = errors.New("email invalid")
	ErrEmailExists      = errors.New("email already exists")
	ErrPasswordRequired = errors.New("password required")
	ErrFullNameRequired = errors.New("full name required")
)

type RegistrationUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	Create(user *models.User) error
}

type RegistrationService struct {
	users  RegistrationUserRepository
	invite *InvitePolicy
}

func NewRegistrationService(users RegistrationUserRepository, invite *InvitePolicy) *RegistrationService {
	return &RegistrationService{users: users, invite: invite}
}

// Register validates the invite gate and the account inputs, then creates
// an ordinary user. The privilege flag is never taken from input; promotion
// happens only through the operator CLI.
func (service *RegistrationService) Register(emailRaw string, password string, fullName string, inviteCode string) (models.User, error) {
	if strings.TrimSpace(inviteCode) == "" {
		return models.User{}, ErrInviteRequired
	}
	if !service.invite.Validate(inviteCode) {
		return models.User{}, ErrInvalidInvite
	}

	if strings.TrimSpace(emailRaw) == "" {
		return models.User{}, ErrEmailRequired
	}
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrEmailInvalid
	}

	if strings.TrimSpace(fullName) == "" {
		return models.User{}, ErrFullNameRequired
	}

	if strings.TrimSpace(password) == "" {
		return models.User{}, ErrPasswordRequired
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FullName:     strings.TrimSpace(fullName),
		IsSuperuser:  false,
		CreatedAt:    time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		// The unique constraint is the authority under concurrency; the
		// exists check above only gives the friendlier fast path.
		if db.IsUniqueViolation(err) {
			return models.User{}, ErrEmailExists
		}
		return models.User{}, err
	}

	return user, nil
}
