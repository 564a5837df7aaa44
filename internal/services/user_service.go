package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lifetrack/internal/currency"
	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db, now: time.Now}
}

// CreateUser registers a new user with default preferences.
func (s *userService) CreateUser(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	// Validate input
	if name == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, email and password are required")
	}

	// Check if user with email exists
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:        name,
		Email:       email,
		Password:    string(hashedPassword),
		IsActive:    true,
		Preferences: models.DefaultPreferences(),
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves an active user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// AttemptLogin returns the user for valid credentials and records the login
// time. Unknown emails and wrong passwords are indistinguishable to callers.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.db.Model(user).Update("last_login_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.LastLoginAt = &now

	return user, nil
}

// UpdatePreferences merges update into the user's preferences.
func (s *userService) UpdatePreferences(userID string, update PreferencesUpdate) (*models.User, error) {
	if update.Currency != nil {
		code := currency.Normalize(*update.Currency)
		if !currency.IsSupported(code) {
			return nil, apperrors.ErrUnsupportedCurrency
		}
		update.Currency = &code
	}

	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		u, err := loadUserForUpdate(tx, userID)
		if err != nil {
			return err
		}

		if update.Theme != nil {
			u.Preferences.Theme = *update.Theme
		}
		if update.Currency != nil {
			u.Preferences.Currency = *update.Currency
		}
		if update.DailyReminder != nil {
			u.Preferences.DailyReminder = *update.DailyReminder
		}
		if update.ReminderTime != nil {
			u.Preferences.ReminderTime = *update.ReminderTime
		}

		if err := tx.Save(u).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// loadUserForUpdate fetches the user inside tx ahead of a write.
func loadUserForUpdate(tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// advanceUserStreak moves one of the user's day-based streaks forward to at.
func advanceUserStreak(tx *gorm.DB, userID string, kind models.StreakKind, at time.Time) error {
	user, err := loadUserForUpdate(tx, userID)
	if err != nil {
		return err
	}
	user.SetStreakCounter(kind, user.StreakCounter(kind).Advance(at))
	if err := tx.Save(user).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
