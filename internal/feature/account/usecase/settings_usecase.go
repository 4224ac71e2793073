package usecase

import (
	"context"
	"fmt"

	"studyhub_backend/internal/feature/account/domain/entity"
)

// Profile carries the editable profile fields.
type Profile struct {
	Bio          string
	URL          string
	Occupation   string
	Location     string
	ProfileImage string
}

// Notifications carries the notification preference flags.
type Notifications struct {
	StudyCreatedByEmail          bool
	StudyCreatedByWeb            bool
	StudyEnrollmentResultByEmail bool
	StudyEnrollmentResultByWeb   bool
	StudyUpdatedByEmail          bool
	StudyUpdatedByWeb            bool
}

// UpdateProfile replaces the account's profile fields.
func (u *AccountUsecase) UpdateProfile(ctx context.Context, accountID uint, profile Profile) error {
	account, err := u.mustFindByID(ctx, accountID)
	if err != nil {
		return err
	}
	account.Bio = profile.Bio
	account.URL = profile.URL
	account.Occupation = profile.Occupation
	account.Location = profile.Location
	account.ProfileImage = profile.ProfileImage
	return u.accounts.Save(ctx, account)
}

// UpdateNickname changes the account's nickname after re-validating
// uniqueness. It returns ErrDuplicateIdentity when another account already
// uses the nickname.
func (u *AccountUsecase) UpdateNickname(ctx context.Context, accountID uint, nickname string) error {
	existing, err := u.accounts.FindByNickname(ctx, nickname)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != accountID {
		return ErrDuplicateIdentity
	}

	account, err := u.mustFindByID(ctx, accountID)
	if err != nil {
		return err
	}
	account.Nickname = nickname
	return u.accounts.Save(ctx, account)
}

// UpdatePassword re-hashes and stores a new password.
func (u *AccountUsecase) UpdatePassword(ctx context.Context, accountID uint, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	account, err := u.mustFindByID(ctx, accountID)
	if err != nil {
		return err
	}
	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = hashed
	return u.accounts.Save(ctx, account)
}

// UpdateNotifications replaces the account's notification preferences.
func (u *AccountUsecase) UpdateNotifications(ctx context.Context, accountID uint, prefs Notifications) error {
	account, err := u.mustFindByID(ctx, accountID)
	if err != nil {
		return err
	}
	account.StudyCreatedByEmail = prefs.StudyCreatedByEmail
	account.StudyCreatedByWeb = prefs.StudyCreatedByWeb
	account.StudyEnrollmentResultByEmail = prefs.StudyEnrollmentResultByEmail
	account.StudyEnrollmentResultByWeb = prefs.StudyEnrollmentResultByWeb
	account.StudyUpdatedByEmail = prefs.StudyUpdatedByEmail
	account.StudyUpdatedByWeb = prefs.StudyUpdatedByWeb
	return u.accounts.Save(ctx, account)
}

// AddTag subscribes the account to a tag, creating the tag if needed.
func (u *AccountUsecase) AddTag(ctx context.Context, accountID uint, title string) error {
	tag, err := u.accounts.FindOrCreateTag(ctx, title)
	if err != nil {
		return err
	}
	return u.accounts.AddTag(ctx, accountID, tag)
}

// RemoveTag unsubscribes the account from a tag. Removing an unknown tag is
// a no-op.
func (u *AccountUsecase) RemoveTag(ctx context.Context, accountID uint, title string) error {
	tag, err := u.accounts.FindTag(ctx, title)
	if err != nil {
		return err
	}
	if tag == nil {
		return nil
	}
	return u.accounts.RemoveTag(ctx, accountID, tag)
}

// Tags returns the account's tag subscriptions.
func (u *AccountUsecase) Tags(ctx context.Context, accountID uint) ([]entity.Tag, error) {
	return u.accounts.Tags(ctx, accountID)
}

// AddZone subscribes the account to a zone, creating the zone if needed.
func (u *AccountUsecase) AddZone(ctx context.Context, accountID uint, city, province string) error {
	zone, err := u.accounts.FindOrCreateZone(ctx, city, province)
	if err != nil {
		return err
	}
	return u.accounts.AddZone(ctx, accountID, zone)
}

// RemoveZone unsubscribes the account from a zone. Removing an unknown zone
// is a no-op.
func (u *AccountUsecase) RemoveZone(ctx context.Context, accountID uint, city, province string) error {
	zone, err := u.accounts.FindZone(ctx, city, province)
	if err != nil {
		return err
	}
	if zone == nil {
		return nil
	}
	return u.accounts.RemoveZone(ctx, accountID, zone)
}

// Zones returns the account's zone subscriptions.
func (u *AccountUsecase) Zones(ctx context.Context, accountID uint) ([]entity.Zone, error) {
	return u.accounts.Zones(ctx, accountID)
}

// mustFindByID loads an account by ID, translating absence into
// ErrUnknownAccount.
func (u *AccountUsecase) mustFindByID(ctx context.Context, accountID uint) (*entity.Account, error) {
	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUnknownAccount
	}
	return account, nil
}
