// Package adapters provides repository implementations for the account feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studyhub_backend/internal/feature/account/domain/entity"
	"studyhub_backend/internal/feature/account/usecase"
)

// pgUniqueViolation is the Postgres error code for unique-constraint
// violations.
const pgUniqueViolation = "23505"

// accountGorm is a GORM implementation of the AccountRepository interface.
// The unique indexes on email and nickname make the duplicate check atomic:
// two concurrent creates with the same identity yield exactly one winner.
type accountGorm struct {
	db *gorm.DB
}

// Compile-time check that accountGorm implements AccountRepository.
var _ usecase.AccountRepository = (*accountGorm)(nil)

// NewAccountGorm creates a new instance of accountGorm with the given
// gorm.DB connection.
func NewAccountGorm(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// isDuplicateKey reports whether the error is a unique-constraint violation,
// covering both gorm's translated error and the raw Postgres driver error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Create adds an account to the database. It returns
// usecase.ErrDuplicateIdentity when the email or nickname is already taken.
func (r *accountGorm) Create(ctx context.Context, account *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

// FindByEmail retrieves an account by email address, or (nil, nil) when no
// account matches.
func (r *accountGorm) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByNickname retrieves an account by nickname, or (nil, nil) when no
// account matches.
func (r *accountGorm) FindByNickname(ctx context.Context, nickname string) (*entity.Account, error) {
	return r.findOne(ctx, "nickname = ?", nickname)
}

// FindByID retrieves an account by ID, or (nil, nil) when no account matches.
func (r *accountGorm) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *accountGorm) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var account entity.Account
	if err := r.db.WithContext(ctx).Where(query, arg).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Save persists mutated fields of an existing account. The email column is
// excluded: the email address is immutable after creation.
func (r *accountGorm) Save(ctx context.Context, account *entity.Account) error {
	err := r.db.WithContext(ctx).
		Model(account).
		Select("*").
		Omit("email", "created_at", "Tags", "Zones").
		Updates(account).Error
	if err != nil && isDuplicateKey(err) {
		return usecase.ErrDuplicateIdentity
	}
	return err
}

// Count returns the total number of accounts.
func (r *accountGorm) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Account{}).Count(&count).Error
	return count, err
}

// FindTag retrieves a tag by title, or (nil, nil) when it does not exist.
func (r *accountGorm) FindTag(ctx context.Context, title string) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// FindOrCreateTag returns the tag with the given title, creating it if
// needed.
func (r *accountGorm) FindOrCreateTag(ctx context.Context, title string) (*entity.Tag, error) {
	tag := entity.Tag{Title: title}
	err := r.db.WithContext(ctx).
		Where("title = ?", title).
		FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindZone retrieves a zone by city and province, or (nil, nil) when it does
// not exist.
func (r *accountGorm) FindZone(ctx context.Context, city, province string) (*entity.Zone, error) {
	var zone entity.Zone
	err := r.db.WithContext(ctx).
		Where("city = ? AND province = ?", city, province).
		First(&zone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &zone, nil
}

// FindOrCreateZone returns the zone with the given city/province, creating
// it if needed.
func (r *accountGorm) FindOrCreateZone(ctx context.Context, city, province string) (*entity.Zone, error) {
	zone := entity.Zone{City: city, Province: province}
	err := r.db.WithContext(ctx).
		Where("city = ? AND province = ?", city, province).
		FirstOrCreate(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

// AddTag associates a tag with an account.
func (r *accountGorm) AddTag(ctx context.Context, accountID uint, tag *entity.Tag) error {
	account := entity.Account{ID: accountID}
	return r.db.WithContext(ctx).Model(&account).Association("Tags").Append(tag)
}

// RemoveTag removes a tag association from an account.
func (r *accountGorm) RemoveTag(ctx context.Context, accountID uint, tag *entity.Tag) error {
	account := entity.Account{ID: accountID}
	return r.db.WithContext(ctx).Model(&account).Association("Tags").Delete(tag)
}

// Tags returns all tags associated with an account.
func (r *accountGorm) Tags(ctx context.Context, accountID uint) ([]entity.Tag, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).
		Preload(clause.Associations).
		First(&account, accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return account.Tags, nil
}

// AddZone associates a zone with an account.
func (r *accountGorm) AddZone(ctx context.Context, accountID uint, zone *entity.Zone) error {
	account := entity.Account{ID: accountID}
	return r.db.WithContext(ctx).Model(&account).Association("Zones").Append(zone)
}

// RemoveZone removes a zone association from an account.
func (r *accountGorm) RemoveZone(ctx context.Context, accountID uint, zone *entity.Zone) error {
	account := entity.Account{ID: accountID}
	return r.db.WithContext(ctx).Model(&account).Association("Zones").Delete(zone)
}

// Zones returns all zones associated with an account.
func (r *accountGorm) Zones(ctx context.Context, accountID uint) ([]entity.Zone, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).
		Preload(clause.Associations).
		First(&account, accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return account.Zones, nil
}
