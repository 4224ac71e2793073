package usecase

import (
	"context"

	"studyhub_backend/internal/feature/account/domain/entity"
)

// AccountRepository abstracts the persistence layer for account entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
//
// FindBy* methods return (nil, nil) when no account matches; callers treat
// absence as an expected outcome, not an error.
type AccountRepository interface {
	// Create persists a new account. It returns ErrDuplicateIdentity when
	// the email or nickname is already taken; under concurrent creation
	// with the same identity exactly one caller wins.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail retrieves the account matching the email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByNickname retrieves the account matching the nickname.
	FindByNickname(ctx context.Context, nickname string) (*entity.Account, error)

	// FindByID retrieves the account matching the ID.
	FindByID(ctx context.Context, id uint) (*entity.Account, error)

	// Save persists mutated fields of an existing account. The email
	// column is never updated through Save.
	Save(ctx context.Context, account *entity.Account) error

	// Count returns the total number of accounts.
	Count(ctx context.Context) (int64, error)

	// FindTag retrieves the tag with the given title, or (nil, nil) when
	// it does not exist.
	FindTag(ctx context.Context, title string) (*entity.Tag, error)

	// FindOrCreateTag returns the tag with the given title, creating it
	// first if it does not exist yet.
	FindOrCreateTag(ctx context.Context, title string) (*entity.Tag, error)

	// FindZone retrieves the zone with the given city/province, or
	// (nil, nil) when it does not exist.
	FindZone(ctx context.Context, city, province string) (*entity.Zone, error)

	// FindOrCreateZone returns the zone with the given city/province,
	// creating it first if it does not exist yet.
	FindOrCreateZone(ctx context.Context, city, province string) (*entity.Zone, error)

	// AddTag associates a tag with an account. Adding an already
	// associated tag is a no-op.
	AddTag(ctx context.Context, accountID uint, tag *entity.Tag) error

	// RemoveTag removes a tag association from an account.
	RemoveTag(ctx context.Context, accountID uint, tag *entity.Tag) error

	// Tags returns all tags associated with an account.
	Tags(ctx context.Context, accountID uint) ([]entity.Tag, error)

	// AddZone associates a zone with an account.
	AddZone(ctx context.Context, accountID uint, zone *entity.Zone) error

	// RemoveZone removes a zone association from an account.
	RemoveZone(ctx context.Context, accountID uint, zone *entity.Zone) error

	// Zones returns all zones associated with an account.
	Zones(ctx context.Context, accountID uint) ([]entity.Zone, error)
}
