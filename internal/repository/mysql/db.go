package mysql

import (
	"errors"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Domain errors surfaced by the repositories. Handlers map these to HTTP
// status codes; anything else is a server fault.
var (
	ErrNotFound = gorm.ErrRecordNotFound

	// ErrSlugConflict means the chosen slug lost a race to a concurrent
	// insert. Retryable: the caller probes again.
	ErrSlugConflict = errors.New("slug already taken")

	// ErrNameTaken reports a duplicate organization name.
	ErrNameTaken = errors.New("name already taken")

	// ErrBannedMember blocks join requests from banned users.
	ErrBannedMember = errors.New("banned from this organization")

	// ErrNotPending is returned when approving or rejecting a request that
	// is no longer pending.
	ErrNotPending = errors.New("membership is not pending")

	ErrBadTargetKind = errors.New("unsupported vote target")
	ErrBadVoteAction = errors.New("unsupported vote action")
)

func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
