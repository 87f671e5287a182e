package repo

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by all repos. Callers branch with errors.Is and map
// each kind to its own response; nothing upstream inspects driver errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps gorm errors to the repo sentinels. Unknown errors pass through
// unchanged and are treated as internal faults by the handlers.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
