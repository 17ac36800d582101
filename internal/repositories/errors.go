package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"imperialvip/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers translated for admins.
const (
	errColumnCannotBeNull = 1048
	errNoDefaultForField  = 1364
	errDuplicateEntry     = 1062
	errRowIsReferenced    = 1451
	errNoReferencedRow    = 1452
)

var quotedName = regexp.MustCompile(`'([^']+)'`)

// TranslateError turns driver errors into domain errors with a message an
// admin can act on. Unknown errors are wrapped as internal errors.
func TranslateError(resource string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsNotFound(err) || domain.IsValidation(err) || domain.IsConflict(err) || domain.IsInternal(err) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return domain.InternalError{Msg: "veritabanı hatası", Err: err}
	}
	switch myErr.Number {
	case errColumnCannotBeNull, errNoDefaultForField:
		field := "?"
		if m := quotedName.FindStringSubmatch(myErr.Message); len(m) == 2 {
			field = m[1]
		}
		return domain.ValidationError{Field: field, Msg: fmt.Sprintf("'%s' alanı boş bırakılamaz", field), Err: err}
	case errDuplicateEntry:
		return domain.ConflictError{Resource: resource, Msg: "duplicate value", Err: err}
	case errRowIsReferenced:
		return domain.ConflictError{Resource: resource, Msg: "kayıt başka kayıtlar tarafından kullanılıyor", Err: err}
	case errNoReferencedRow:
		return domain.ConflictError{Resource: resource, Msg: "ilişkili kayıt bulunamadı", Err: err}
	}
	return domain.InternalError{Msg: "veritabanı hatası", Err: err}
}
