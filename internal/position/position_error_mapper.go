package position

import (
	"errors"
	"strings"

	positionerrors "github.com/Roma1011/EmployeeManagmentSys/internal/position/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return positionerrors.ErrPositionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" {
			switch pgErr.ConstraintName {
			case "fk_positions_parent":
				// Insert/update menunjuk parent yang tidak ada, atau delete
				// parent yang masih punya anak — dua-duanya lewat constraint ini.
				return positionerrors.ErrPositionInUse
			case "fk_employees_position":
				return positionerrors.ErrPositionInUse
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return positionerrors.ErrPositionInUse
	}

	return err
}
