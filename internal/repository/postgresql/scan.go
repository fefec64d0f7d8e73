package postgresql

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error code for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// dateArg encodes a calendar date for a DATE parameter.
func dateArg(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func nullDateArg(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := dateArg(*d)
	return &t
}

// dateCol scans a DATE column into a civil.Date.
type dateCol struct {
	dst *civil.Date
}

func (c *dateCol) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c.dst = civil.DateOf(v)
		return nil
	case string:
		d, err := civil.ParseDate(v)
		if err != nil {
			return err
		}
		*c.dst = d
		return nil
	}
	return fmt.Errorf("cannot scan %T into civil.Date", src)
}

// nullDateCol scans a nullable DATE column.
type nullDateCol struct {
	dst **civil.Date
}

func (c *nullDateCol) Scan(src any) error {
	if src == nil {
		*c.dst = nil
		return nil
	}
	var d civil.Date
	if err := (&dateCol{dst: &d}).Scan(src); err != nil {
		return err
	}
	*c.dst = &d
	return nil
}

// clockCol scans an "HH:MM" TEXT column into a workday.Clock.
type clockCol struct {
	dst *workday.Clock
}

func (c *clockCol) Scan(src any) error {
	s, ok := src.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into workday.Clock", src)
	}
	clock, err := workday.ParseClock(s)
	if err != nil {
		return err
	}
	*c.dst = clock
	return nil
}
