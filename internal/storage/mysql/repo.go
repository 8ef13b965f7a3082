package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"trip_budget/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
func nullF64(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertDestination(ctx context.Context, d domain.DestinationRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertDestinationSQL,
		valID(d.ID),
		d.Name,
		d.Country,
		valF64(d.CostIndex),
		valF64(d.Popularity),
		valF64(d.AverageDailyCost),
		d.Currency,
		d.Region,
		valJSON(d.RawJSON),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id == 0 {
		// unchanged duplicate with no auto id; fall back to the caller's id
		id = d.ID
	}
	return id, nil
}

// ReplaceActivities swaps the full activity list of one destination in a
// single transaction.
func (r *Repo) ReplaceActivities(ctx context.Context, destinationID int64, as []domain.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteActivitiesSQL, destinationID); err != nil {
		return fmt.Errorf("delete activities: %w", err)
	}
	if len(as) > 0 {
		values := make([]string, 0, len(as))
		args := make([]any, 0, len(as)*6) // 6 params per row
		for _, a := range as {
			values = append(values, "(?,?,?,?,?,?)")
			args = append(args,
				destinationID,
				valStr(a.SourceID),
				a.Name,
				a.Category,
				a.Cost,
				a.Rating,
			)
		}
		if _, err := tx.ExecContext(ctx, insertActivitiesPrefix+strings.Join(values, ","), args...); err != nil {
			return fmt.Errorf("insert activities: %w", err)
		}
	}
	return tx.Commit()
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) ListDestinations(ctx context.Context) ([]domain.DestinationRecord, error) {
	rows, err := r.db.QueryContext(ctx, listDestinationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DestinationRecord
	for rows.Next() {
		var (
			d                     domain.DestinationRecord
			costIndex, pop, daily sql.NullFloat64
			sourceID, aName, aCat sql.NullString
			aCost, aRating        sql.NullFloat64
		)
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Country,
			&costIndex, &pop, &daily,
			&d.Currency,
			&d.Region,
			&sourceID, &aName, &aCat, &aCost, &aRating,
		); err != nil {
			return nil, err
		}

		// rows arrive grouped by destination
		if n := len(out); n == 0 || out[n-1].ID != d.ID {
			d.CostIndex = nullF64(costIndex)
			d.Popularity = nullF64(pop)
			d.AverageDailyCost = nullF64(daily)
			out = append(out, d)
		}
		if !aCost.Valid {
			continue
		}
		a := domain.Activity{
			DestinationID: d.ID,
			Name:          aName.String,
			Category:      aCat.String,
			Cost:          aCost.Float64,
			Rating:        aRating.Float64,
		}
		if sourceID.Valid {
			s := sourceID.String
			a.SourceID = &s
		}
		last := &out[len(out)-1]
		last.Activities = append(last.Activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
