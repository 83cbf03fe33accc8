package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tracon/scopecmd/server/dao"
)

type SessionsDB struct {
	db *sql.DB
}

func (repo *SessionsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT NOT NULL PRIMARY KEY,
		scenario TEXT NOT NULL,
		state TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *SessionsDB) Create(ctx context.Context, s dao.Session) (dao.Session, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Session{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.PrepareContext(ctx, `INSERT INTO sessions (id, scenario, state, created, modified) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		s.Scenario,
		convertToDB_Binary(s.State),
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *SessionsDB) GetAll(ctx context.Context) ([]dao.Session, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, scenario, state, created, modified FROM sessions ORDER BY id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Session

	for rows.Next() {
		var s dao.Session
		var id string
		var state string
		var created int64
		var modified int64
		err = rows.Scan(
			&id,
			&s.Scenario,
			&state,
			&created,
			&modified,
		)
		if err != nil {
			return nil, wrapDBError(err)
		}

		if err := scanSession(&s, id, state, created, modified); err != nil {
			return all, err
		}

		all = append(all, s)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *SessionsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	var s dao.Session
	var state string
	var created int64
	var modified int64

	row := repo.db.QueryRowContext(ctx, `SELECT scenario, state, created, modified FROM sessions WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	err := row.Scan(
		&s.Scenario,
		&state,
		&created,
		&modified,
	)
	if err != nil {
		return s, wrapDBError(err)
	}

	if err := scanSession(&s, convertToDB_UUID(id), state, created, modified); err != nil {
		return s, err
	}

	return s, nil
}

func (repo *SessionsDB) Update(ctx context.Context, id uuid.UUID, s dao.Session) (dao.Session, error) {
	// deliberately not updating created
	res, err := repo.db.ExecContext(ctx, `UPDATE sessions SET id=?, scenario=?, state=?, modified=? WHERE id=?;`,
		convertToDB_UUID(s.ID),
		s.Scenario,
		convertToDB_Binary(s.State),
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Session{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, s.ID)
}

func (repo *SessionsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *SessionsDB) Close() error {
	return nil
}

func scanSession(s *dao.Session, id, state string, created, modified int64) error {
	if err := convertFromDB_UUID(id, &s.ID); err != nil {
		return fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_Binary(state, &s.State); err != nil {
		return fmt.Errorf("stored sim state for %s is invalid: %w", id, err)
	}
	if err := convertFromDB_Time(created, &s.Created); err != nil {
		return fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}
	if err := convertFromDB_Time(modified, &s.Modified); err != nil {
		return fmt.Errorf("stored modified time %d is invalid: %w", modified, err)
	}
	return nil
}
