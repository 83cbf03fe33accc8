package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tracon/scopecmd/server/dao"
)

type CommandsDB struct {
	db *sql.DB
}

func (repo *CommandsDB) init(fk bool) error {
	stmt := `CREATE TABLE IF NOT EXISTS commands (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		session_id TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES sessions(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		line TEXT NOT NULL,
		readback TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *CommandsDB) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()
	_, err = repo.db.ExecContext(ctx, `INSERT INTO commands (id, session_id, line, readback, created) VALUES (?, ?, ?, ?, ?)`,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(c.SessionID),
		c.Line,
		convertToDB_Strings(c.Readback),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}

	c.ID = newUUID
	c.Created = time.Unix(convertToDB_Time(now), 0)
	return c, nil
}

func (repo *CommandsDB) GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]dao.Command, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, line, readback, created FROM commands WHERE session_id = ? ORDER BY seq;`,
		convertToDB_UUID(sessionID),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	all := []dao.Command{}

	for rows.Next() {
		c := dao.Command{
			SessionID: sessionID,
		}
		var id string
		var readback string
		var created int64
		err = rows.Scan(
			&id,
			&c.Line,
			&readback,
			&created,
		)
		if err != nil {
			return nil, wrapDBError(err)
		}

		if err := convertFromDB_UUID(id, &c.ID); err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
		}
		if err := convertFromDB_Strings(readback, &c.Readback); err != nil {
			return all, fmt.Errorf("stored readback for %s is invalid: %w", id, err)
		}
		if err := convertFromDB_Time(created, &c.Created); err != nil {
			return all, fmt.Errorf("stored created time %d is invalid: %w", created, err)
		}

		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *CommandsDB) DeleteBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM commands WHERE session_id = ?`, convertToDB_UUID(sessionID))
	if err != nil {
		return 0, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return 0, wrapDBError(err)
	}
	return int(rowsAff), nil
}

func (repo *CommandsDB) Close() error {
	return nil
}
