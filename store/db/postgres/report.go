package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/coffeops/genkabot/store"
)

func (d *DB) CreateReport(ctx context.Context, create *store.Report) (*store.Report, error) {
	fields := []string{"uid", "user_id", "username", "full_name", "site_name", "photos"}
	placeholderValues := []any{
		create.UID, create.UserID, create.Username, create.FullName, create.SiteName, joinRefs(create.EvidenceRefs),
	}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO report (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create report")
	}

	return create, nil
}

func (d *DB) ListReports(ctx context.Context, find *store.FindReport) ([]*store.Report, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "report.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "report.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "report.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.SiteName; v != nil {
		where, args = append(where, "report.site_name = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, user_id, username, full_name, site_name, photos, created_ts
		FROM report
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY report.created_ts DESC, report.id DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query reports")
	}
	defer rows.Close()

	list := make([]*store.Report, 0)
	for rows.Next() {
		var report store.Report
		var username sql.NullString
		var photos string

		if err := rows.Scan(
			&report.ID,
			&report.UID,
			&report.UserID,
			&username,
			&report.FullName,
			&report.SiteName,
			&photos,
			&report.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan report")
		}

		if username.Valid {
			report.Username = &username.String
		}
		report.EvidenceRefs = splitRefs(photos)
		list = append(list, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate reports")
	}

	return list, nil
}
