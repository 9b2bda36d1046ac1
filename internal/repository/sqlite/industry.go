package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/query"
)

func (r *SQLiteRepo) CreateIndustry(ctx context.Context, i *models.Industry) (int64, error) {
	if i == nil {
		return 0, fmt.Errorf("industry is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO industries (name) VALUES (?)`, i.Name)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetIndustryByID(ctx context.Context, id int64) (*models.Industry, error) {
	return r.scanIndustry(r.conn.QueryRow(ctx,
		`SELECT id, name, is_deleted FROM industries WHERE id = ? AND is_deleted = 0`, id))
}

func (r *SQLiteRepo) UpdateIndustry(ctx context.Context, i *models.Industry) error {
	if i == nil {
		return fmt.Errorf("industry is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE industries SET name = ? WHERE id = ?`, i.Name, i.ID)
	return err
}

func (r *SQLiteRepo) SoftDeleteIndustry(ctx context.Context, id int64) (*models.Industry, error) {
	res, err := r.conn.Exec(ctx, `UPDATE industries SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	// deleting an industry takes its companies with it
	if _, err := r.conn.Exec(ctx, `UPDATE companies SET is_deleted = 1 WHERE industry_id = ?`, id); err != nil {
		return nil, err
	}

	return r.scanIndustry(r.conn.QueryRow(ctx, `SELECT id, name, is_deleted FROM industries WHERE id = ?`, id))
}

func (r *SQLiteRepo) ListIndustries(ctx context.Context) ([]models.Industry, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, is_deleted FROM industries WHERE is_deleted = 0 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Industry{}
	for rows.Next() {
		var i models.Industry
		if err := rows.Scan(&i.ID, &i.Name, &i.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, i)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) SearchIndustries(ctx context.Context, f models.IndustryFilter) ([]models.Industry, int64, error) {
	b := query.NewBuilder("industries").
		Select("id", "name", "is_deleted").
		Where("is_deleted = 0").
		WhereLike("name", f.Name).
		OrderBy("name", f.OrderType).
		Paginate(f.Page, f.Paginate)

	sqlStr, args := b.Query()
	rows, err := r.conn.QueryRows(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Industry{}
	for rows.Next() {
		var i models.Industry
		if err := rows.Scan(&i.ID, &i.Name, &i.IsDeleted); err != nil {
			return nil, 0, err
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	count, err := r.count(ctx, b)
	if err != nil {
		return nil, 0, err
	}

	return out, count, nil
}

func (r *SQLiteRepo) DeleteIndustryByName(ctx context.Context, name string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM industries WHERE name = ?`, name)
	return err
}

func (r *SQLiteRepo) scanIndustry(row *sql.Row) (*models.Industry, error) {
	var i models.Industry
	if err := row.Scan(&i.ID, &i.Name, &i.IsDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &i, nil
}
