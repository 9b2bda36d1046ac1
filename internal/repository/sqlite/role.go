package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/webert/crm/internal/models"
)

func (r *SQLiteRepo) CreateRole(ctx context.Context, role *models.Role) (int64, error) {
	if role == nil {
		return 0, fmt.Errorf("role is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO roles (name, number) VALUES (?, ?)`, role.Name, role.Number)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	return r.scanRole(r.conn.QueryRow(ctx, `SELECT id, name, number FROM roles WHERE id = ?`, id))
}

func (r *SQLiteRepo) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return r.scanRole(r.conn.QueryRow(ctx, `SELECT id, name, number FROM roles WHERE name = ?`, name))
}

func (r *SQLiteRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, number FROM roles ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Role{}
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Number); err != nil {
			return nil, err
		}
		out = append(out, role)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) DeleteRoleByName(ctx context.Context, name string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM roles WHERE name = ?`, name)
	return err
}

func (r *SQLiteRepo) scanRole(row *sql.Row) (*models.Role, error) {
	var role models.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Number); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &role, nil
}
