package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/query"
)

// userOrderColumns maps request order fields to columns; anything else falls
// back to the default sort by name.
var userOrderColumns = map[string]string{
	"name":        "u.name",
	"surname":     "u.surname",
	"dateOfBirth": "u.date_of_birth",
	"login":       "u.login",
	"role":        "r.name",
}

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO users (name, surname, date_of_birth, login, password_hash, role_id) VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, u.Surname, u.DateOfBirth, u.Login, u.PasswordHash, u.RoleID)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx,
		`SELECT id, name, surname, date_of_birth, login, password_hash, role_id, is_deleted FROM users WHERE id = ? AND is_deleted = 0`, id))
}

func (r *SQLiteRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx,
		`SELECT id, name, surname, date_of_birth, login, password_hash, role_id, is_deleted FROM users WHERE login = ? AND is_deleted = 0`, login))
}

func (r *SQLiteRepo) GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT u.id, u.name, u.surname, u.date_of_birth, u.login, u.is_deleted, r.id, r.name, r.number
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.id = ? AND u.is_deleted = 0`, id)

	var d models.UserDetail
	if err := row.Scan(&d.ID, &d.Name, &d.Surname, &d.DateOfBirth, &d.Login, &d.IsDeleted,
		&d.Role.ID, &d.Role.Name, &d.Role.Number); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &d, nil
}

func (r *SQLiteRepo) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE users SET name = ?, surname = ?, date_of_birth = ?, role_id = ? WHERE id = ?`,
		u.Name, u.Surname, u.DateOfBirth, u.RoleID, u.ID)
	return err
}

func (r *SQLiteRepo) SoftDeleteUser(ctx context.Context, id int64) (*models.User, error) {
	res, err := r.conn.Exec(ctx, `UPDATE users SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
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

	return r.scanUser(r.conn.QueryRow(ctx,
		`SELECT id, name, surname, date_of_birth, login, password_hash, role_id, is_deleted FROM users WHERE id = ?`, id))
}

func (r *SQLiteRepo) ListUsers(ctx context.Context, f models.UserFilter) ([]models.UserListItem, int64, error) {
	b := query.NewBuilder("users u").
		Select("u.id", "u.name", "u.surname", "u.date_of_birth", "u.login", "r.id", "r.name").
		Join("roles r", "r.id = u.role_id").
		Where("u.is_deleted = 0").
		WhereLikes(map[string]string{
			"u.name":          f.Name,
			"u.surname":       f.Surname,
			"u.date_of_birth": f.DateOfBirth,
			"u.login":         f.Login,
		})
	if f.RoleID > 0 {
		b.Where("r.id = ?", f.RoleID)
	}
	b.OrderBy(orderColumn(userOrderColumns, f.Order, "u.name"), f.OrderType).
		Paginate(f.Page, f.Paginate)

	sqlStr, args := b.Query()
	rows, err := r.conn.QueryRows(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.UserListItem{}
	for rows.Next() {
		var u models.UserListItem
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.DateOfBirth, &u.Login, &u.Role.ID, &u.Role.Name); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
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

func (r *SQLiteRepo) DeleteUserByLogin(ctx context.Context, login string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM users WHERE login = ?`, login)
	return err
}

func (r *SQLiteRepo) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Surname, &u.DateOfBirth, &u.Login, &u.PasswordHash, &u.RoleID, &u.IsDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

// count runs the builder's count query, which shares the list query's joins
// and filters but ignores its pagination window.
func (r *SQLiteRepo) count(ctx context.Context, b *query.Builder) (int64, error) {
	sqlStr, args := b.Count()
	var n int64
	if err := r.conn.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func orderColumn(columns map[string]string, field, fallback string) string {
	if c, ok := columns[field]; ok {
		return c
	}
	return fallback
}
