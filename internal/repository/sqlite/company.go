package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/query"
)

var companyOrderColumns = map[string]string{
	"name":    "c.name",
	"nip":     "c.nip",
	"address": "c.address",
	"city":    "c.city",
}

const companyDetailSelect = `SELECT c.id, c.name, c.nip, c.address, c.city, c.is_deleted,
	u.id, u.name, u.surname, i.id, i.name
	FROM companies c
	JOIN users u ON u.id = c.user_id
	JOIN industries i ON i.id = c.industry_id`

func (r *SQLiteRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("company is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO companies (name, nip, address, city, user_id, industry_id) VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.NIP, c.Address, c.City, c.UserID, c.IndustryID)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	return r.scanCompany(r.conn.QueryRow(ctx,
		`SELECT id, name, nip, address, city, user_id, industry_id, is_deleted FROM companies WHERE id = ? AND is_deleted = 0`, id))
}

func (r *SQLiteRepo) GetCompanyDetail(ctx context.Context, id int64) (*models.CompanyDetail, error) {
	row := r.conn.QueryRow(ctx, companyDetailSelect+` WHERE c.id = ? AND c.is_deleted = 0`, id)

	var d models.CompanyDetail
	if err := row.Scan(&d.ID, &d.Name, &d.NIP, &d.Address, &d.City, &d.IsDeleted,
		&d.User.ID, &d.User.Name, &d.User.Surname, &d.Industry.ID, &d.Industry.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &d, nil
}

func (r *SQLiteRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	if c == nil {
		return fmt.Errorf("company is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE companies SET name = ?, nip = ?, address = ?, city = ?, user_id = ?, industry_id = ? WHERE id = ?`,
		c.Name, c.NIP, c.Address, c.City, c.UserID, c.IndustryID, c.ID)
	return err
}

func (r *SQLiteRepo) SoftDeleteCompany(ctx context.Context, id int64) (*models.Company, error) {
	res, err := r.conn.Exec(ctx, `UPDATE companies SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
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

	return r.scanCompany(r.conn.QueryRow(ctx,
		`SELECT id, name, nip, address, city, user_id, industry_id, is_deleted FROM companies WHERE id = ?`, id))
}

func (r *SQLiteRepo) ListCompanies(ctx context.Context, f models.CompanyFilter) ([]models.CompanyDetail, int64, error) {
	b := query.NewBuilder("companies c").
		Select("c.id", "c.name", "c.nip", "c.address", "c.city", "c.is_deleted",
			"u.id", "u.name", "u.surname", "i.id", "i.name").
		Join("users u", "u.id = c.user_id").
		Join("industries i", "i.id = c.industry_id").
		Where("c.is_deleted = 0").
		WhereLikes(map[string]string{
			"c.name":    f.Name,
			"c.nip":     f.NIP,
			"c.address": f.Address,
			"c.city":    f.City,
		})
	if f.IndustryID > 0 {
		b.Where("i.id = ?", f.IndustryID)
	}
	if f.UserID > 0 {
		b.Where("u.id = ?", f.UserID)
	}
	b.OrderBy(orderColumn(companyOrderColumns, f.Order, "c.name"), f.OrderType).
		Paginate(f.Page, f.Paginate)

	sqlStr, args := b.Query()
	rows, err := r.conn.QueryRows(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.CompanyDetail{}
	for rows.Next() {
		var d models.CompanyDetail
		if err := rows.Scan(&d.ID, &d.Name, &d.NIP, &d.Address, &d.City, &d.IsDeleted,
			&d.User.ID, &d.User.Name, &d.User.Surname, &d.Industry.ID, &d.Industry.Name); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
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

func (r *SQLiteRepo) ListCompaniesByUser(ctx context.Context, userID int64) ([]models.Company, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, name, nip, address, city, user_id, industry_id, is_deleted FROM companies WHERE user_id = ? AND is_deleted = 0 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.NIP, &c.Address, &c.City, &c.UserID, &c.IndustryID, &c.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) DeleteCompanyByNIP(ctx context.Context, nip string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM companies WHERE nip = ?`, nip)
	return err
}

func (r *SQLiteRepo) scanCompany(row *sql.Row) (*models.Company, error) {
	var c models.Company
	if err := row.Scan(&c.ID, &c.Name, &c.NIP, &c.Address, &c.City, &c.UserID, &c.IndustryID, &c.IsDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &c, nil
}
