package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/query"
)

var contactOrderColumns = map[string]string{
	"name":     "name",
	"surname":  "surname",
	"phone":    "phone",
	"mail":     "mail",
	"position": "position",
}

const contactSelect = `SELECT id, name, surname, phone, mail, position, user_id, company_id, is_deleted FROM contact_persons`

func (r *SQLiteRepo) CreateContact(ctx context.Context, c *models.ContactPerson) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("contact person is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO contact_persons (name, surname, phone, mail, position, user_id, company_id) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Surname, c.Phone, c.Mail, c.Position, c.UserID, c.CompanyID)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetContactByID(ctx context.Context, id int64) (*models.ContactPerson, error) {
	return r.scanContact(r.conn.QueryRow(ctx, contactSelect+` WHERE id = ? AND is_deleted = 0`, id))
}

func (r *SQLiteRepo) UpdateContact(ctx context.Context, c *models.ContactPerson) error {
	if c == nil {
		return fmt.Errorf("contact person is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE contact_persons SET name = ?, surname = ?, phone = ?, mail = ?, position = ?, company_id = ? WHERE id = ?`,
		c.Name, c.Surname, c.Phone, c.Mail, c.Position, c.CompanyID, c.ID)
	return err
}

func (r *SQLiteRepo) SoftDeleteContact(ctx context.Context, id int64) (*models.ContactPerson, error) {
	res, err := r.conn.Exec(ctx, `UPDATE contact_persons SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
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

	return r.scanContact(r.conn.QueryRow(ctx, contactSelect+` WHERE id = ?`, id))
}

func (r *SQLiteRepo) ListContacts(ctx context.Context, f models.ContactFilter) ([]models.ContactPerson, int64, error) {
	b := query.NewBuilder("contact_persons").
		Select("id", "name", "surname", "phone", "mail", "position", "user_id", "company_id", "is_deleted").
		Where("is_deleted = 0").
		WhereLikes(map[string]string{
			"name":    f.Name,
			"surname": f.Surname,
			"phone":   f.Phone,
			"mail":    f.Mail,
		})
	if f.UserID > 0 {
		b.Where("user_id = ?", f.UserID)
	}
	if f.CompanyID > 0 {
		b.Where("company_id = ?", f.CompanyID)
	}
	b.OrderBy(orderColumn(contactOrderColumns, f.Order, "name"), f.OrderType).
		Paginate(f.Page, f.Paginate)

	sqlStr, args := b.Query()
	rows, err := r.conn.QueryRows(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.ContactPerson{}
	for rows.Next() {
		var c models.ContactPerson
		if err := rows.Scan(&c.ID, &c.Name, &c.Surname, &c.Phone, &c.Mail, &c.Position, &c.UserID, &c.CompanyID, &c.IsDeleted); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
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

func (r *SQLiteRepo) ListContactsByUser(ctx context.Context, userID int64) ([]models.ContactPerson, error) {
	rows, err := r.conn.QueryRows(ctx, contactSelect+` WHERE user_id = ? AND is_deleted = 0 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ContactPerson{}
	for rows.Next() {
		var c models.ContactPerson
		if err := rows.Scan(&c.ID, &c.Name, &c.Surname, &c.Phone, &c.Mail, &c.Position, &c.UserID, &c.CompanyID, &c.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) DeleteContactByName(ctx context.Context, name, surname string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM contact_persons WHERE name = ? AND surname = ?`, name, surname)
	return err
}

func (r *SQLiteRepo) scanContact(row *sql.Row) (*models.ContactPerson, error) {
	var c models.ContactPerson
	if err := row.Scan(&c.ID, &c.Name, &c.Surname, &c.Phone, &c.Mail, &c.Position, &c.UserID, &c.CompanyID, &c.IsDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &c, nil
}
