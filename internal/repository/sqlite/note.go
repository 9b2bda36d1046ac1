package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/query"
)

var noteOrderColumns = map[string]string{
	"content":   "n.content",
	"createdAt": "n.created_at",
}

const noteSelect = `SELECT id, content, user_id, company_id, created_at, is_deleted FROM notes`

func (r *SQLiteRepo) CreateNote(ctx context.Context, n *models.Note) (int64, error) {
	if n == nil {
		return 0, fmt.Errorf("note is nil")
	}

	if n.CreatedAt == 0 {
		n.CreatedAt = now()
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO notes (content, user_id, company_id, created_at) VALUES (?, ?, ?, ?)`,
		n.Content, n.UserID, n.CompanyID, n.CreatedAt)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	return r.scanNote(r.conn.QueryRow(ctx, noteSelect+` WHERE id = ? AND is_deleted = 0`, id))
}

func (r *SQLiteRepo) UpdateNote(ctx context.Context, n *models.Note) error {
	if n == nil {
		return fmt.Errorf("note is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE notes SET content = ?, company_id = ? WHERE id = ?`,
		n.Content, n.CompanyID, n.ID)
	return err
}

func (r *SQLiteRepo) SoftDeleteNote(ctx context.Context, id int64) (*models.Note, error) {
	res, err := r.conn.Exec(ctx, `UPDATE notes SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
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

	return r.scanNote(r.conn.QueryRow(ctx, noteSelect+` WHERE id = ?`, id))
}

func (r *SQLiteRepo) ListNotes(ctx context.Context, f models.NoteFilter) ([]models.NoteListItem, int64, error) {
	b := query.NewBuilder("notes n").
		Select("n.id", "n.content", "n.created_at", "u.id", "u.name", "u.surname").
		Join("users u", "u.id = n.user_id").
		Where("n.is_deleted = 0").
		WhereLike("n.content", f.Content)
	if f.UserID > 0 {
		b.Where("u.id = ?", f.UserID)
	}
	if f.CompanyID > 0 {
		b.Where("n.company_id = ?", f.CompanyID)
	}
	b.OrderBy(orderColumn(noteOrderColumns, f.Order, "n.created_at"), f.OrderType).
		Paginate(f.Page, f.Paginate)

	sqlStr, args := b.Query()
	rows, err := r.conn.QueryRows(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.NoteListItem{}
	for rows.Next() {
		var item models.NoteListItem
		if err := rows.Scan(&item.ID, &item.Content, &item.CreatedAt, &item.User.ID, &item.User.Name, &item.User.Surname); err != nil {
			return nil, 0, err
		}
		out = append(out, item)
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

func (r *SQLiteRepo) ListNotesByUser(ctx context.Context, userID int64) ([]models.Note, error) {
	rows, err := r.conn.QueryRows(ctx, noteSelect+` WHERE user_id = ? AND is_deleted = 0 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.UserID, &n.CompanyID, &n.CreatedAt, &n.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) DeleteNoteByContent(ctx context.Context, content string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM notes WHERE content = ?`, content)
	return err
}

func (r *SQLiteRepo) scanNote(row *sql.Row) (*models.Note, error) {
	var n models.Note
	if err := row.Scan(&n.ID, &n.Content, &n.UserID, &n.CompanyID, &n.CreatedAt, &n.IsDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &n, nil
}
