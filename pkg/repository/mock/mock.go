package mock

import (
	"context"

	"github.com/webert/crm/internal/models"
)

// Test helpers and mocks
type Mocks struct {
	Users      *UserRepo
	Roles      *RoleRepo
	Companies  *CompanyRepo
	Industries *IndustryRepo
	Contacts   *ContactRepo
	Notes      *NoteRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:      &UserRepo{},
		Roles:      &RoleRepo{},
		Companies:  &CompanyRepo{},
		Industries: &IndustryRepo{},
		Contacts:   &ContactRepo{},
		Notes:      &NoteRepo{},
	}
}

type UserRepo struct {
	Stored     []*models.User
	Roles      map[int64]models.Role
	ListItems  []models.UserListItem
	LastFilter models.UserFilter
	Err        error
	nextID     int64
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *u
	cp.ID = m.nextID
	m.Stored = append(m.Stored, &cp)
	return cp.ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Stored {
		if u.ID == id && !u.IsDeleted {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error) {
	u, err := m.GetUserByID(ctx, id)
	if u == nil || err != nil {
		return nil, err
	}
	return &models.UserDetail{
		ID:          u.ID,
		Name:        u.Name,
		Surname:     u.Surname,
		DateOfBirth: u.DateOfBirth,
		Login:       u.Login,
		Role:        m.Roles[u.RoleID],
	}, nil
}

func (m *UserRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Stored {
		if u.Login == login && !u.IsDeleted {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	for i, s := range m.Stored {
		if s.ID == u.ID {
			cp := *u
			m.Stored[i] = &cp
		}
	}
	return nil
}

func (m *UserRepo) SoftDeleteUser(ctx context.Context, id int64) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Stored {
		if u.ID == id && !u.IsDeleted {
			u.IsDeleted = true
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) ListUsers(ctx context.Context, f models.UserFilter) ([]models.UserListItem, int64, error) {
	m.LastFilter = f
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.ListItems, int64(len(m.ListItems)), nil
}

func (m *UserRepo) DeleteUserByLogin(ctx context.Context, login string) error { return m.Err }

type RoleRepo struct {
	Stored []models.Role
	Err    error
}

func (m *RoleRepo) CreateRole(ctx context.Context, r *models.Role) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	id := int64(len(m.Stored) + 1)
	cp := *r
	cp.ID = id
	m.Stored = append(m.Stored, cp)
	return id, nil
}

func (m *RoleRepo) GetRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.Stored {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *RoleRepo) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.Stored {
		if r.Name == name {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *RoleRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	return m.Stored, m.Err
}

func (m *RoleRepo) DeleteRoleByName(ctx context.Context, name string) error { return m.Err }

type CompanyRepo struct {
	Stored     []*models.Company
	Details    []models.CompanyDetail
	LastFilter models.CompanyFilter
	Err        error
	nextID     int64
}

func (m *CompanyRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.Stored = append(m.Stored, &cp)
	return cp.ID, nil
}

func (m *CompanyRepo) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id && !c.IsDeleted {
			return c, nil
		}
	}
	return nil, nil
}

func (m *CompanyRepo) GetCompanyDetail(ctx context.Context, id int64) (*models.CompanyDetail, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, d := range m.Details {
		if d.ID == id {
			return &d, nil
		}
	}
	c, _ := m.GetCompanyByID(ctx, id)
	if c == nil {
		return nil, nil
	}
	return &models.CompanyDetail{
		ID:      c.ID,
		Name:    c.Name,
		NIP:     c.NIP,
		Address: c.Address,
		City:    c.City,
	}, nil
}

func (m *CompanyRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	if m.Err != nil {
		return m.Err
	}
	for i, s := range m.Stored {
		if s.ID == c.ID {
			cp := *c
			m.Stored[i] = &cp
		}
	}
	return nil
}

func (m *CompanyRepo) SoftDeleteCompany(ctx context.Context, id int64) (*models.Company, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id && !c.IsDeleted {
			c.IsDeleted = true
			return c, nil
		}
	}
	return nil, nil
}

func (m *CompanyRepo) ListCompanies(ctx context.Context, f models.CompanyFilter) ([]models.CompanyDetail, int64, error) {
	m.LastFilter = f
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Details, int64(len(m.Details)), nil
}

func (m *CompanyRepo) ListCompaniesByUser(ctx context.Context, userID int64) ([]models.Company, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Company
	for _, c := range m.Stored {
		if c.UserID == userID && !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *CompanyRepo) DeleteCompanyByNIP(ctx context.Context, nip string) error { return m.Err }

type IndustryRepo struct {
	Stored     []*models.Industry
	LastFilter models.IndustryFilter
	Err        error
	nextID     int64
}

func (m *IndustryRepo) CreateIndustry(ctx context.Context, i *models.Industry) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *i
	cp.ID = m.nextID
	m.Stored = append(m.Stored, &cp)
	return cp.ID, nil
}

func (m *IndustryRepo) GetIndustryByID(ctx context.Context, id int64) (*models.Industry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, i := range m.Stored {
		if i.ID == id && !i.IsDeleted {
			return i, nil
		}
	}
	return nil, nil
}

func (m *IndustryRepo) UpdateIndustry(ctx context.Context, i *models.Industry) error {
	if m.Err != nil {
		return m.Err
	}
	for n, s := range m.Stored {
		if s.ID == i.ID {
			cp := *i
			m.Stored[n] = &cp
		}
	}
	return nil
}

func (m *IndustryRepo) SoftDeleteIndustry(ctx context.Context, id int64) (*models.Industry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, i := range m.Stored {
		if i.ID == id && !i.IsDeleted {
			i.IsDeleted = true
			return i, nil
		}
	}
	return nil, nil
}

func (m *IndustryRepo) ListIndustries(ctx context.Context) ([]models.Industry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Industry
	for _, i := range m.Stored {
		if !i.IsDeleted {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *IndustryRepo) SearchIndustries(ctx context.Context, f models.IndustryFilter) ([]models.Industry, int64, error) {
	m.LastFilter = f
	items, err := m.ListIndustries(ctx)
	return items, int64(len(items)), err
}

func (m *IndustryRepo) DeleteIndustryByName(ctx context.Context, name string) error { return m.Err }

type ContactRepo struct {
	Stored     []*models.ContactPerson
	LastFilter models.ContactFilter
	Err        error
	nextID     int64
}

func (m *ContactRepo) CreateContact(ctx context.Context, c *models.ContactPerson) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.Stored = append(m.Stored, &cp)
	return cp.ID, nil
}

func (m *ContactRepo) GetContactByID(ctx context.Context, id int64) (*models.ContactPerson, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id && !c.IsDeleted {
			return c, nil
		}
	}
	return nil, nil
}

func (m *ContactRepo) UpdateContact(ctx context.Context, c *models.ContactPerson) error {
	if m.Err != nil {
		return m.Err
	}
	for i, s := range m.Stored {
		if s.ID == c.ID {
			cp := *c
			m.Stored[i] = &cp
		}
	}
	return nil
}

func (m *ContactRepo) SoftDeleteContact(ctx context.Context, id int64) (*models.ContactPerson, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Stored {
		if c.ID == id && !c.IsDeleted {
			c.IsDeleted = true
			return c, nil
		}
	}
	return nil, nil
}

func (m *ContactRepo) ListContacts(ctx context.Context, f models.ContactFilter) ([]models.ContactPerson, int64, error) {
	m.LastFilter = f
	if m.Err != nil {
		return nil, 0, m.Err
	}
	var out []models.ContactPerson
	for _, c := range m.Stored {
		if !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *ContactRepo) ListContactsByUser(ctx context.Context, userID int64) ([]models.ContactPerson, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.ContactPerson
	for _, c := range m.Stored {
		if c.UserID == userID && !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *ContactRepo) DeleteContactByName(ctx context.Context, name, surname string) error {
	return m.Err
}

type NoteRepo struct {
	Stored     []*models.Note
	ListItems  []models.NoteListItem
	LastFilter models.NoteFilter
	Err        error
	nextID     int64
}

func (m *NoteRepo) CreateNote(ctx context.Context, n *models.Note) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *n
	cp.ID = m.nextID
	m.Stored = append(m.Stored, &cp)
	return cp.ID, nil
}

func (m *NoteRepo) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, n := range m.Stored {
		if n.ID == id && !n.IsDeleted {
			return n, nil
		}
	}
	return nil, nil
}

func (m *NoteRepo) UpdateNote(ctx context.Context, n *models.Note) error {
	if m.Err != nil {
		return m.Err
	}
	for i, s := range m.Stored {
		if s.ID == n.ID {
			cp := *n
			m.Stored[i] = &cp
		}
	}
	return nil
}

func (m *NoteRepo) SoftDeleteNote(ctx context.Context, id int64) (*models.Note, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, n := range m.Stored {
		if n.ID == id && !n.IsDeleted {
			n.IsDeleted = true
			return n, nil
		}
	}
	return nil, nil
}

func (m *NoteRepo) ListNotes(ctx context.Context, f models.NoteFilter) ([]models.NoteListItem, int64, error) {
	m.LastFilter = f
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.ListItems, int64(len(m.ListItems)), nil
}

func (m *NoteRepo) ListNotesByUser(ctx context.Context, userID int64) ([]models.Note, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Note
	for _, n := range m.Stored {
		if n.UserID == userID && !n.IsDeleted {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *NoteRepo) DeleteNoteByContent(ctx context.Context, content string) error { return m.Err }
