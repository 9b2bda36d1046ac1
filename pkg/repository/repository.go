package repository

import (
	"context"

	"github.com/webert/crm/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Get and list methods exclude soft-deleted records; a missing record is
// reported as (nil, nil). Soft-delete methods return the updated record.
// The hard-delete methods exist for the seeder only, which removes its own
// demo rows by natural key before re-inserting them.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	SoftDeleteUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, f models.UserFilter) ([]models.UserListItem, int64, error)
	DeleteUserByLogin(ctx context.Context, login string) error
}

type RoleRepo interface {
	CreateRole(ctx context.Context, r *models.Role) (int64, error)
	GetRoleByID(ctx context.Context, id int64) (*models.Role, error)
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	DeleteRoleByName(ctx context.Context, name string) error
}

type CompanyRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (int64, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.Company, error)
	GetCompanyDetail(ctx context.Context, id int64) (*models.CompanyDetail, error)
	UpdateCompany(ctx context.Context, c *models.Company) error
	SoftDeleteCompany(ctx context.Context, id int64) (*models.Company, error)
	ListCompanies(ctx context.Context, f models.CompanyFilter) ([]models.CompanyDetail, int64, error)
	ListCompaniesByUser(ctx context.Context, userID int64) ([]models.Company, error)
	DeleteCompanyByNIP(ctx context.Context, nip string) error
}

type IndustryRepo interface {
	CreateIndustry(ctx context.Context, i *models.Industry) (int64, error)
	GetIndustryByID(ctx context.Context, id int64) (*models.Industry, error)
	UpdateIndustry(ctx context.Context, i *models.Industry) error
	// SoftDeleteIndustry also soft-deletes every company referencing the
	// industry.
	SoftDeleteIndustry(ctx context.Context, id int64) (*models.Industry, error)
	ListIndustries(ctx context.Context) ([]models.Industry, error)
	SearchIndustries(ctx context.Context, f models.IndustryFilter) ([]models.Industry, int64, error)
	DeleteIndustryByName(ctx context.Context, name string) error
}

type ContactRepo interface {
	CreateContact(ctx context.Context, c *models.ContactPerson) (int64, error)
	GetContactByID(ctx context.Context, id int64) (*models.ContactPerson, error)
	UpdateContact(ctx context.Context, c *models.ContactPerson) error
	SoftDeleteContact(ctx context.Context, id int64) (*models.ContactPerson, error)
	ListContacts(ctx context.Context, f models.ContactFilter) ([]models.ContactPerson, int64, error)
	ListContactsByUser(ctx context.Context, userID int64) ([]models.ContactPerson, error)
	DeleteContactByName(ctx context.Context, name, surname string) error
}

type NoteRepo interface {
	CreateNote(ctx context.Context, n *models.Note) (int64, error)
	GetNoteByID(ctx context.Context, id int64) (*models.Note, error)
	UpdateNote(ctx context.Context, n *models.Note) error
	SoftDeleteNote(ctx context.Context, id int64) (*models.Note, error)
	ListNotes(ctx context.Context, f models.NoteFilter) ([]models.NoteListItem, int64, error)
	ListNotesByUser(ctx context.Context, userID int64) ([]models.Note, error)
	DeleteNoteByContent(ctx context.Context, content string) error
}
