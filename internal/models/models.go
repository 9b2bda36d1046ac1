package models

// Role is a named permission tier attached to users.
type Role struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Number int64  `json:"number"`
}

// Fixed role names seeded at bootstrap.
const (
	RoleAdministrator = "Administrator"
	RolePracownik     = "Pracownik"
	RoleModerator     = "Moderator"
)

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"`
	RoleID       int64  `json:"role"`
	IsDeleted    bool   `json:"isDeleted"`
}

// UserDetail is a user with its role populated, as returned by get-by-id
// and the profile endpoint. The password hash is never serialized.
type UserDetail struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Login       string `json:"login"`
	Role        Role   `json:"role"`
	IsDeleted   bool   `json:"isDeleted"`
}

// UserRef is the projection of a user embedded in list rows of other resources.
type UserRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type RoleRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserListItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	DateOfBirth string  `json:"dateOfBirth,omitempty"`
	Login       string  `json:"login"`
	Role        RoleRef `json:"role"`
}

type Industry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"isDeleted"`
}

type IndustryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	NIP        string `json:"nip"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city"`
	UserID     int64  `json:"user"`
	IndustryID int64  `json:"industry"`
	IsDeleted  bool   `json:"isDeleted"`
}

// CompanyDetail is a company with its owner and industry populated.
type CompanyDetail struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	NIP       string      `json:"nip"`
	Address   string      `json:"address,omitempty"`
	City      string      `json:"city"`
	User      UserRef     `json:"user"`
	Industry  IndustryRef `json:"industry"`
	IsDeleted bool        `json:"isDeleted"`
}

type ContactPerson struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Phone     string `json:"phone,omitempty"`
	Mail      string `json:"mail,omitempty"`
	Position  string `json:"position,omitempty"`
	UserID    int64  `json:"user"`
	CompanyID int64  `json:"company"`
	IsDeleted bool   `json:"isDeleted"`
}

type Note struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	UserID    int64  `json:"user"`
	CompanyID int64  `json:"company"`
	CreatedAt int64  `json:"createdAt"`
	IsDeleted bool   `json:"isDeleted"`
}

// NoteListItem is the note projection returned by list endpoints, with the
// author populated.
type NoteListItem struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	CreatedAt int64   `json:"createdAt"`
	User      UserRef `json:"user"`
}

// ListParams is the pagination and ordering envelope shared by all filtered
// list endpoints. Page is 1-based; a zero Paginate means no limit.
type ListParams struct {
	Page      int    `json:"page"`
	Paginate  int    `json:"paginate"`
	Order     string `json:"order"`
	OrderType string `json:"orderType"`
}

type UserFilter struct {
	Name        string
	Surname     string
	DateOfBirth string
	Login       string
	RoleID      int64
	ListParams
}

type CompanyFilter struct {
	Name       string
	NIP        string
	Address    string
	City       string
	IndustryID int64
	UserID     int64
	ListParams
}

type ContactFilter struct {
	Name      string
	Surname   string
	Phone     string
	Mail      string
	UserID    int64
	CompanyID int64
	ListParams
}

type NoteFilter struct {
	Content   string
	UserID    int64
	CompanyID int64
	ListParams
}

type IndustryFilter struct {
	Name string
	ListParams
}
