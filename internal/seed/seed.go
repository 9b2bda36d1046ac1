// Package seed loads a demo data set so a fresh install has something to
// show. Running it twice is safe: demo rows are removed by natural key and
// inserted again.
package seed

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/repository/sqlite"
	"golang.org/x/crypto/bcrypt"
)

type role struct {
	name   string
	number int64
}

var roles = []role{
	{models.RoleAdministrator, 1},
	{models.RolePracownik, 2},
	{models.RoleModerator, 3},
}

var industryNames = []string{
	"Informatyka",
	"Budownictwo",
	"Motoryzacja",
	"Lotnictwo",
	"Gastronomia",
}

type demoUser struct {
	login       string
	password    string
	name        string
	surname     string
	dateOfBirth string
	role        string
}

var demoUsers = []demoUser{
	{"nBujny", "password123", "Norbert", "Bujny", "2000-03-20", models.RolePracownik},
	{"amWesolowska", "password123", "Anna", "Wesołowska", "1978-11-02", models.RoleAdministrator},
}

type demoCompany struct {
	name     string
	nip      string
	address  string
	city     string
	owner    string
	industry string
}

var demoCompanies = []demoCompany{
	{"Fanex", "1111111111", "Bolesława Chrobrego 3", "Bydgoszcz", "nBujny", "Gastronomia"},
	{"Lot", "2222222222", "Lipcowa 28", "Warszawa", "nBujny", "Lotnictwo"},
	{"Opel", "3333333333", "Krańcowa 59", "Łódź", "amWesolowska", "Motoryzacja"},
}

type demoContact struct {
	name     string
	surname  string
	phone    string
	mail     string
	position string
	owner    string
	company  string
}

var demoContacts = []demoContact{
	{"Jan", "Kowalski", "600700800", "jan.kowalski@fanex.pl", "kierownik sprzedaży", "nBujny", "Fanex"},
	{"Piotr", "Zieliński", "", "piotr.zielinski@lot.pl", "specjalista ds. floty", "nBujny", "Lot"},
	{"Maria", "Nowak", "512613714", "", "księgowa", "amWesolowska", "Opel"},
}

type demoNote struct {
	content string
	owner   string
	company string
}

var demoNotes = []demoNote{
	{"Pierwszy kontakt telefoniczny, zainteresowani ofertą.", "nBujny", "Fanex"},
	{"Umowa wysłana do podpisu.", "nBujny", "Fanex"},
	{"Spotkanie zaplanowane na przyszły tydzień.", "amWesolowska", "Opel"},
}

// Run loads the demo data set into the store.
func Run(ctx context.Context, repo *sqlite.SQLiteRepo, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	roleIDs := make(map[string]int64, len(roles))
	for _, r := range roles {
		existing, err := repo.GetRoleByName(ctx, r.name)
		if err != nil {
			return fmt.Errorf("look up role %s: %w", r.name, err)
		}
		if existing != nil {
			roleIDs[r.name] = existing.ID
			continue
		}
		id, err := repo.CreateRole(ctx, &models.Role{Name: r.name, Number: r.number})
		if err != nil {
			return fmt.Errorf("create role %s: %w", r.name, err)
		}
		roleIDs[r.name] = id
	}

	// Demo rows go out before they come back in, children first so no
	// orphaned references survive a partial previous run.
	for _, n := range demoNotes {
		if err := repo.DeleteNoteByContent(ctx, n.content); err != nil {
			return fmt.Errorf("clear note: %w", err)
		}
	}
	for _, c := range demoContacts {
		if err := repo.DeleteContactByName(ctx, c.name, c.surname); err != nil {
			return fmt.Errorf("clear contact %s %s: %w", c.name, c.surname, err)
		}
	}
	for _, c := range demoCompanies {
		if err := repo.DeleteCompanyByNIP(ctx, c.nip); err != nil {
			return fmt.Errorf("clear company %s: %w", c.name, err)
		}
	}
	for _, u := range demoUsers {
		if err := repo.DeleteUserByLogin(ctx, u.login); err != nil {
			return fmt.Errorf("clear user %s: %w", u.login, err)
		}
	}
	for _, name := range industryNames {
		if err := repo.DeleteIndustryByName(ctx, name); err != nil {
			return fmt.Errorf("clear industry %s: %w", name, err)
		}
	}

	industryIDs := make(map[string]int64, len(industryNames))
	for _, name := range industryNames {
		id, err := repo.CreateIndustry(ctx, &models.Industry{Name: name})
		if err != nil {
			return fmt.Errorf("create industry %s: %w", name, err)
		}
		industryIDs[name] = id
	}

	userIDs := make(map[string]int64, len(demoUsers))
	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.login, err)
		}
		id, err := repo.CreateUser(ctx, &models.User{
			Name:         u.name,
			Surname:      u.surname,
			DateOfBirth:  u.dateOfBirth,
			Login:        u.login,
			PasswordHash: string(hash),
			RoleID:       roleIDs[u.role],
		})
		if err != nil {
			return fmt.Errorf("create user %s: %w", u.login, err)
		}
		userIDs[u.login] = id
	}

	companyIDs := make(map[string]int64, len(demoCompanies))
	for _, c := range demoCompanies {
		id, err := repo.CreateCompany(ctx, &models.Company{
			Name:       c.name,
			NIP:        c.nip,
			Address:    c.address,
			City:       c.city,
			UserID:     userIDs[c.owner],
			IndustryID: industryIDs[c.industry],
		})
		if err != nil {
			return fmt.Errorf("create company %s: %w", c.name, err)
		}
		companyIDs[c.name] = id
	}

	for _, c := range demoContacts {
		if _, err := repo.CreateContact(ctx, &models.ContactPerson{
			Name:      c.name,
			Surname:   c.surname,
			Phone:     c.phone,
			Mail:      c.mail,
			Position:  c.position,
			UserID:    userIDs[c.owner],
			CompanyID: companyIDs[c.company],
		}); err != nil {
			return fmt.Errorf("create contact %s %s: %w", c.name, c.surname, err)
		}
	}

	for _, n := range demoNotes {
		if _, err := repo.CreateNote(ctx, &models.Note{
			Content:   n.content,
			UserID:    userIDs[n.owner],
			CompanyID: companyIDs[n.company],
		}); err != nil {
			return fmt.Errorf("create note: %w", err)
		}
	}

	logger.Info("seed complete",
		slog.Int("users", len(demoUsers)),
		slog.Int("companies", len(demoCompanies)),
		slog.Int("contacts", len(demoContacts)),
		slog.Int("notes", len(demoNotes)),
	)
	return nil
}
