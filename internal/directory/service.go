package directory

import (
	"context"
	defError "errors"
	"log"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"meeting-summaries-backend/internal/errors"
	"meeting-summaries-backend/internal/store"
)

// Service defines the interface for directory business logic
type Service interface {
	Register(ctx context.Context, contact *Contact) error
	Login(ctx context.Context, email, password string) (*Contact, error)
	GetContactByID(ctx context.Context, id uint64) (*Contact, error)
	SearchContacts(ctx context.Context, query string) ([]SafeContact, error)
	ResolveEmails(ctx context.Context, names []string) (string, error)
	EnsureCompanies(ctx context.Context, companies []string) error
}

type DefaultService struct {
	repository ContactRepository
	records    store.RecordStore
}

func NewService(repository ContactRepository, records store.RecordStore) Service {
	return &DefaultService{repository: repository, records: records}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isValidFullName requires at least a first and a last name.
func isValidFullName(fullName string) bool {
	return len(strings.Fields(strings.TrimSpace(fullName))) >= 2
}

// Register adds a contact to the directory. Company labels unseen so far are
// added to the Companies vocabulary as a side write.
func (s *DefaultService) Register(ctx context.Context, contact *Contact) error {
	if !emailPattern.MatchString(contact.Email) {
		return errors.UnprocessableEntity("Invalid email address", nil)
	}
	if !isValidFullName(contact.FullName) {
		return errors.UnprocessableEntity("Full name must include first and last name", nil)
	}

	_, err := s.repository.FindByEmail(ctx, contact.Email)
	if err != nil && !defError.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		return errors.Conflict("Contact already registered", nil)
	}

	if contact.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(contact.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Internal(err)
		}
		contact.PasswordHash = string(hashedPassword)
	}
	contact.IsActive = true

	if err := s.repository.Create(ctx, contact); err != nil {
		return err
	}

	if contact.Company != "" {
		if err := s.EnsureCompanies(ctx, []string{contact.Company}); err != nil {
			log.Printf("[DIRECTORY] failed to add company %q: %v", contact.Company, err)
		}
	}

	return nil
}

// Login authenticates a registered contact
func (s *DefaultService) Login(ctx context.Context, email, password string) (*Contact, error) {
	contact, err := s.repository.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Unauthorized("Contact not found", err)
	}

	if !contact.IsActive {
		return nil, errors.Unauthorized("Contact is not active", nil)
	}
	if contact.PasswordHash == "" {
		return nil, errors.Unauthorized("Contact has no login", nil)
	}

	err = bcrypt.CompareHashAndPassword([]byte(contact.PasswordHash), []byte(password))
	if err != nil {
		return nil, errors.Unauthorized("Wrong password", err)
	}

	return contact, nil
}

func (s *DefaultService) GetContactByID(ctx context.Context, id uint64) (*Contact, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *DefaultService) SearchContacts(ctx context.Context, query string) ([]SafeContact, error) {
	contacts, err := s.repository.Search(ctx, query, 50)
	if err != nil {
		return nil, err
	}

	result := make([]SafeContact, 0, len(contacts))
	for i := range contacts {
		result = append(result, contacts[i].ToSafeContact())
	}
	return result, nil
}

// ResolveEmails maps the collected form names to known contact emails,
// case-insensitively on the full name, and joins the unique hits.
func (s *DefaultService) ResolveEmails(ctx context.Context, names []string) (string, error) {
	if len(names) == 0 {
		return "", nil
	}

	contacts, err := s.repository.FindByFullNames(ctx, names)
	if err != nil {
		return "", err
	}

	byName := make(map[string]string, len(contacts))
	for _, contact := range contacts {
		if contact.Email != "" {
			byName[strings.ToLower(strings.TrimSpace(contact.FullName))] = contact.Email
		}
	}

	seen := make(map[string]struct{}, len(names))
	emails := make([]string, 0, len(names))
	for _, name := range names {
		email, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}

	return strings.Join(emails, ", "), nil
}

// EnsureCompanies adds any company label missing from the Companies
// vocabulary. Failures on one label don't stop the rest.
func (s *DefaultService) EnsureCompanies(ctx context.Context, companies []string) error {
	var firstErr error
	for _, company := range companies {
		trimmed := strings.TrimSpace(company)
		if trimmed == "" {
			continue
		}

		existing, err := s.records.Filter(ctx, store.ListCompanies, "title eq '"+strings.ReplaceAll(trimmed, "'", "''")+"'")
		if err != nil {
			log.Printf("[DIRECTORY] company lookup failed for %q: %v", trimmed, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(existing) > 0 {
			continue
		}

		if _, err := s.records.Add(ctx, store.ListCompanies, store.Item{"title": trimmed}); err != nil {
			log.Printf("[DIRECTORY] company add failed for %q: %v", trimmed, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
