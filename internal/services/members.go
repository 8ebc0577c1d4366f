package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database/members"
	"github.com/mrlokans/library-manager/internal/entities"
)

// Validation patterns. The phone pattern accepts digits with optional leading
// plus and common separators, seven digits minimum.
var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s().\-]{5,19}$`)
)

// MemberService owns member rules and is shared by the HTML and JSON adapters.
type MemberService struct {
	repo *members.Repository
}

func NewMemberService(repo *members.Repository) *MemberService {
	return &MemberService{repo: repo}
}

func (s *MemberService) List() ([]entities.Member, error) {
	return s.repo.GetAll()
}

// ListDtos projects members for the API with the derived full name.
func (s *MemberService) ListDtos() ([]entities.MemberDto, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]entities.MemberDto, 0, len(all))
	for _, m := range all {
		dtos = append(dtos, entities.MemberDto{
			MemberID: m.MemberID,
			FullName: m.FullName(),
			Email:    m.Email,
			Phone:    m.Phone,
		})
	}
	return dtos, nil
}

// GetByID fetches a member; withBorrowings eager-loads their borrowing
// history together with each record's book.
func (s *MemberService) GetByID(id uint, withBorrowings bool) (*entities.Member, error) {
	member, err := s.repo.GetByID(id, withBorrowings)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return member, err
}

func (s *MemberService) Create(member *entities.Member) error {
	if errs := validateMember(member); len(errs) > 0 {
		return errs
	}
	if err := s.repo.Create(member); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (s *MemberService) Update(id uint, member *entities.Member) error {
	if id != member.MemberID {
		return ErrIDMismatch
	}
	if errs := validateMember(member); len(errs) > 0 {
		return errs
	}
	err := s.repo.Update(member)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *MemberService) Delete(id uint) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func validateMember(member *entities.Member) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(member.FirstName) == "" {
		errs["FirstName"] = "first name is required"
	}
	if strings.TrimSpace(member.LastName) == "" {
		errs["LastName"] = "last name is required"
	}
	if member.Email == "" {
		errs["Email"] = "email is required"
	} else if !emailPattern.MatchString(member.Email) {
		errs["Email"] = "email address is not valid"
	}
	if member.Phone == "" {
		errs["Phone"] = "phone is required"
	} else if !phonePattern.MatchString(member.Phone) {
		errs["Phone"] = "phone number is not valid"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
