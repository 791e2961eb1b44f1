package users

import (
	"errors"
	"strings"
	"time"

	"github.com/2beens/gymapi/pkg"
)

type Role string

const (
	RoleStudent      Role = "student"
	RoleTrainer      Role = "trainer"
	RoleNutritionist Role = "nutritionist"
	RoleAdmin        Role = "admin"
)

func (r Role) IsProfessional() bool {
	return r == RoleTrainer || r == RoleNutritionist
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CREF         string    `json:"cref,omitempty"`
	CRN          string    `json:"crn,omitempty"`
	WhatsApp     string    `json:"whatsapp,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	CREF     string `json:"cref"`
	CRN      string `json:"crn"`
	WhatsApp string `json:"whatsapp"`
	Phone    string `json:"phone"`
}

const minPasswordLen = 6

// Validate normalizes the request in place and checks the role specific requirements.
// Admins cannot self-register.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = pkg.NormalizeEmail(r.Email)
	r.CREF = strings.TrimSpace(r.CREF)
	r.CRN = strings.TrimSpace(r.CRN)

	if r.Name == "" || r.Email == "" || r.Password == "" || r.Role == "" {
		return errors.New("name, email, password and role are required")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("invalid email")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password too short")
	}
	if len(r.Password) > pkg.MaxPasswordBytes {
		return pkg.ErrPasswordTooLong
	}

	switch r.Role {
	case RoleStudent:
	case RoleTrainer:
		if r.CREF == "" {
			return errors.New("cref is required for trainers")
		}
	case RoleNutritionist:
		if r.CRN == "" {
			return errors.New("crn is required for nutritionists")
		}
	default:
		return errors.New("invalid role")
	}

	return nil
}

// ToUser builds the user to be stored, given an already hashed password.
func (r *RegisterRequest) ToUser(passwordHash string) User {
	return User{
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: passwordHash,
		Role:         r.Role,
		CREF:         r.CREF,
		CRN:          r.CRN,
		WhatsApp:     strings.TrimSpace(r.WhatsApp),
		Phone:        strings.TrimSpace(r.Phone),
		Active:       true,
	}
}
