package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mark3labs/onboardr/internal/nats"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken is returned when an account already uses the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when an account already uses the email address.
	ErrEmailTaken = errors.New("email already in use")
)

// DefaultMinPasswordLength applies when the caller does not set one.
const DefaultMinPasswordLength = 15

// AdminInput is the form submitted by the admin user step.
type AdminInput struct {
	Username string `json:"username" validate:"required,min=2,max=40"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"-" validate:"required,strongpassword"`

	// MinPasswordLength overrides DefaultMinPasswordLength when positive.
	MinPasswordLength int `json:"-" validate:"-"`
}

// FieldErrors maps form field names to a human readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Validate normalizes the username and checks every field. The returned
// error is a FieldErrors when any field is invalid.
func (in *AdminInput) Validate() error {
	in.Username = slug.Make(strings.TrimSpace(in.Username))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	v := validator.New(validator.WithRequiredStructEnabled())
	minLen := in.MinPasswordLength
	if minLen <= 0 {
		minLen = DefaultMinPasswordLength
	}
	if err := v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String(), minLen)
	}); err != nil {
		return fmt.Errorf("registering password rule: %w", err)
	}

	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := FieldErrors{}
	for _, e := range verrs {
		field := jsonName(e.StructField())
		switch e.Tag() {
		case "required":
			fe[field] = "is required"
		case "email":
			fe[field] = "must be a valid email address"
		case "min":
			fe[field] = fmt.Sprintf("must be at least %s characters", e.Param())
		case "max":
			fe[field] = fmt.Sprintf("must be at most %s characters", e.Param())
		case "strongpassword":
			fe[field] = fmt.Sprintf("must be at least %d characters with upper case, lower case and a number", minLen)
		default:
			fe[field] = "is invalid"
		}
	}
	return fe
}

func jsonName(structField string) string {
	switch structField {
	case "FullName":
		return "full_name"
	default:
		return strings.ToLower(structField)
	}
}

func strongPassword(pw string, minLen int) bool {
	if len([]rune(pw)) < minLen {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// CreateAdmin validates the input and records a new administrator account.
func (s *Store) CreateAdmin(ctx context.Context, in AdminInput) (*Account, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	for _, acct := range state.Accounts {
		if acct.Username == in.Username {
			return nil, ErrUsernameTaken
		}
		if acct.Email == in.Email {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	acct := &Account{
		ID:           uuid.NewString(),
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		Role:         RoleAdmin,
		PasswordHash: string(hash),
	}

	meta, err := json.Marshal(acct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	event := Event{
		ID:     acct.ID,
		Type:   nats.EventTypeAccount,
		Action: "create",
		Meta:   meta,
		Data:   acct.Username,
	}
	if _, err := s.PublishEvent(ctx, event); err != nil {
		return nil, err
	}

	log.Info("Created admin account %s", acct.Username)
	return acct, nil
}

// CheckPassword reports whether password matches the account's stored hash.
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// AdminCount returns the number of administrator accounts in the log.
func (s *Store) AdminCount(ctx context.Context) (int, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return 0, err
	}
	return state.AdminCount(), nil
}
