// Package auth performs login and registration against the backend and
// records the resulting session locally.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/techtonix/compass/internal/apiclient"
	"github.com/techtonix/compass/internal/session"
)

const (
	defaultLoginError    = "Invalid credentials"
	defaultRegisterError = "Registration failed"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Error is a user-facing failure message.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Confirm  string `json:"-" validate:"eqfield=Password"`
	Role     string `json:"role" validate:"oneof=student mentor"`
}

// Service logs users in and out.
type Service struct {
	api      *apiclient.Client
	sessions *session.Store
}

func NewService(api *apiclient.Client, sessions *session.Store) *Service {
	return &Service{api: api, sessions: sessions}
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Login exchanges credentials for a token and stores the session.
func (s *Service) Login(ctx context.Context, in LoginInput) (session.Session, error) {
	if err := validate.Struct(in); err != nil {
		return session.Session{}, &Error{Message: validationMessage(err), Err: err}
	}

	resp, err := s.api.Post(ctx, "/login", in)
	if err != nil {
		return session.Session{}, &Error{Message: defaultLoginError, Err: err}
	}
	var out loginResponse
	if err := apiclient.DecodeJSON(resp, &out); err != nil {
		return session.Session{}, &Error{Message: serverMessage(err, defaultLoginError), Err: err}
	}
	if out.Token == "" {
		return session.Session{}, &Error{Message: defaultLoginError, Err: errors.New("login response carried no token")}
	}

	sess := session.Session{Token: out.Token, UserID: out.UserID}
	if err := s.sessions.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("storing session: %w", err)
	}
	return sess, nil
}

type registerResponse struct {
	UserID string `json:"user_id"`
}

// Register creates an account. An empty Role registers a student. It does
// not log in; the returned user id may be empty if the server omits it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	if in.Role == "" {
		in.Role = "student"
	}
	if err := validate.Struct(in); err != nil {
		return "", &Error{Message: validationMessage(err), Err: err}
	}

	resp, err := s.api.Post(ctx, "/register", in)
	if err != nil {
		return "", &Error{Message: defaultRegisterError, Err: err}
	}
	var out registerResponse
	if err := apiclient.DecodeJSON(resp, &out); err != nil {
		var se *apiclient.StatusError
		if errors.As(err, &se) {
			return "", &Error{Message: serverMessage(err, defaultRegisterError), Err: err}
		}
		// Success needs no body.
		return "", nil
	}
	return out.UserID, nil
}

// Logout forgets the local session.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

func serverMessage(err error, fallback string) string {
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		if msg := se.Message(); msg != "" {
			return msg
		}
	}
	return fallback
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, "email must be a valid email address")
		case "eqfield":
			msgs = append(msgs, "Passwords do not match")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
