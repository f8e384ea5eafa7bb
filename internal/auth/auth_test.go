package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/techtonix/compass/internal/apiclient"
	"github.com/techtonix/compass/internal/session"
	"github.com/techtonix/compass/internal/storage"
)

type fakeBackend struct {
	loginStatus    int
	loginBody      string
	registerStatus int
	registerBody   string

	calls        int
	registerSeen map[string]any
}

func (f *fakeBackend) start(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/api/login", func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		w.WriteHeader(f.loginStatus)
		w.Write([]byte(f.loginBody))
	})
	r.Post("/api/register", func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &f.registerSeen)
		w.WriteHeader(f.registerStatus)
		w.Write([]byte(f.registerBody))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newService(t *testing.T, srv *httptest.Server) (*Service, *session.Store) {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	sessions := session.NewStore(db)
	return NewService(apiclient.New(srv.URL, sessions, srv.Client()), sessions), sessions
}

func TestLogin_StoresSession(t *testing.T) {
	fb := &fakeBackend{loginStatus: 200, loginBody: `{"token":"tok-1","user_id":"u-1"}`}
	svc, sessions := newService(t, fb.start(t))

	sess, err := svc.Login(context.Background(), LoginInput{Email: "a@b.co", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token != "tok-1" || sess.UserID != "u-1" {
		t.Errorf("session = %+v", sess)
	}

	stored, ok, _ := sessions.Load()
	if !ok || stored != sess {
		t.Errorf("stored session = %+v (ok %v), want %+v", stored, ok, sess)
	}
}

func TestLogin_ServerErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server message", 401, `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"custom message", 400, `{"error":"Invalid payload"}`, "Invalid payload"},
		{"no body", 500, ``, defaultLoginError},
		{"missing token", 200, `{"user_id":"u"}`, defaultLoginError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{loginStatus: tt.status, loginBody: tt.body}
			svc, sessions := newService(t, fb.start(t))

			_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.co", Password: "pw"})
			var ae *Error
			if !errors.As(err, &ae) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if ae.Message != tt.want {
				t.Errorf("Message = %q, want %q", ae.Message, tt.want)
			}
			if _, ok, _ := sessions.Load(); ok {
				t.Error("session stored after failed login")
			}
		})
	}
}

func TestLogin_ValidatesBeforeCalling(t *testing.T) {
	fb := &fakeBackend{loginStatus: 200, loginBody: `{"token":"t"}`}
	svc, _ := newService(t, fb.start(t))

	_, err := svc.Login(context.Background(), LoginInput{Email: "not-an-email", Password: ""})
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if fb.calls != 0 {
		t.Errorf("backend called %d times for invalid input", fb.calls)
	}
}

func TestRegister(t *testing.T) {
	fb := &fakeBackend{registerStatus: 200, registerBody: `{"message":"Registration successful","user_id":"u-9"}`}
	svc, sessions := newService(t, fb.start(t))

	id, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "pw", Confirm: "pw",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id != "u-9" {
		t.Errorf("user id = %q", id)
	}
	if fb.registerSeen["role"] != "student" {
		t.Errorf("role = %v, want student default", fb.registerSeen["role"])
	}
	if _, sent := fb.registerSeen["Confirm"]; sent {
		t.Error("confirmation field sent to server")
	}
	if _, ok, _ := sessions.Load(); ok {
		t.Error("registration must not log in")
	}
}

func TestRegister_EmptySuccessBody(t *testing.T) {
	fb := &fakeBackend{registerStatus: 201, registerBody: ``}
	svc, _ := newService(t, fb.start(t))

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "pw", Confirm: "pw", Role: "mentor",
	}); err != nil {
		t.Errorf("Register with empty body: %v", err)
	}
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name      string
		in        RegisterInput
		status    int
		body      string
		want      string
		wantCalls int
	}{
		{
			name: "mismatched passwords",
			in:   RegisterInput{Name: "A", Email: "a@b.co", Password: "x", Confirm: "y"},
			want: "Passwords do not match",
		},
		{
			name: "bad role",
			in:   RegisterInput{Name: "A", Email: "a@b.co", Password: "x", Confirm: "x", Role: "admin"},
			want: "role must be one of: student mentor",
		},
		{
			name:      "conflict",
			in:        RegisterInput{Name: "A", Email: "a@b.co", Password: "x", Confirm: "x"},
			status:    409,
			body:      `{"error":"Email already registered"}`,
			want:      "Email already registered",
			wantCalls: 1,
		},
		{
			name:      "generic",
			in:        RegisterInput{Name: "A", Email: "a@b.co", Password: "x", Confirm: "x"},
			status:    500,
			body:      `Internal Server Error`,
			want:      defaultRegisterError,
			wantCalls: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{registerStatus: tt.status, registerBody: tt.body}
			svc, _ := newService(t, fb.start(t))

			_, err := svc.Register(context.Background(), tt.in)
			var ae *Error
			if !errors.As(err, &ae) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if ae.Message != tt.want {
				t.Errorf("Message = %q, want %q", ae.Message, tt.want)
			}
			if fb.calls != tt.wantCalls {
				t.Errorf("backend calls = %d, want %d", fb.calls, tt.wantCalls)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	fb := &fakeBackend{loginStatus: 200, loginBody: `{"token":"t","user_id":"u"}`}
	svc, sessions := newService(t, fb.start(t))

	svc.Login(context.Background(), LoginInput{Email: "a@b.co", Password: "pw"})
	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := sessions.Require(); !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("Require after logout = %v", err)
	}
}
