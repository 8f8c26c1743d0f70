package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/forms"
)

var (
	// ErrInvalidCredentials means no account matched the email and password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNoSession means there is no stored user to resume.
	ErrNoSession = errors.New("no stored session, log in first")
)

// Outcome is how a login attempt ended.
type Outcome int

const (
	// OutcomeAuthenticated means the gate is now in the main flow.
	OutcomeAuthenticated Outcome = iota + 1
	// OutcomeNeedsProfile means credentials matched but the user has no
	// medical profile yet; the gate was not opened.
	OutcomeNeedsProfile
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeNeedsProfile:
		return "needs_profile"
	default:
		return "unknown"
	}
}

// CredentialVerifier resolves an email/password pair to a RUT.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (rut string, err error)
}

// UserLister is the part of the SDK UserListVerifier needs.
type UserLister interface {
	ListCredentials(ctx context.Context) ([]client.Credential, error)
}

// UserListVerifier scans the full user list for an exact, case-sensitive
// match on email and password. The API has no authentication endpoint, so
// this is the only check available against it.
type UserListVerifier struct {
	Users UserLister
}

func (v UserListVerifier) Verify(ctx context.Context, email, password string) (string, error) {
	users, err := v.Users.ListCredentials(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.Correo == email && u.Password == password {
			return u.RUT, nil
		}
	}
	return "", ErrInvalidCredentials
}

// Navigator receives navigation events the flow cannot act on itself.
type Navigator interface {
	ToProfileCompletion(rut string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(rut string)

func (f NavigatorFunc) ToProfileCompletion(rut string) { f(rut) }

// ProfileAPI is the part of the SDK the flow uses for medical profiles.
type ProfileAPI interface {
	GetProfile(ctx context.Context, rut string) (*client.MedicalProfile, error)
	CreateProfile(ctx context.Context, p client.MedicalProfile) (*client.MedicalProfile, error)
}

// LoginFlow runs the two-step login: credentials first, then profile
// existence decides between the main flow and profile completion.
type LoginFlow struct {
	Session   *Context
	Verifier  CredentialVerifier
	Profiles  ProfileAPI
	Navigator Navigator
}

// Login verifies the credentials, remembers the user and opens the gate if
// a medical profile exists. Every call makes single network attempts. When
// the profile check fails, the previously stored user is put back.
func (f *LoginFlow) Login(ctx context.Context, email, password string) (Outcome, error) {
	if strings.TrimSpace(email) == "" {
		return 0, fmt.Errorf("%w: email is required", forms.ErrValidation)
	}
	if password == "" {
		return 0, fmt.Errorf("%w: password is required", forms.ErrValidation)
	}

	prev := f.Session.Snapshot().UserID
	rut, err := f.Verifier.Verify(ctx, email, password)
	if err != nil {
		return 0, err
	}
	if err := f.Session.remember(ctx, rut); err != nil {
		return 0, err
	}
	out, err := f.enter(ctx, rut)
	if err != nil {
		if rerr := f.Session.restore(ctx, prev); rerr != nil {
			return 0, errors.Join(err, rerr)
		}
		return 0, err
	}
	return out, nil
}

// Resume re-enters the main flow for the stored user, as a restarted process
// would after its last login.
func (f *LoginFlow) Resume(ctx context.Context) (Outcome, error) {
	rut := f.Session.Snapshot().UserID
	if rut == "" {
		return 0, ErrNoSession
	}
	return f.enter(ctx, rut)
}

func (f *LoginFlow) enter(ctx context.Context, rut string) (Outcome, error) {
	_, err := f.Profiles.GetProfile(ctx, rut)
	switch {
	case err == nil:
		f.Session.gate.Login()
		return OutcomeAuthenticated, nil
	case missingProfile(err):
		// The gate may still be open for a previous user.
		f.Session.gate.Logout()
		if f.Navigator != nil {
			f.Navigator.ToProfileCompletion(rut)
		}
		return OutcomeNeedsProfile, nil
	default:
		return 0, err
	}
}

// missingProfile treats any server answer other than success as "no
// profile"; only transport failures are errors.
func missingProfile(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.Kind != client.KindTransport
}

// CompleteProfile posts the first medical profile of rut and, once the
// server stored it, opens the gate.
func (f *LoginFlow) CompleteProfile(ctx context.Context, rut string, form *forms.ProfileForm) (*client.MedicalProfile, error) {
	p, err := form.Build(rut)
	if err != nil {
		return nil, err
	}
	out, err := f.Profiles.CreateProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	if f.Session.Snapshot().UserID != rut {
		if err := f.Session.remember(ctx, rut); err != nil {
			return nil, err
		}
	}
	f.Session.gate.Login()
	return out, nil
}
