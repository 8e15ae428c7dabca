package app

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"echome-server/internal/pkg/jwtutil"
)

// Identity is the resolved caller of a protected route.
type Identity struct {
	UID   string
	Email string
}

// IdentityVerifier turns the bearer value of an Authorization header into
// an Identity. Implementations must be read-only and must not reveal
// through their error which part of the check failed.
type IdentityVerifier interface {
	Verify(credential string) (*Identity, error)
}

const (
	VerifyStrategyToken      = "token"
	VerifyStrategyCredential = "credential"
)

// NewIdentityVerifier selects a verification strategy by name.
func NewIdentityVerifier(strategy, jwtSecret string, users UserStore) (IdentityVerifier, error) {
	switch strategy {
	case VerifyStrategyToken, "":
		return &TokenVerifier{secret: jwtSecret, users: users}, nil
	case VerifyStrategyCredential:
		return &CredentialVerifier{users: users}, nil
	default:
		return nil, fmt.Errorf("unknown verify strategy %q", strategy)
	}
}

// TokenVerifier checks a signed JWT and resolves its subject against the
// user store.
type TokenVerifier struct {
	secret string
	users  UserStore
}

func (v *TokenVerifier) Verify(credential string) (*Identity, error) {
	claims, err := jwtutil.ParseToken(v.secret, credential)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	user, err := v.users.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	return &Identity{
		UID:   strconv.FormatUint(uint64(user.ID), 10),
		Email: user.Email,
	}, nil
}

// CredentialVerifier treats the bearer value as base64("email:password")
// and checks it against the stored bcrypt hash.
type CredentialVerifier struct {
	users UserStore
}

func (v *CredentialVerifier) Verify(credential string) (*Identity, error) {
	decoded, err := base64.StdEncoding.DecodeString(credential)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := v.users.GetByEmail(strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	return &Identity{
		UID:   strconv.FormatUint(uint64(user.ID), 10),
		Email: user.Email,
	}, nil
}
