/*
Package handler provides the HTTP handlers and routing setup for the ragwall gateway.

This file contains the registration and login handlers backing the account
endpoints. Both speak the exact wire vocabulary of the original contract:
registration answers 201 "User created" or 400 "User already exist"; login
distinguishes not-found (400) from a wrong password (401).
*/
package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"ragwall/internal/app/account"
	"ragwall/internal/pkg/auth/jwt"
	"ragwall/internal/pkg/errs"
	"ragwall/internal/pkg/logx"
	"ragwall/internal/pkg/req"
	"ragwall/internal/pkg/resp"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

type RegisterInput struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	Password  string `json:"password"`
}

// HandleRegister creates a new account. The duplicate-email check is not a
// pre-read: creation goes straight to the store and relies on its unique
// index, so concurrent registrations for one email produce exactly one
// account and one conflict response.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.FirstName = strings.TrimSpace(input.FirstName)
		input.LastName = strings.TrimSpace(input.LastName)
		input.Email = strings.TrimSpace(input.Email)

		if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrRegistrationInvalid))
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrEmailInvalid))
			return
		}

		if utf8.RuneCountInString(input.Password) < minPasswordLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrPasswordTooShort))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			logx.Error(err, "register: password hashing failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrRegisterFailed))
			return
		}

		acct := &account.Account{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			PasswordHash: string(hashedPassword),
		}

		if err := deps.Accounts.Create(r.Context(), acct); err != nil {
			if errors.Is(err, account.ErrDuplicateEmail) {
				logx.Warn("register: email already exists", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserExists))
				return
			}

			logx.Error(err, "register: failed to create account")
			resp.RespondError(w, r, errs.NewError(errs.ErrRegisterFailed))
			return
		}

		logx.Info("register: account created", "account_id", acct.ID)
		resp.RespondMessage(w, r, http.StatusCreated, "User created")
	}
}

type LoginInput struct {
	Email    string `json:"Email"`
	Password string `json:"password"`
}

// LoginResponse carries the stateless identity handoff: the account's email
// and id, which the client holds as its session identity, plus a signed token
// of the same pair for clients that want verifiable identity.
type LoginResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	UserID  string `json:"user_id"`
	Token   string `json:"token"`
}

// HandleLogin verifies credentials against the credential store. An unknown
// email and a wrong password stay distinguishable to the caller (400 vs 401).
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		acct, err := deps.Accounts.GetByEmail(r.Context(), strings.TrimSpace(input.Email))
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				logx.Warn("login: account not found", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "login: account fetch failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrLoginFailed))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrIncorrectPassword))
			return
		}

		payload := &jwt.Payload{
			ID:    acct.ID,
			Email: acct.Email,
		}

		token, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "login: jwt generation failed", "account_id", acct.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrLoginFailed))
			return
		}

		logx.Info("login: user logged in", "account_id", acct.ID)
		resp.RespondJSON(w, r, http.StatusOK, LoginResponse{
			Message: "User logged in successfully",
			Email:   acct.Email,
			UserID:  acct.ID,
			Token:   token,
		})
	}
}
