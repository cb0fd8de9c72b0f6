package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/vytor/lanki/internal/errors"
	"github.com/vytor/lanki/internal/logger"
)

const (
	userEmailHeader  = "X-User-Email"
	googleJWKSIssuer = "https://accounts.google.com/"
)

// googleIssuers are the iss values Google puts in ID tokens.
var googleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

type emailContextKey struct{}

func withUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailContextKey{}, strings.ToLower(strings.TrimSpace(email)))
}

// userEmailFromContext returns the authenticated caller's email, or "".
func userEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(emailContextKey{}).(string)
	return email
}

// requireUser rejects requests that no auth middleware attached an email to.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := userEmailFromContext(r.Context())
		if email == "" {
			handleError(w, r, errors.NewUnauthorizedError("sign in required"))
			return
		}
		log := logger.FromContext(r.Context()).WithField("user", email)
		next.ServeHTTP(w, r.WithContext(logger.NewContext(r.Context(), log)))
	})
}

// HeaderAuth trusts the X-User-Email header. For development only.
func HeaderAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if email := r.Header.Get(userEmailHeader); email != "" {
				r = r.WithContext(withUserEmail(r.Context(), email))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// googleClaims are the ID token claims beyond the registered ones.
type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func (c *googleClaims) Validate(context.Context) error {
	if c.Email == "" {
		return fmt.Errorf("token has no email claim")
	}
	if !c.EmailVerified {
		return fmt.Errorf("email %s is not verified", c.Email)
	}
	return nil
}

// GoogleAuth verifies "Authorization: Bearer <id_token>" against Google's
// published keys, requiring audience clientID.
func GoogleAuth(clientID string) (func(http.Handler) http.Handler, error) {
	issuerURL, err := url.Parse(googleJWKSIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 15*time.Minute)
	validate, err := googleValidator(provider.KeyFunc, validator.RS256, clientID)
	if err != nil {
		return nil, err
	}
	return tokenAuth(validate), nil
}

// googleValidator accepts a token signed with keyFunc's key when it carries
// any of the googleIssuers.
func googleValidator(keyFunc func(context.Context) (interface{}, error), alg validator.SignatureAlgorithm, clientID string) (jwtmiddleware.ValidateToken, error) {
	validators := make([]jwtmiddleware.ValidateToken, 0, len(googleIssuers))
	for _, issuer := range googleIssuers {
		v, err := validator.New(
			keyFunc,
			alg,
			issuer,
			[]string{clientID},
			validator.WithCustomClaims(func() validator.CustomClaims { return &googleClaims{} }),
			validator.WithAllowedClockSkew(time.Minute),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT validator for %s: %w", issuer, err)
		}
		validators = append(validators, v.ValidateToken)
	}
	return anyValidator(validators...), nil
}

// anyValidator passes a token that at least one validator accepts and
// otherwise returns the first validator's error.
func anyValidator(validators ...jwtmiddleware.ValidateToken) jwtmiddleware.ValidateToken {
	return func(ctx context.Context, token string) (interface{}, error) {
		var firstErr error
		for _, validate := range validators {
			claims, err := validate(ctx, token)
			if err == nil {
				return claims, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		return nil, firstErr
	}
}

// tokenAuth wraps a token validator whose custom claims are *googleClaims.
func tokenAuth(validate jwtmiddleware.ValidateToken) func(http.Handler) http.Handler {
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		logger.FromContext(r.Context()).Warn("encountered error while validating JWT: %v", err)
		writeError(w, errors.NewUnauthorizedError("failed to validate token"))
	}

	middleware := jwtmiddleware.New(
		validate,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(next http.Handler) http.Handler {
		return middleware.CheckJWT(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			if !ok {
				handleError(w, r, errors.NewUnauthorizedError("missing token claims"))
				return
			}
			custom, ok := claims.CustomClaims.(*googleClaims)
			if !ok {
				handleError(w, r, errors.NewUnauthorizedError("token has no email claim"))
				return
			}
			next.ServeHTTP(w, r.WithContext(withUserEmail(r.Context(), custom.Email)))
		}))
	}
}
