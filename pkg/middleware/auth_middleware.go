package middleware

import (
	"log"
	"net/http"

	"company-service/pkg/jwtutil"
	"company-service/pkg/response"
	xerrors "company-service/pkg/xerrors"
)

type AuthMiddleware struct {
	verifier *jwtutil.Verifier
}

func NewAuthMiddleware(verifier *jwtutil.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Require rejects the request unless a valid bearer token is present.
// Token validity is solely "signature valid and not expired"; there is
// no server-side session or revocation list.
func (am *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			log.Printf("[WARN] auth failed: no token for %s %s", r.Method, r.URL.Path)
			response.Error(w, http.StatusUnauthorized, xerrors.ErrMissingToken.Error())
			return
		}

		claims, err := am.verifier.ParseAndValidate(token)
		if err != nil {
			log.Printf("[WARN] auth failed: invalid token for %s %s", r.Method, r.URL.Path)
			response.Error(w, http.StatusUnauthorized, xerrors.ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, setContextValues(r, claims, token))
	})
}
