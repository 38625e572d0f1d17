package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"
	"go.opentelemetry.io/otel"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

type accessContextKey struct{ name string }

var accessCtxKey = &accessContextKey{"access"}

var tracer = otel.Tracer("iot-telemetry/authz")

type Scope string

const (
	AnyScope      Scope = "any"
	ReadTelemetry Scope = "telemetry-read"
	SendCommands  Scope = "telemetry-command"
	Maintenance   Scope = "telemetry-maintenance"
)

// AllOwners is the owner key a policy grants to callers that may act on every device.
const AllOwners string = "*"

//go:generate moq -rm -out enticator_mock.go . Enticator
type Enticator interface {
	RequireAccess(scopes ...Scope) func(http.Handler) http.Handler
}

type accessMap map[string]map[Scope]struct{}

type impl struct {
	query rego.PreparedEvalQuery
}

func (a *impl) RequireAccess(scopes ...Scope) func(http.Handler) http.Handler {

	validateScopes := make([]string, 0, len(scopes))
	for _, s := range scopes {
		validateScopes = append(validateScopes, string(s))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			logger := logging.GetFromContext(r.Context())

			ctx, span := tracer.Start(r.Context(), "check-auth")
			defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

			token := r.Header.Get("Authorization")

			if token == "" || !strings.HasPrefix(token, "Bearer ") {
				err = errors.New("authorization header missing")
				logger.Info(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			input := map[string]any{
				"token":  token[7:],
				"scopes": validateScopes,
			}

			results, err := a.query.Eval(ctx, rego.EvalInput(input))
			if err != nil {
				logger.Error("opa eval failed", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if len(results) == 0 {
				err = errors.New("opa query could not be satisfied")
				logger.Error("auth failed", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			binding := results[0].Bindings["x"]

			// a denied request binds a single false
			allowed, ok := binding.(bool)
			if ok && !allowed {
				err = errors.New("authorization failed")
				logger.Warn(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			result, ok := binding.(map[string]any)
			if !ok {
				err = errors.New("unexpected result type")
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			anyAccess, ok1 := result["access"]
			access, ok2 := anyAccess.(map[string]any)

			if !ok1 || !ok2 {
				err = errors.New("bad response from authz policy engine")
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			accessObj := accessMap{}

			for owner, anyScopes := range access {
				granted, ok := anyScopes.([]any)
				if !ok {
					err = errors.New("rego response type error")
					logger.Error(err.Error())
					http.Error(w, "rego error", http.StatusInternalServerError)
					return
				}

				accessObj[owner] = map[Scope]struct{}{}

				for _, s := range granted {
					if scope, ok := s.(string); ok {
						accessObj[owner][Scope(scope)] = struct{}{}
					}
				}
			}

			if len(accessObj) == 0 {
				// requested scopes were not granted for any owner
				err = errors.New("authorization failed")
				logger.Warn(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccess(r.Context(), accessObj)))
		})
	}
}

// NewAuthenticator compiles the policy module. The policy must define data.example.authz.allow,
// evaluating to false or to an object with an access map from owner to granted scopes.
func NewAuthenticator(ctx context.Context, policies io.Reader) (Enticator, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("x = data.example.authz.allow"),
		rego.Module("example.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return &impl{query: query}, nil
}

// GetOwnersWithAllowedScopes extracts the owners, if any, for which all scopes were granted
func GetOwnersWithAllowedScopes(ctx context.Context, scopes ...Scope) []string {
	access, ok := ctx.Value(accessCtxKey).(accessMap)
	requiredScopeCount := len(scopes)

	if !ok || requiredScopeCount == 0 {
		return []string{}
	}

	if requiredScopeCount == 1 && scopes[0] == AnyScope {
		requiredScopeCount = 0
	}

	owners := make([]string, 0, len(access))

	for o, allowedScopes := range access {
		idx := 0

		for idx < requiredScopeCount {
			if _, ok := allowedScopes[scopes[idx]]; !ok {
				break
			}
			idx++
		}

		if idx == requiredScopeCount {
			owners = append(owners, o)
		}
	}

	return owners
}

// IsAllowed reports whether the caller was granted scopes for ownerID, either directly or
// through AllOwners.
func IsAllowed(ctx context.Context, ownerID string, scopes ...Scope) bool {
	owners := GetOwnersWithAllowedScopes(ctx, scopes...)
	return slices.Contains(owners, AllOwners) || slices.Contains(owners, ownerID)
}

func WithAccess(ctx context.Context, access accessMap) context.Context {
	return context.WithValue(ctx, accessCtxKey, access)
}

// WithAllowedOwners grants scopes for every owner in owners.
func WithAllowedOwners(ctx context.Context, owners []string, scopes ...Scope) context.Context {
	access := accessMap{}

	for _, o := range owners {
		access[o] = map[Scope]struct{}{}
		for _, s := range scopes {
			access[o][s] = struct{}{}
		}
	}

	return WithAccess(ctx, access)
}
