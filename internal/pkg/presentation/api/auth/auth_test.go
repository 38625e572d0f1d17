package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestMissingTokenIsUnauthorized(t *testing.T) {
	is, a := testSetup(t)

	resp := serve(a, "", ReadTelemetry)

	is.Equal(resp.Code, http.StatusUnauthorized)
}

func TestUnknownTokenIsUnauthorized(t *testing.T) {
	is, a := testSetup(t)

	resp := serve(a, "Bearer nosuchtoken", ReadTelemetry)

	is.Equal(resp.Code, http.StatusUnauthorized)
}

func TestReaderIsGrantedOwnDevices(t *testing.T) {
	is, a := testSetup(t)

	var owners []string
	var ownAllowed, otherAllowed bool

	handler := a.RequireAccess(ReadTelemetry)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owners = GetOwnersWithAllowedScopes(r.Context(), ReadTelemetry)
		ownAllowed = IsAllowed(r.Context(), "owner1", ReadTelemetry)
		otherAllowed = IsAllowed(r.Context(), "owner2", ReadTelemetry)
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, request("Bearer reader"))

	is.Equal(resp.Code, http.StatusOK)
	is.Equal(owners, []string{"owner1"})
	is.True(ownAllowed)
	is.True(!otherAllowed)
}

func TestReaderCannotSendCommands(t *testing.T) {
	is, a := testSetup(t)

	resp := serve(a, "Bearer reader", SendCommands)

	is.Equal(resp.Code, http.StatusUnauthorized)
}

func TestOperatorIsGrantedEveryOwner(t *testing.T) {
	is, a := testSetup(t)

	var allowed bool

	handler := a.RequireAccess(SendCommands)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed = IsAllowed(r.Context(), "owner2", SendCommands)
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, request("Bearer operator"))

	is.Equal(resp.Code, http.StatusOK)
	is.True(allowed)
}

func TestAllowedOwnersWithoutRequiredScope(t *testing.T) {
	is := is.New(t)

	ctx := WithAllowedOwners(context.Background(), []string{"owner1", "owner2"}, ReadTelemetry)

	owners := GetOwnersWithAllowedScopes(ctx, ReadTelemetry)
	slices.Sort(owners)

	is.Equal(owners, []string{"owner1", "owner2"})
	is.Equal(len(GetOwnersWithAllowedScopes(ctx, ReadTelemetry, Maintenance)), 0)
	is.Equal(len(GetOwnersWithAllowedScopes(ctx, AnyScope)), 2)
	is.True(!IsAllowed(context.Background(), "owner1", ReadTelemetry))
}

func TestInvalidPolicyFails(t *testing.T) {
	is := is.New(t)

	_, err := NewAuthenticator(context.Background(), strings.NewReader("package example.authz\n\nallow := {"))
	is.True(err != nil)
}

func testSetup(t *testing.T) (*is.I, Enticator) {
	is := is.New(t)

	a, err := NewAuthenticator(context.Background(), strings.NewReader(policy))
	is.NoErr(err)

	return is, a
}

func request(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v0/devices/20240101-owner1-ab12c", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req
}

func serve(a Enticator, token string, scopes ...Scope) *httptest.ResponseRecorder {
	handler := a.RequireAccess(scopes...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, request(token))

	return resp
}

const policy string = `package example.authz

default allow := false

grants := {
	"reader": {"owner1": ["telemetry-read"]},
	"operator": {"*": ["telemetry-read", "telemetry-command", "telemetry-maintenance"]},
}

allow := {"access": access} if {
	granted := grants[input.token]
	access := {owner: input.scopes |
		some owner, scopes in granted
		every s in input.scopes {
			s in scopes
		}
	}
}
`
