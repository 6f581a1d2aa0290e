package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retail-kit/backoffice-console/internal/config"
	"github.com/retail-kit/backoffice-console/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.UpstreamConfig{BaseURL: server.URL, TimeoutSeconds: 2}, zap.NewNop())
}

func TestLoginSuccessUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/staff/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"token": "tok-123",
				"user": map[string]any{
					"id": "1", "email": "a@b.com", "name": "Ada",
					"role": "admin", "permissions": []string{"orders:read"},
				},
			},
		})
	}))

	result, err := client.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	assert.Equal(t, []string{"orders:read"}, result.User.Permissions)
}

func TestLoginRejectionCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid credentials"},
		})
	}))

	_, err := client.Login(context.Background(), "a@b.com", "nope")

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusUnauthorized, rejection.Status)
	assert.Equal(t, "invalid credentials", rejection.Message)
}

func TestLoginIncompletePayloadIsMalformed(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"token": "t"}})
	}))

	_, err := client.Login(context.Background(), "a@b.com", "secret")
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestLoginTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listening anymore
	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, TimeoutSeconds: 1}, zap.NewNop())

	_, err := client.Login(context.Background(), "a@b.com", "secret")

	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestVerifyOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		outcome VerifyOutcome
		wantErr bool
	}{
		{"accepted", http.StatusOK, VerifyValid, false},
		{"expired", http.StatusUnauthorized, VerifyInvalid, false},
		{"revoked", http.StatusForbidden, VerifyInvalid, false},
		{"server error", http.StatusInternalServerError, VerifyIndeterminate, true},
		{"gateway", http.StatusBadGateway, VerifyIndeterminate, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/auth/verify", r.URL.Path)
				require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
				w.WriteHeader(tc.status)
			}))

			outcome, err := client.Verify(context.Background(), "tok-123")
			assert.Equal(t, tc.outcome, outcome)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyTransportFailureIsIndeterminate(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, TimeoutSeconds: 1}, zap.NewNop())

	outcome, err := client.Verify(context.Background(), "tok-123")
	assert.Equal(t, VerifyIndeterminate, outcome)

	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestStaffEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /staff/accounts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"id": "s1", "name": "Ada", "email": "a@b.com", "roles": []map[string]string{{"id": "r1", "name": "admin"}}},
		}})
	})
	mux.HandleFunc("GET /staff/roles", func(w http.ResponseWriter, r *http.Request) {
		// bare payload, no wrapper
		_ = json.NewEncoder(w).Encode([]map[string]string{{"id": "r1", "name": "admin"}, {"id": "r2", "name": "viewer"}})
	})
	mux.HandleFunc("POST /staff/accounts", func(w http.ResponseWriter, r *http.Request) {
		var req CreateStaffRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"id": "s2", "name": req.Name, "email": req.Email,
		}})
	})
	mux.HandleFunc("POST /staff/accounts/s1/roles", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "r2", body["role_id"])
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /staff/accounts/s1/password", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "n3w-pass", body["new_password"])
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /staff/accounts/s1/disable", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	accounts, err := client.ListStaff(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "s1", accounts[0].ID)
	assert.True(t, accounts[0].HasRoleID("r1"))

	roles, err := client.ListRoles(ctx, "tok")
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	created, err := client.CreateStaff(ctx, "tok", CreateStaffRequest{Name: "Grace", Email: "g@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "s2", created.ID)

	assert.NoError(t, client.AssignRole(ctx, "tok", "s1", "r2"))
	assert.NoError(t, client.ResetPassword(ctx, "tok", "s1", "n3w-pass"))
	assert.NoError(t, client.DisableAccount(ctx, "tok", "s1"))
}

func TestPing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health/live", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}))
	assert.NoError(t, client.Ping(context.Background()))
}
