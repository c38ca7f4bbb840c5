package services

import (
	"net/http/httptest"
	"testing"

	"github.com/iamkibet/bitedash-app-sub000/api"
	"github.com/iamkibet/bitedash-app-sub000/entity"
	"github.com/iamkibet/bitedash-app-sub000/fakeapi"
)

const testSecret = "test-secret"

// newTestClient mounts the fake backend and returns a client authenticated
// as the given user.
func newTestClient(t *testing.T, s *fakeapi.Server, userID uint, role entity.Role) *api.Client {
	t.Helper()
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, api.NewStaticCredentials(s.TokenFor(userID, role)))
}
