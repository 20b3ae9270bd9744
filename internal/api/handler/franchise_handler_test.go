package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

type stubFranchiseService struct {
	listFn        func(ctx context.Context, authUser *domain.User) ([]*domain.Franchise, error)
	createStoreFn func(ctx context.Context, authUser *domain.User, franchiseID int64, store *domain.Store) (*domain.Store, error)
	deleted       []int64
}

func (s *stubFranchiseService) List(ctx context.Context, authUser *domain.User) ([]*domain.Franchise, error) {
	return s.listFn(ctx, authUser)
}

func (s *stubFranchiseService) ListForUser(context.Context, *domain.User, int64) ([]*domain.Franchise, error) {
	return []*domain.Franchise{}, nil
}

func (s *stubFranchiseService) Create(_ context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	franchise.ID = 1
	return franchise, nil
}

func (s *stubFranchiseService) Delete(_ context.Context, franchiseID int64) error {
	s.deleted = append(s.deleted, franchiseID)
	return nil
}

func (s *stubFranchiseService) CreateStore(ctx context.Context, authUser *domain.User, franchiseID int64, store *domain.Store) (*domain.Store, error) {
	return s.createStoreFn(ctx, authUser, franchiseID, store)
}

func (s *stubFranchiseService) DeleteStore(context.Context, *domain.User, int64, int64) error {
	return nil
}

// The list endpoint is public: it must work with no resolved user and simply
// pass the anonymous caller down for role scoping.
func TestFranchiseHandler_List_Anonymous(t *testing.T) {
	e := newTestEcho()
	stub := &stubFranchiseService{
		listFn: func(_ context.Context, authUser *domain.User) ([]*domain.Franchise, error) {
			if authUser != nil {
				t.Fatalf("expected anonymous caller, got %+v", authUser)
			}
			return []*domain.Franchise{{ID: 1, Name: "pizzaPocket"}}, nil
		},
	}
	handler := NewFranchiseHandler(stub)

	c, rec := jsonRequest(e, http.MethodGet, "/api/franchise", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["name"] != "pizzaPocket" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestFranchiseHandler_Create_AdminOnly(t *testing.T) {
	e := newTestEcho()
	handler := NewFranchiseHandler(&stubFranchiseService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/franchise", `{"name":"pizzaPocket"}`)
	c.Set("user", &domain.User{ID: 2, Roles: []domain.RoleAssignment{domain.DinerRole()}})

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "unable to create a franchise" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestFranchiseHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubFranchiseService{}
	handler := NewFranchiseHandler(stub)

	// Diners are refused before the service is reached.
	c, _ := jsonRequest(e, http.MethodDelete, "/api/franchise/1", "")
	c.SetParamNames("franchiseId")
	c.SetParamValues("1")
	c.Set("user", &domain.User{ID: 2, Roles: []domain.RoleAssignment{domain.DinerRole()}})

	err := handler.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if len(stub.deleted) != 0 {
		t.Fatalf("service reached despite refusal")
	}

	// Admins delete and get a confirmation message.
	c, rec := jsonRequest(e, http.MethodDelete, "/api/franchise/1", "")
	c.SetParamNames("franchiseId")
	c.SetParamValues("1")
	c.Set("user", &domain.User{ID: 1, Roles: []domain.RoleAssignment{domain.AdminRole()}})

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(stub.deleted) != 1 || stub.deleted[0] != 1 {
		t.Fatalf("expected franchise 1 deleted, got %v", stub.deleted)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "franchise deleted" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

// Authorization failures on store creation collapse into one opaque message,
// whether the caller lacked the role or the franchise does not exist.
func TestFranchiseHandler_CreateStore_OpaqueRefusal(t *testing.T) {
	e := newTestEcho()
	for _, svcErr := range []error{domain.ErrForbidden, domain.ErrFranchiseNotFound} {
		stub := &stubFranchiseService{
			createStoreFn: func(context.Context, *domain.User, int64, *domain.Store) (*domain.Store, error) {
				return nil, svcErr
			},
		}
		handler := NewFranchiseHandler(stub)

		c, _ := jsonRequest(e, http.MethodPost, "/api/franchise/1/store", `{"name":"SLC"}`)
		c.SetParamNames("franchiseId")
		c.SetParamValues("1")
		c.Set("user", &domain.User{ID: 2, Roles: []domain.RoleAssignment{domain.DinerRole()}})

		err := handler.CreateStore(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusForbidden {
			t.Fatalf("%v: expected 403, got %v", svcErr, err)
		}
		if he.Message != "unable to create a store" {
			t.Fatalf("%v: unexpected message: %v", svcErr, he.Message)
		}
	}
}
