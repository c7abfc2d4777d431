package services_test

import (
	"context"
	"errors"
	"testing"

	"wanderlust/internal/httperr"
	"wanderlust/internal/services"
	"wanderlust/internal/store"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := services.NewAuthService(store.NewMemUsers(), "test-secret")

	user, err := auth.Register(ctx, "sachin", "sachin@example.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID.IsZero() {
		t.Fatal("registered user has no ID")
	}
	if user.Password == "password123" {
		t.Fatal("password stored in plain text")
	}

	loggedIn, token, err := auth.Login(ctx, "sachin", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("login returned a different user")
	}
	if token == "" {
		t.Fatal("no token issued")
	}

	uid, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != user.ID.Hex() {
		t.Errorf("token names user %s, expected %s", uid, user.ID.Hex())
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	auth := services.NewAuthService(store.NewMemUsers(), "test-secret")

	if _, err := auth.Register(ctx, "sachin", "one@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := auth.Register(ctx, "sachin", "two@example.com", "password456")
	var appErr *httperr.Error
	if !errors.As(err, &appErr) || appErr.Status != 400 {
		t.Fatalf("expected a 400 error for a duplicate username, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	auth := services.NewAuthService(store.NewMemUsers(), "test-secret")

	if _, err := auth.Register(ctx, "sachin", "sachin@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, err := auth.Login(ctx, "sachin", "wrong")
	var appErr *httperr.Error
	if !errors.As(err, &appErr) || appErr.Status != 401 {
		t.Fatalf("expected a 401 error, got %v", err)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	ctx := context.Background()
	auth := services.NewAuthService(store.NewMemUsers(), "test-secret")
	other := services.NewAuthService(store.NewMemUsers(), "different-secret")

	if _, err := auth.Register(ctx, "sachin", "sachin@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, token, err := auth.Login(ctx, "sachin", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}
