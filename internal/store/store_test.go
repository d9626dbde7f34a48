package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cargohub/cargokb/internal/cargo"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cargo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return s
}

func TestStore_UserRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := cargo.User{
		ID:          "user1",
		Name:        "Ahmet Yılmaz",
		Email:       "ahmet.yilmaz@example.com",
		Phone:       "+90 532 111 2233",
		MemberSince: "2021-03-15",
	}
	if err := s.PutUser(ctx, u); err != nil {
		t.Fatalf("put user: %v", err)
	}

	got, err := s.GetUser(ctx, "user1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Name != u.Name || got.Email != u.Email || got.MemberSince != u.MemberSince {
		t.Errorf("user mismatch: %+v", got)
	}
	if len(got.Cargos) != 0 {
		t.Errorf("expected no cargos yet, got %d", len(got.Cargos))
	}

	// Upsert replaces the row.
	u.Phone = "+90 532 999 0000"
	if err := s.PutUser(ctx, u); err != nil {
		t.Fatalf("put user again: %v", err)
	}
	got, err = s.GetUser(ctx, "user1")
	if err != nil {
		t.Fatalf("get user after upsert: %v", err)
	}
	if got.Phone != "+90 532 999 0000" {
		t.Errorf("upsert did not replace phone: %q", got.Phone)
	}
}

func TestStore_GetUserNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetUser(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_CargoRoundTripWithHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutUser(ctx, cargo.User{ID: "user1", Name: "Ahmet Yılmaz"}); err != nil {
		t.Fatalf("put user: %v", err)
	}
	c := cargo.Cargo{
		TrackingNumber:    "TR123456789",
		UserID:            "user1",
		Status:            cargo.StatusDelivered,
		Location:          "İstanbul",
		LastUpdate:        "2024-05-12 14:30",
		EstimatedDelivery: "2024-05-12",
		Description:       "Kablosuz kulaklık",
		Weight:            "0.4 kg",
		Carrier:           "CargoHub Express",
		History: []cargo.HistoryEntry{
			{Date: "2024-05-10 09:00", Status: cargo.StatusPreparing, Location: "İstanbul Depo"},
			{Date: "2024-05-12 14:30", Status: cargo.StatusDelivered, Location: "İstanbul"},
		},
	}
	if err := s.PutCargo(ctx, c); err != nil {
		t.Fatalf("put cargo: %v", err)
	}

	got, err := s.GetCargo(ctx, "TR123456789")
	if err != nil {
		t.Fatalf("get cargo: %v", err)
	}
	if got.Status != cargo.StatusDelivered || got.Description != "Kablosuz kulaklık" {
		t.Errorf("cargo mismatch: %+v", got)
	}
	if got.ReturnReason != "" {
		t.Errorf("expected empty return reason, got %q", got.ReturnReason)
	}
	if len(got.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(got.History))
	}
	// History comes back ordered by event date.
	if got.History[0].Status != cargo.StatusPreparing || got.History[1].Status != cargo.StatusDelivered {
		t.Errorf("history out of order: %+v", got.History)
	}
}

func TestStore_GetCargoNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetCargo(context.Background(), "TR000000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Reading a record, applying a pure transition and writing the copy back is
// the store's intended update loop.
func TestStore_ReadModifyWrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	before, err := s.GetCargo(ctx, "TR123456789")
	if err != nil {
		t.Fatalf("get cargo: %v", err)
	}
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	next, err := cargo.ApplyReturn(*before, "Müşteri talebi", now)
	if err != nil {
		t.Fatalf("apply return: %v", err)
	}
	if err := s.PutCargo(ctx, next); err != nil {
		t.Fatalf("put cargo: %v", err)
	}

	after, err := s.GetCargo(ctx, "TR123456789")
	if err != nil {
		t.Fatalf("get cargo after update: %v", err)
	}
	if after.Status != cargo.StatusInReturn {
		t.Errorf("status: got %q", after.Status)
	}
	if after.ReturnReason != "Müşteri talebi" {
		t.Errorf("return reason: got %q", after.ReturnReason)
	}
	if len(after.History) != len(before.History)+1 {
		t.Errorf("history: expected %d entries, got %d", len(before.History)+1, len(after.History))
	}
}

func TestStore_SeedIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	u, err := s.GetUser(ctx, "user1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(u.Cargos) != 2 {
		t.Errorf("user1 should own 2 cargos, got %d", len(u.Cargos))
	}
	c, err := s.GetCargo(ctx, "TR123456789")
	if err != nil {
		t.Fatalf("get cargo: %v", err)
	}
	if len(c.History) != 3 {
		t.Errorf("reseeding duplicated history: %d entries", len(c.History))
	}
}
