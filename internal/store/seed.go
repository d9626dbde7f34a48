package store

import (
	"context"
	"fmt"

	"github.com/cargohub/cargokb/internal/cargo"
)

// Seed creates the schema and loads the demo customers used by the support
// chat walkthrough. Existing rows with the same keys are overwritten.
func (s *Store) Seed(ctx context.Context) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	users := []cargo.User{
		{ID: "user1", Name: "Ahmet Yılmaz", Email: "ahmet.yilmaz@example.com", Phone: "+90 532 111 2233", MemberSince: "2021-03-15"},
		{ID: "user2", Name: "Elif Demir", Email: "elif.demir@example.com", Phone: "+90 533 444 5566", MemberSince: "2022-08-01"},
	}
	cargos := []cargo.Cargo{
		{
			TrackingNumber:    "TR123456789",
			UserID:            "user1",
			Status:            cargo.StatusDelivered,
			Location:          "İstanbul",
			LastUpdate:        "2024-05-12 14:30",
			EstimatedDelivery: "2024-05-12",
			Description:       "Kablosuz kulaklık",
			Weight:            "0.4 kg",
			Dimensions:        "20x15x8 cm",
			Carrier:           "CargoHub Express",
			Insurance:         "Var",
			History: []cargo.HistoryEntry{
				{Date: "2024-05-10 09:00", Status: cargo.StatusPreparing, Location: "İstanbul Depo"},
				{Date: "2024-05-11 08:15", Status: cargo.StatusInTransit, Location: "Transfer Merkezi"},
				{Date: "2024-05-12 14:30", Status: cargo.StatusDelivered, Location: "İstanbul"},
			},
		},
		{
			TrackingNumber:    "TR987654321",
			UserID:            "user1",
			Status:            cargo.StatusPreparing,
			Location:          "İstanbul Depo",
			LastUpdate:        "2024-05-14 10:00",
			EstimatedDelivery: "2024-05-18",
			Description:       "Kitap seti",
			Weight:            "2.1 kg",
			Dimensions:        "30x22x12 cm",
			Carrier:           "CargoHub Standart",
			Insurance:         "Yok",
			History: []cargo.HistoryEntry{
				{Date: "2024-05-14 10:00", Status: cargo.StatusPreparing, Location: "İstanbul Depo"},
			},
		},
		{
			TrackingNumber:    "TR555666777",
			UserID:            "user2",
			Status:            cargo.StatusInTransit,
			Location:          "Ankara Transfer Merkezi",
			LastUpdate:        "2024-05-13 19:45",
			EstimatedDelivery: "2024-05-16",
			Description:       "Küçük ev aleti",
			Weight:            "3.5 kg",
			Dimensions:        "40x35x25 cm",
			Carrier:           "CargoHub Express",
			Insurance:         "Var",
			History: []cargo.HistoryEntry{
				{Date: "2024-05-12 11:30", Status: cargo.StatusPreparing, Location: "İzmir Depo"},
				{Date: "2024-05-13 19:45", Status: cargo.StatusInTransit, Location: "Ankara Transfer Merkezi"},
			},
		},
	}

	for _, u := range users {
		if err := s.PutUser(ctx, u); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}
	for _, c := range cargos {
		if err := s.PutCargo(ctx, c); err != nil {
			return fmt.Errorf("seed cargo: %w", err)
		}
	}
	return nil
}
