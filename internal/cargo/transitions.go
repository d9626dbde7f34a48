package cargo

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotEligible is returned when a requested transition is not allowed for
// the cargo's current state.
var ErrNotEligible = errors.New("cargo not eligible")

// ReturnWindowDays is how long after delivery a return may be requested.
const ReturnWindowDays = 14

const (
	returnCenter   = "İstanbul İade Merkezi"
	cancelDepot    = "İstanbul Depo"
	cancelLocation = "İstanbul Depo - İptal"
)

// Eligibility is the outcome of a pure eligibility check.
type Eligibility struct {
	Eligible bool
	Reason   string
}

// CheckReturnEligibility decides whether the cargo can be returned at the
// given moment. Delivered shipments are returnable within ReturnWindowDays of
// their last update; an unparseable delivery date does not block the return.
func CheckReturnEligibility(c Cargo, now time.Time) Eligibility {
	switch c.Status {
	case StatusDelivered:
		deliveredAt, err := time.Parse(TimeLayout, c.LastUpdate)
		if err != nil {
			return Eligibility{Eligible: true, Reason: "İade için uygundur (teslim tarihi kontrol edilemedi)"}
		}
		days := int(now.Sub(deliveredAt).Hours() / 24)
		if days <= ReturnWindowDays {
			return Eligibility{Eligible: true, Reason: fmt.Sprintf("İade için uygundur (%d gün geçti)", days)}
		}
		return Eligibility{
			Reason: fmt.Sprintf("İade süresi dolmuştur (%d gün geçti, maksimum %d gün)", days, ReturnWindowDays),
		}
	case StatusInReturn:
		return Eligibility{Reason: "Bu kargo için zaten iade işlemi başlatılmış"}
	default:
		return Eligibility{Reason: fmt.Sprintf("İade için uygun değildir (durum: %s)", c.Status)}
	}
}

// CheckCancelEligibility decides whether the cargo can still be cancelled.
// Only shipments that have not left the warehouse qualify.
func CheckCancelEligibility(c Cargo) Eligibility {
	if c.Status == StatusPreparing {
		return Eligibility{Eligible: true, Reason: "İptal için uygundur (henüz yola çıkmamış)"}
	}
	return Eligibility{Reason: fmt.Sprintf("İptal için uygun değildir (durum: %s)", c.Status)}
}

// ApplyReturn computes the post-return record for c. The input is not
// modified; callers persist the returned copy (read-modify-write against the
// store).
func ApplyReturn(c Cargo, reason string, now time.Time) (Cargo, error) {
	if e := CheckReturnEligibility(c, now); !e.Eligible {
		return Cargo{}, fmt.Errorf("%w: %s", ErrNotEligible, e.Reason)
	}
	ts := now.Format(TimeLayout)

	next := c
	next.History = append(append([]HistoryEntry(nil), c.History...), HistoryEntry{
		Date:     ts,
		Status:   "İade talebi alındı",
		Location: returnCenter,
	})
	next.Status = StatusInReturn
	next.Location = returnCenter
	next.LastUpdate = ts
	next.ReturnReason = reason
	return next, nil
}

// ApplyCancel computes the post-cancel record for c without mutating it.
func ApplyCancel(c Cargo, now time.Time) (Cargo, error) {
	if e := CheckCancelEligibility(c); !e.Eligible {
		return Cargo{}, fmt.Errorf("%w: %s", ErrNotEligible, e.Reason)
	}
	ts := now.Format(TimeLayout)

	next := c
	next.History = append(append([]HistoryEntry(nil), c.History...), HistoryEntry{
		Date:     ts,
		Status:   "İptal talebi alındı",
		Location: cancelDepot,
	})
	next.Status = StatusCancelled
	next.Location = cancelLocation
	next.LastUpdate = ts
	return next, nil
}
