package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
)

func eventWindow(from, to time.Duration) (string, string) {
	now := time.Now()
	return now.Add(from).Format(time.RFC3339), now.Add(to).Format(time.RFC3339)
}

func TestEventValidation(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Teh", "8990001", 5000, 3000, 0)
	svc := NewEventService(f.events, f.products, f.db, time.Local)
	ctx := context.Background()

	start, end := eventWindow(-time.Hour, time.Hour)
	cases := []struct {
		name string
		req  EventRequest
		want error
	}{
		{"end before start", EventRequest{Nama: "Promo", TanggalMulai: end, TanggalSelesai: start}, ErrInvalidEventWindow},
		{"zero percent", EventRequest{Nama: "Promo", TanggalMulai: start, TanggalSelesai: end,
			Products: []EventProductInput{{ProductID: p.ID, Diskon: 0}}}, ErrValidation},
		{"over 100 percent", EventRequest{Nama: "Promo", TanggalMulai: start, TanggalSelesai: end,
			Products: []EventProductInput{{ProductID: p.ID, Diskon: 101}}}, ErrValidation},
		{"duplicate product", EventRequest{Nama: "Promo", TanggalMulai: start, TanggalSelesai: end,
			Products: []EventProductInput{{ProductID: p.ID, Diskon: 10}, {ProductID: p.ID, Diskon: 20}}}, ErrDuplicateEventProduct},
		{"unknown product", EventRequest{Nama: "Promo", TanggalMulai: start, TanggalSelesai: end,
			Products: []EventProductInput{{ProductID: 999, Diskon: 10}}}, ErrProductNotFound},
		{"bad date", EventRequest{Nama: "Promo", TanggalMulai: "kemarin", TanggalSelesai: end}, ErrInvalidDate},
	}
	for _, tc := range cases {
		tc := tc
		if _, err := svc.Create(ctx, &tc.req, f.actor); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestEventCreateUpdateAndActive(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Teh", "8990001", 5000, 3000, 0)
	b := f.product(t, "Kopi", "8990002", 7000, 5000, 0)
	svc := NewEventService(f.events, f.products, f.db, time.Local)
	ctx := context.Background()

	start, end := eventWindow(-time.Hour, time.Hour)
	event, err := svc.Create(ctx, &EventRequest{
		Nama:           "Promo Pagi",
		TanggalMulai:   start,
		TanggalSelesai: end,
		Products:       []EventProductInput{{ProductID: a.ID, Diskon: 25}},
	}, f.actor)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Status != model.StatusActive || len(event.Products) != 1 || event.Products[0].Product == nil {
		t.Fatalf("unexpected created event %+v", event)
	}

	futureStart, futureEnd := eventWindow(24*time.Hour, 48*time.Hour)
	if _, err := svc.Create(ctx, &EventRequest{
		Nama:           "Promo Besok",
		TanggalMulai:   futureStart,
		TanggalSelesai: futureEnd,
	}, f.actor); err != nil {
		t.Fatalf("create future event: %v", err)
	}

	active, err := svc.ListActive(ctx, time.Now())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != event.ID {
		t.Fatalf("expected only the running event, got %+v", active)
	}

	updated, err := svc.Update(ctx, event.ID, &EventRequest{
		Nama:           "Promo Pagi",
		TanggalMulai:   start,
		TanggalSelesai: end,
		Products:       []EventProductInput{{ProductID: b.ID, Diskon: 40}},
	}, f.actor)
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if len(updated.Products) != 1 || updated.Products[0].ProductID != b.ID || updated.Products[0].Diskon != 40 {
		t.Fatalf("expected associations replaced, got %+v", updated.Products)
	}

	if _, err := svc.Update(ctx, event.ID, &EventRequest{
		Nama:           "Promo Pagi",
		TanggalMulai:   start,
		TanggalSelesai: end,
		Status:         model.StatusInactive,
	}, f.actor); err != nil {
		t.Fatalf("deactivate event: %v", err)
	}
	active, err = svc.ListActive(ctx, time.Now())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active events, got %d", len(active))
	}

	if err := svc.Delete(ctx, event.ID, f.actor); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if _, err := svc.Get(ctx, event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventDateOnlyEndCoversWholeDay(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.events, f.products, f.db, time.UTC)

	event, err := svc.Create(context.Background(), &EventRequest{
		Nama:           "Satu Hari",
		TanggalMulai:   "2026-10-14",
		TanggalSelesai: "2026-10-14",
	}, f.actor)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if !event.IsActiveAt(time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected event active late on its single day")
	}
	if event.IsActiveAt(time.Date(2026, 10, 15, 0, 0, 1, 0, time.UTC)) {
		t.Fatalf("expected event over on the next day")
	}
}
