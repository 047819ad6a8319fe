package models

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusCreated, OrderStatusInTransit, true},
		{OrderStatusInTransit, OrderStatusCompleted, true},
		{OrderStatusCreated, OrderStatusCompleted, false},
		{OrderStatusCreated, OrderStatusCreated, false},
		{OrderStatusInTransit, OrderStatusCreated, false},
		{OrderStatusInTransit, OrderStatusInTransit, false},
		{OrderStatusCompleted, OrderStatusCreated, false},
		{OrderStatusCompleted, OrderStatusInTransit, false},
		{OrderStatusCompleted, OrderStatusCompleted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		in   string
		want OrderStatus
		ok   bool
	}{
		{"created", OrderStatusCreated, true},
		{"In Transit", OrderStatusInTransit, true},
		{"in-transit", OrderStatusInTransit, true},
		{"  COMPLETED ", OrderStatusCompleted, true},
		{"teleported", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseOrderStatus(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseOrderStatus(%q): ok=%v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseOrderStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusCreated, OrderStatusInTransit, OrderStatusCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if OrderStatus("shipped").Valid() {
		t.Error("unknown status should be invalid")
	}
}
