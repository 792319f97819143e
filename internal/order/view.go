package order

import (
	"sort"
	"time"

	"pizza-storefront/internal/model"
)

// VisibleToday reports whether an order belongs in the customer's "today"
// view: every active order, plus any order placed on now's calendar day.
func VisibleToday(o model.Order, now time.Time) bool {
	if StatusOf(o.Status).IsActive() {
		return true
	}
	return sameDay(o.OrderDate.Time, now)
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Today filters orders for the "today" view, newest first.
func Today(orders []model.Order, now time.Time) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if VisibleToday(o, now) {
			out = append(out, o)
		}
	}
	sortByDate(out, false)
	return out
}

// History filters terminal orders, newest first.
func History(orders []model.Order) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if StatusOf(o.Status).IsHistorical() {
			out = append(out, o)
		}
	}
	sortByDate(out, false)
	return out
}

// Active filters in-flight orders, oldest first.
func Active(orders []model.Order) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if StatusOf(o.Status).IsActive() {
			out = append(out, o)
		}
	}
	sortByDate(out, true)
	return out
}

func sortByDate(orders []model.Order, ascending bool) {
	sort.SliceStable(orders, func(i, j int) bool {
		if ascending {
			return orders[i].OrderDate.Before(orders[j].OrderDate.Time)
		}
		return orders[i].OrderDate.After(orders[j].OrderDate.Time)
	})
}
