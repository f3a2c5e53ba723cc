package testutil

import (
	"cricket-live-service/internal/app/live"
	"cricket-live-service/internal/store"
	"cricket-live-service/internal/viewmodel"
)

// NewServiceWithViews builds a live service backed by an in-memory store preloaded with views.
func NewServiceWithViews(views ...viewmodel.ViewModel) *live.Service {
	svc := live.NewService(store.NewMemoryStore(), nil, nil)
	for _, vm := range views {
		svc.Publish(vm)
	}
	return svc
}
