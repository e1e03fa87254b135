// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package calendar

import (
	"fmt"
	"sync"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
)

// Registry implements the CalendarRegistry interface
type Registry struct {
	providers map[string]domain.CalendarProvider
	mu        sync.RWMutex
}

// NewRegistry creates a new calendar registry
func NewRegistry() domain.CalendarRegistry {
	return &Registry{
		providers: make(map[string]domain.CalendarProvider),
	}
}

// GetProvider returns the calendar provider for the specified platform name
func (r *Registry) GetProvider(platform string) (domain.CalendarProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[platform]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.NewNotFoundError("calendar provider not found"), platform)
	}

	return provider, nil
}

// RegisterProvider registers a calendar provider
func (r *Registry) RegisterProvider(platform string, provider domain.CalendarProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[platform] = provider
}
