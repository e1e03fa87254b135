// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service contains the business logic of the office assistant:
// the contact directory, the meeting ledger, the slot finder, and the
// dialogue state machine that drives scheduling conversations.
package service

import "slices"

// ServiceConfig contains the configuration shared by the services.
type ServiceConfig struct {
	// Platform selects the calendar provider used for event operations.
	Platform string
	// AdminUsers may edit any meeting regardless of ownership.
	AdminUsers []string
}

// IsAdmin reports whether the principal has elevated access.
func (c ServiceConfig) IsAdmin(principal string) bool {
	return slices.Contains(c.AdminUsers, principal)
}
