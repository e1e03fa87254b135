// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"strings"
	"time"
)

// Contact is a directory entry for a person the assistant can schedule with.
type Contact struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department,omitempty"`
	Role       string    `json:"role,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FirstName returns the first whitespace-delimited token of the contact's name.
func (c *Contact) FirstName() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Tags generates a consistent set of searchable tags for the contact.
func (c *Contact) Tags() []string {
	var tags []string
	if c.ID != "" {
		tags = append(tags, c.ID)
	}
	if c.Name != "" {
		tags = append(tags, c.Name)
	}
	if c.Email != "" {
		tags = append(tags, c.Email)
	}
	if c.Department != "" {
		tags = append(tags, c.Department)
	}
	return tags
}

// ContactUpdate carries the whitelisted fields that may be changed on an
// existing contact. Nil pointers leave the current value untouched.
type ContactUpdate struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
	Role       *string `json:"role,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}
