// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-office-assistant-service/internal/logging"
)

// DirectoryService manages the contact directory and implements the
// participant resolution algorithm used by the scheduling flows.
type DirectoryService struct {
	contactRepo    domain.ContactRepository
	messageBuilder domain.MessageBuilder
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(contactRepo domain.ContactRepository, messageBuilder domain.MessageBuilder) *DirectoryService {
	return &DirectoryService{
		contactRepo:    contactRepo,
		messageBuilder: messageBuilder,
	}
}

// AddContact creates a new contact with a generated ID and persists it.
func (s *DirectoryService) AddContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	if contact == nil || strings.TrimSpace(contact.Name) == "" {
		return nil, domain.NewValidationError("contact name is required")
	}

	now := time.Now().UTC()
	contact.ID = "contact_" + uuid.New().String()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	// Indexing is best-effort.
	if err := s.messageBuilder.SendIndexContact(ctx, models.ActionCreated, *contact); err != nil {
		slog.WarnContext(ctx, "failed to send contact index message", logging.ErrKey, err,
			"contact_id", contact.ID)
	}

	return contact, nil
}

// UpdateContact applies the whitelisted partial fields to a contact.
func (s *DirectoryService) UpdateContact(ctx context.Context, contactID string, update models.ContactUpdate) (*models.Contact, error) {
	contact, revision, err := s.contactRepo.GetWithRevision(ctx, contactID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		contact.Name = *update.Name
	}
	if update.Email != nil {
		contact.Email = *update.Email
	}
	if update.Department != nil {
		contact.Department = *update.Department
	}
	if update.Role != nil {
		contact.Role = *update.Role
	}
	if update.Phone != nil {
		contact.Phone = *update.Phone
	}
	contact.UpdatedAt = time.Now().UTC()

	if err := s.contactRepo.Update(ctx, contact, revision); err != nil {
		return nil, err
	}

	if err := s.messageBuilder.SendIndexContact(ctx, models.ActionUpdated, *contact); err != nil {
		slog.WarnContext(ctx, "failed to send contact index message", logging.ErrKey, err,
			"contact_id", contact.ID)
	}

	return contact, nil
}

// DeleteContact removes a contact from the directory.
func (s *DirectoryService) DeleteContact(ctx context.Context, contactID string) error {
	_, revision, err := s.contactRepo.GetWithRevision(ctx, contactID)
	if err != nil {
		return err
	}

	if err := s.contactRepo.Delete(ctx, contactID, revision); err != nil {
		return err
	}

	if err := s.messageBuilder.SendDeleteIndexContact(ctx, contactID); err != nil {
		slog.WarnContext(ctx, "failed to send contact delete index message", logging.ErrKey, err,
			"contact_id", contactID)
	}

	return nil
}

// FindByID returns the contact with the given ID, or nil when absent.
func (s *DirectoryService) FindByID(ctx context.Context, contactID string) (*models.Contact, error) {
	contact, err := s.contactRepo.Get(ctx, contactID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return contact, nil
}

// FindByExactName returns the contact whose full name matches
// case-insensitively, or nil when absent.
func (s *DirectoryService) FindByExactName(ctx context.Context, name string) (*models.Contact, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, contact := range contacts {
		if strings.EqualFold(contact.Name, name) {
			return contact, nil
		}
	}
	return nil, nil
}

// FindByFirstName returns the contacts whose first name token matches
// case-insensitively.
func (s *DirectoryService) FindByFirstName(ctx context.Context, firstName string) ([]*models.Contact, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*models.Contact
	for _, contact := range contacts {
		if strings.EqualFold(contact.FirstName(), firstName) {
			matches = append(matches, contact)
		}
	}
	return matches, nil
}

// FindByDepartment returns the contacts in the given department,
// case-insensitively.
func (s *DirectoryService) FindByDepartment(ctx context.Context, department string) ([]*models.Contact, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*models.Contact
	for _, contact := range contacts {
		if strings.EqualFold(contact.Department, department) {
			matches = append(matches, contact)
		}
	}
	return matches, nil
}

// GetDepartmentMembers is the department lookup used for group expansions
// like "all of Engineering".
func (s *DirectoryService) GetDepartmentMembers(ctx context.Context, department string) ([]*models.Contact, error) {
	return s.FindByDepartment(ctx, department)
}

// FindByName returns the contacts whose name contains the given substring,
// case-insensitively.
func (s *DirectoryService) FindByName(ctx context.Context, substring string) ([]*models.Contact, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(substring)
	var matches []*models.Contact
	for _, contact := range contacts {
		if strings.Contains(strings.ToLower(contact.Name), needle) {
			matches = append(matches, contact)
		}
	}
	return matches, nil
}

// FindByEmail returns the contact with the given email, or nil when absent.
func (s *DirectoryService) FindByEmail(ctx context.Context, email string) (*models.Contact, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, contact := range contacts {
		if strings.EqualFold(contact.Email, email) {
			return contact, nil
		}
	}
	return nil, nil
}

// Search returns the contacts matching the query as a substring of name,
// email, department, or role.
func (s *DirectoryService) Search(ctx context.Context, query string) ([]*models.Contact, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []*models.Contact
	for _, contact := range contacts {
		if strings.Contains(strings.ToLower(contact.Name), needle) ||
			strings.Contains(strings.ToLower(contact.Email), needle) ||
			strings.Contains(strings.ToLower(contact.Department), needle) ||
			strings.Contains(strings.ToLower(contact.Role), needle) {
			matches = append(matches, contact)
		}
	}
	return matches, nil
}

// ResolveParticipant resolves a human name reference to directory contacts
// using tiered matching. The precedence matters: an exact full-name match
// short-circuits, a department hint filters first-name matches, a single
// first-name match wins, and substring matching is the last resort. Callers
// treat a multi-contact result as an ambiguity to surface to the user.
func (s *DirectoryService) ResolveParticipant(ctx context.Context, name, department string) ([]*models.Contact, error) {
	exact, err := s.FindByExactName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exact != nil {
		return []*models.Contact{exact}, nil
	}

	firstNameMatches, err := s.FindByFirstName(ctx, name)
	if err != nil {
		return nil, err
	}

	if department != "" {
		filtered := filterByDepartment(firstNameMatches, department)
		if len(filtered) > 0 {
			return filtered, nil
		}
	}

	if len(firstNameMatches) == 1 {
		return firstNameMatches, nil
	}

	substringMatches, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if department != "" {
		filtered := filterByDepartment(substringMatches, department)
		if len(filtered) > 0 {
			return filtered, nil
		}
	}

	if len(substringMatches) > 0 {
		return substringMatches, nil
	}
	return firstNameMatches, nil
}

// filterByDepartment keeps contacts whose department matches
// case-insensitively.
func filterByDepartment(contacts []*models.Contact, department string) []*models.Contact {
	var filtered []*models.Contact
	for _, contact := range contacts {
		if strings.EqualFold(contact.Department, department) {
			filtered = append(filtered, contact)
		}
	}
	return filtered
}
