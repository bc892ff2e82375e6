package service

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/cartoolsbd/storefront/internal/events"
	"github.com/cartoolsbd/storefront/internal/logging"
	"github.com/cartoolsbd/storefront/internal/models"
	"github.com/cartoolsbd/storefront/internal/repo"
	"github.com/cartoolsbd/storefront/internal/util"
)

type ContactsService struct {
	Repo   *repo.ContactRepo
	Events events.Publisher
}

// ContactInput is the public contact form; every field is required.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func validateContact(in ContactInput) FieldErrors {
	fe := FieldErrors{}
	if in.Name == "" {
		fe["name"] = "Name is required"
	}
	if in.Email == "" {
		fe["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fe["email"] = "Invalid email"
	}
	if in.Phone == "" {
		fe["phone"] = "Phone number is required"
	}
	if in.Message == "" {
		fe["message"] = "Message is required"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Submit stores one contact message. Messages are write-once; there is no
// update path anywhere.
func (s *ContactsService) Submit(ctx context.Context, in ContactInput) (*models.Contact, error) {
	if fe := validateContact(in); fe != nil {
		return nil, fe
	}

	c := &models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("save contact: %w", err)
	}

	if s.Events != nil {
		event := map[string]any{
			"type":       "contact_received",
			"contact_id": c.ID.String(),
			"email":      c.Email,
		}
		if err := s.Events.Publish(ctx, events.TopicContactEvents, c.ID.String(), event); err != nil {
			logging.FromContext(ctx).Error("publish contact event", "error", err)
		}
	}

	return c, nil
}

func (s *ContactsService) List(ctx context.Context, page, size int) (util.Page[models.Contact], error) {
	offset, limit := util.Calculate(page, size)
	contacts, total, err := s.Repo.List(ctx, offset, limit)
	if err != nil {
		return util.Page[models.Contact]{}, fmt.Errorf("list contacts: %w", err)
	}
	return util.NewPage(contacts, page, size, total), nil
}
