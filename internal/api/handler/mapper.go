package handler

import (
	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		Age:           req.Age,
		Department:    req.Department,
		Sport:         req.Sport,
		ContactNumber: req.ContactNumber,
		ProfilePic:    req.ProfilePic,
	}
}

func toUserSummary(u *domain.User) userSummary {
	return userSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Status:   u.Status,
	}
}

func toUpdateProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		Age:           req.Age,
		Department:    req.Department,
		Sport:         req.Sport,
		ContactNumber: req.ContactNumber,
		ProfilePic:    req.ProfilePic,
	}
}

func toSubmitInput(req submitRegistrationRequest) ports.SubmitRegistrationInput {
	return ports.SubmitRegistrationInput{
		SportID:       req.SportID,
		SportName:     req.Sport,
		FullName:      req.FullName,
		Year:          req.Year,
		Branch:        req.Branch,
		Age:           req.Age,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
	}
}

func toRegistrationList(res *ports.ListRegistrationsResult) registrationListResponse {
	items := res.Items
	if items == nil {
		items = []*domain.Registration{}
	}
	return registrationListResponse{
		Items:      items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	}
}

func toCreateEventInput(req createEventRequest) ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Venue:       req.Venue,
		SportID:     req.SportID,
	}
}
