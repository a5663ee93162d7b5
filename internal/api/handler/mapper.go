package handler

import (
	"time"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

// --- Request → domain ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Channel:  domain.Channel(req.Channel),
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
		Code:     req.Code,
	}
}

func toBusiness(req businessRequest) domain.Business {
	return domain.Business{
		Name:        req.Name,
		Owner:       req.Owner,
		Category:    req.Category,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Website:     req.Website,
	}
}

func toMeeting(req meetingRequest) domain.Meeting {
	return domain.Meeting{
		Title:       req.Title,
		Type:        req.Type,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Description: req.Description,
	}
}

func toAchievement(req achievementRequest) domain.Achievement {
	return domain.Achievement{
		Person:      req.Person,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}
}

// --- domain → Response ---

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
