package request

import (
	"strings"

	"course-enrollment/internal/usecase/commands"
	"course-enrollment/internal/usecase/queries"
)

type CreateClassRequest struct {
	Name            string `json:"name" binding:"required"`
	ImageURL        string `json:"imageUrl"`
	InstructorName  string `json:"instructorName" binding:"required"`
	InstructorEmail string `json:"instructorEmail" binding:"omitempty,email"`
	PriceCents      int64  `json:"priceCents" binding:"gte=0"`
	AvailableSeat   int    `json:"availableSeat" binding:"gte=0"`
}

func (r CreateClassRequest) ToInput() commands.CreateClassInput {
	return commands.CreateClassInput{
		Name:            strings.TrimSpace(r.Name),
		ImageURL:        strings.TrimSpace(r.ImageURL),
		InstructorName:  strings.TrimSpace(r.InstructorName),
		InstructorEmail: strings.TrimSpace(r.InstructorEmail),
		PriceCents:      r.PriceCents,
		AvailableSeat:   r.AvailableSeat,
	}
}

type ListClassesQuery struct {
	Status          string `form:"status" binding:"omitempty,oneof=Pending Approved Denied"`
	InstructorEmail string `form:"instructorEmail" binding:"omitempty,email"`
	Limit           int    `form:"limit" binding:"omitempty,gte=1"`
}

func (q ListClassesQuery) ToFilter() queries.ClassFilter {
	return queries.ClassFilter{
		Status:          q.Status,
		InstructorEmail: q.InstructorEmail,
		Limit:           q.Limit,
	}
}
