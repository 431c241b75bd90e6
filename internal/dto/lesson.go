package dto

import (
	"encoding/json"

	"lessonstore/internal/domain"
)

type LessonDTO struct {
	ID                 string  `json:"_id"`
	Subject            string  `json:"subject"`
	Location           string  `json:"location"`
	Price              float64 `json:"price"`
	AvailableInventory int     `json:"availableInventory"`
	Description        string  `json:"description"`
	Image              string  `json:"image,omitempty"`

	document map[string]interface{}
}

// MarshalJSON writes the stored document unchanged when the lesson came from
// a schemaless store, and the typed fields otherwise.
func (d LessonDTO) MarshalJSON() ([]byte, error) {
	if d.document != nil {
		return json.Marshal(d.document)
	}
	type typedLesson LessonDTO
	return json.Marshal(typedLesson(d))
}

type UpdateLessonResponse struct {
	Success       bool  `json:"success"`
	ModifiedCount int64 `json:"modifiedCount"`
}

func NewLessonDTO(l domain.Lesson) LessonDTO {
	return LessonDTO{
		ID:                 l.ID,
		Subject:            l.Subject,
		Location:           l.Location,
		Price:              l.Price,
		AvailableInventory: l.AvailableInventory,
		Description:        l.Description,
		Image:              l.Image,
		document:           l.Document,
	}
}

// NewLessonDTOs never returns nil so an empty catalog encodes as [].
func NewLessonDTOs(lessons []domain.Lesson) []LessonDTO {
	out := make([]LessonDTO, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, NewLessonDTO(l))
	}
	return out
}
