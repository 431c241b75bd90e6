package domain

import "strings"

type Lesson struct {
	ID                 string
	Subject            string
	Location           string
	Price              float64
	AvailableInventory int
	Description        string
	Image              string

	// Document holds the lesson exactly as a schemaless store returned it,
	// with _id rendered as text. It is nil for fixed-schema stores.
	Document map[string]interface{}
}

// Lesson field names as stored and as accepted on the wire.
const (
	LessonFieldID                 = "_id"
	LessonFieldSubject            = "subject"
	LessonFieldLocation           = "location"
	LessonFieldPrice              = "price"
	LessonFieldAvailableInventory = "availableInventory"
	LessonFieldDescription        = "description"
	LessonFieldImage              = "image"
)

// DefaultLessonSortField is used when sortBy is omitted or not sortable.
const DefaultLessonSortField = LessonFieldSubject

var sortableLessonFields = map[string]struct{}{
	LessonFieldSubject:            {},
	LessonFieldLocation:           {},
	LessonFieldPrice:              {},
	LessonFieldAvailableInventory: {},
	LessonFieldDescription:        {},
}

// IsSortableLessonField reports whether lessons may be ordered by field.
func IsSortableLessonField(field string) bool {
	_, ok := sortableLessonFields[field]
	return ok
}

type SortDirection int

const (
	SortAscending  SortDirection = 1
	SortDescending SortDirection = -1
)

type LessonSort struct {
	Field     string
	Direction SortDirection
}

// ParseLessonSort maps the sortBy/order query pair to a LessonSort. Only
// "desc" selects descending order.
func ParseLessonSort(sortBy, order string) LessonSort {
	field := strings.TrimSpace(sortBy)
	if !IsSortableLessonField(field) {
		field = DefaultLessonSortField
	}

	direction := SortAscending
	if strings.EqualFold(strings.TrimSpace(order), "desc") {
		direction = SortDescending
	}

	return LessonSort{Field: field, Direction: direction}
}

// LessonPatch holds validated field values for a partial lesson update,
// keyed by lesson field name.
type LessonPatch map[string]interface{}

// Fields returns the patched field names in a stable order.
func (p LessonPatch) Fields() []string {
	fields := make([]string, 0, len(p))
	for _, f := range UpdatableLessonFields {
		if _, ok := p[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// UpdatableLessonFields lists every field a partial update may touch. The
// identifier is not among them.
var UpdatableLessonFields = []string{
	LessonFieldSubject,
	LessonFieldLocation,
	LessonFieldPrice,
	LessonFieldAvailableInventory,
	LessonFieldDescription,
	LessonFieldImage,
}
