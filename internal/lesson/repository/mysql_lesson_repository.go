package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"lessonstore/internal/domain"
	"lessonstore/internal/errors"
)

// lesson fields map one to one onto Lessons columns
var lessonColumns = map[string]string{
	domain.LessonFieldSubject:            "subject",
	domain.LessonFieldLocation:           "location",
	domain.LessonFieldPrice:              "price",
	domain.LessonFieldAvailableInventory: "availableInventory",
	domain.LessonFieldDescription:        "description",
	domain.LessonFieldImage:              "image",
}

const selectLessons = `
	SELECT id, subject, location, price, availableInventory,
	       COALESCE(description, ''), image
	FROM Lessons`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindAll(ctx context.Context, sort domain.LessonSort) ([]domain.Lesson, error) {
	column, ok := lessonColumns[sort.Field]
	if !ok {
		column = lessonColumns[domain.DefaultLessonSortField]
	}
	direction := "ASC"
	if sort.Direction == domain.SortDescending {
		direction = "DESC"
	}

	query := fmt.Sprintf("%s ORDER BY %s %s, id ASC", selectLessons, column, direction)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying lessons: %w", err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

func (r *MySQLRepository) Search(ctx context.Context, term string) ([]domain.Lesson, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	query := selectLessons + `
	WHERE LOWER(subject) LIKE ?
	   OR LOWER(location) LIKE ?
	   OR LOWER(COALESCE(description, '')) LIKE ?
	   OR CAST(price AS CHAR) LIKE ?
	   OR CAST(availableInventory AS CHAR) LIKE ?
	ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching lessons: %w", err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// Update locks the row, then writes the patch in the same transaction. The
// driver reports changed rows, so an update that writes identical values
// yields 0.
func (r *MySQLRepository) Update(ctx context.Context, id string, patch domain.LessonPatch) (int64, error) {
	lessonID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, errors.NewInternalError(fmt.Sprintf("parsing lesson id %q", id), err)
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return 0, fmt.Errorf("updating lesson: empty patch")
	}

	sets := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+1)
	for _, f := range fields {
		sets = append(sets, lessonColumns[f]+" = ?")
		args = append(args, patch[f])
	}
	args = append(args, lessonID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var found uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM Lessons WHERE id = ? FOR UPDATE`, lessonID).Scan(&found)
	if err == sql.ErrNoRows {
		return 0, errors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", id))
	}
	if err != nil {
		return 0, fmt.Errorf("locking lesson: %w", err)
	}

	query := fmt.Sprintf("UPDATE Lessons SET %s WHERE id = ?", strings.Join(sets, ", "))
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("updating lesson: %w", err)
	}

	modified, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing lesson update: %w", err)
	}

	return modified, nil
}

func (r *MySQLRepository) InsertMany(ctx context.Context, lessons []domain.Lesson) ([]string, error) {
	if len(lessons) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO Lessons (subject, location, price, availableInventory, description, image) VALUES (?, ?, ?, ?, ?, ?)`

	ids := make([]string, 0, len(lessons))
	for _, l := range lessons {
		result, err := tx.ExecContext(ctx, query, l.Subject, l.Location, l.Price, l.AvailableInventory, l.Description, l.Image)
		if err != nil {
			return nil, fmt.Errorf("inserting lesson: %w", err)
		}

		lastInsertID, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("getting last insert id: %w", err)
		}
		ids = append(ids, strconv.FormatInt(lastInsertID, 10))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing lessons: %w", err)
	}

	return ids, nil
}

func (r *MySQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Lessons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting lessons: %w", err)
	}
	return n, nil
}

func scanLessons(rows *sql.Rows) ([]domain.Lesson, error) {
	lessons := []domain.Lesson{}
	for rows.Next() {
		var (
			l  domain.Lesson
			id uint64
		)
		err := rows.Scan(&id, &l.Subject, &l.Location, &l.Price, &l.AvailableInventory, &l.Description, &l.Image)
		if err != nil {
			return nil, fmt.Errorf("scanning lesson row: %w", err)
		}
		l.ID = strconv.FormatUint(id, 10)
		lessons = append(lessons, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lesson rows: %w", err)
	}

	return lessons, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
