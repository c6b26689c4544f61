package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chshwong/calorie-sub012/internal/model"
)

type AddExerciseInput struct {
	ExerciseType   string
	CaloriesBurned int
	DurationMin    *int
	PerformedAt    time.Time
	Source         string
	SourceRef      string
	Notes          string
}

func AddExercise(sqldb *sql.DB, in AddExerciseInput) (int64, error) {
	exerciseType := strings.TrimSpace(in.ExerciseType)
	if exerciseType == "" {
		return 0, fmt.Errorf("exercise type is required")
	}
	if in.CaloriesBurned < 0 {
		return 0, fmt.Errorf("calories burned must be >= 0")
	}
	if in.DurationMin != nil && *in.DurationMin <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	if in.PerformedAt.IsZero() {
		in.PerformedAt = time.Now()
	}
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "manual"
	}

	var duration any
	if in.DurationMin != nil {
		duration = *in.DurationMin
	}
	res, err := sqldb.Exec(`
INSERT INTO exercise_logs(exercise_type, calories_burned, duration_min, performed_at, source, source_ref, notes)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, exerciseType, in.CaloriesBurned, duration, in.PerformedAt.Format(time.RFC3339), source, strings.TrimSpace(in.SourceRef), strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("insert exercise log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve exercise log id: %w", err)
	}
	return id, nil
}

// UpsertSyncedExercise inserts or refreshes an externally synced log keyed by
// (source, source_ref), so re-running a sync never duplicates a day.
func UpsertSyncedExercise(sqldb *sql.DB, in AddExerciseInput) error {
	if strings.TrimSpace(in.SourceRef) == "" {
		return fmt.Errorf("source ref is required for synced exercise")
	}
	var duration any
	if in.DurationMin != nil {
		duration = *in.DurationMin
	}
	_, err := sqldb.Exec(`
INSERT INTO exercise_logs(exercise_type, calories_burned, duration_min, performed_at, source, source_ref, notes)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source, source_ref) WHERE source_ref <> '' DO UPDATE SET
  exercise_type = excluded.exercise_type,
  calories_burned = excluded.calories_burned,
  duration_min = excluded.duration_min,
  performed_at = excluded.performed_at,
  notes = excluded.notes,
  updated_at = CURRENT_TIMESTAMP
`, strings.TrimSpace(in.ExerciseType), in.CaloriesBurned, duration, in.PerformedAt.Format(time.RFC3339), strings.TrimSpace(in.Source), strings.TrimSpace(in.SourceRef), strings.TrimSpace(in.Notes))
	if err != nil {
		return fmt.Errorf("upsert synced exercise %s/%s: %w", in.Source, in.SourceRef, err)
	}
	return nil
}

func ListExercise(sqldb *sql.DB, date string) ([]model.ExerciseLog, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return nil, err
	}
	rows, err := sqldb.Query(`
SELECT id, exercise_type, calories_burned, duration_min, performed_at, source, IFNULL(source_ref, ''), IFNULL(notes, '')
FROM exercise_logs
WHERE performed_at >= ? AND performed_at < ?
ORDER BY performed_at DESC
`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list exercise logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.ExerciseLog, 0)
	for rows.Next() {
		var e model.ExerciseLog
		var duration sql.NullInt64
		var performedAtRaw string
		if err := rows.Scan(&e.ID, &e.ExerciseType, &e.CaloriesBurned, &duration, &performedAtRaw, &e.Source, &e.SourceRef, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan exercise log: %w", err)
		}
		performedAt, err := time.Parse(time.RFC3339, performedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse performed_at for exercise log %d: %w", e.ID, err)
		}
		e.PerformedAt = performedAt
		if duration.Valid {
			v := int(duration.Int64)
			e.DurationMin = &v
		}
		logs = append(logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise logs: %w", err)
	}
	return logs, nil
}

func DeleteExercise(sqldb *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("exercise log id must be > 0")
	}
	res, err := sqldb.Exec(`DELETE FROM exercise_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise log %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for exercise log %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise log %d not found", id)
	}
	return nil
}

func ExerciseBurnTotal(sqldb *sql.DB, date string) (int, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return 0, err
	}
	var total int
	err = sqldb.QueryRow(`
SELECT IFNULL(SUM(calories_burned), 0) FROM exercise_logs WHERE performed_at >= ? AND performed_at < ?
`, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total exercise burn for %s: %w", date, err)
	}
	return total, nil
}
