package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chshwong/calorie-sub012/internal/model"
	"github.com/chshwong/calorie-sub012/internal/nutrition"
)

type AddWaterInput struct {
	Amount   float64
	Unit     string
	LoggedAt time.Time
}

// AddWater accepts any volume unit and normalizes to millilitres through the
// conversion core before persisting.
func AddWater(sqldb *sql.DB, in AddWaterInput) (int64, error) {
	if in.Amount <= 0 {
		return 0, fmt.Errorf("water amount must be > 0")
	}
	unitStr := strings.TrimSpace(in.Unit)
	if unitStr == "" {
		unitStr = "ml"
	}
	amountML, err := nutrition.ConvertVolume(in.Amount, nutrition.ParseUnit(unitStr), nutrition.ParseUnit("ml"))
	if err != nil {
		return 0, fmt.Errorf("water amount: %w", err)
	}
	loggedAt := in.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}
	res, err := sqldb.Exec(`INSERT INTO water_logs(amount_ml, logged_at) VALUES(?, ?)`, amountML, loggedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert water log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve water log id: %w", err)
	}
	return id, nil
}

func ListWater(sqldb *sql.DB, date string) ([]model.WaterLog, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return nil, err
	}
	rows, err := sqldb.Query(`
SELECT id, amount_ml, logged_at FROM water_logs
WHERE logged_at >= ? AND logged_at < ?
ORDER BY logged_at DESC
`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list water logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.WaterLog, 0)
	for rows.Next() {
		var w model.WaterLog
		var loggedAtRaw string
		if err := rows.Scan(&w.ID, &w.AmountML, &loggedAtRaw); err != nil {
			return nil, fmt.Errorf("scan water log: %w", err)
		}
		loggedAt, err := time.Parse(time.RFC3339, loggedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at for water log %d: %w", w.ID, err)
		}
		w.LoggedAt = loggedAt
		logs = append(logs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate water logs: %w", err)
	}
	return logs, nil
}

func WaterTotalML(sqldb *sql.DB, date string) (float64, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return 0, err
	}
	var total float64
	err = sqldb.QueryRow(`
SELECT IFNULL(SUM(amount_ml), 0) FROM water_logs WHERE logged_at >= ? AND logged_at < ?
`, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total water for %s: %w", date, err)
	}
	return total, nil
}
