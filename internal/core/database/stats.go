package database

import (
	"context"

	"gorm.io/gorm"
)

// Stats 连接池画像，启动时打一次日志用
type Stats struct {
	MaxConn     int
	Used        int
	Free        int
	Active      int
	Idle        int
	IdleInTxn   int
	Utilization int // 百分比
}

// CollectStats 读 pg_settings / pg_stat_activity 给出连接可见性。
// 仅 postgres 有效；mysql 返回零值。
func CollectStats(ctx context.Context, db *gorm.DB) (Stats, error) {
	var s Stats

	if db.Dialector.Name() != "postgres" {
		return s, nil
	}

	row := db.WithContext(ctx).Raw(`
		SELECT
			setting::int AS max_conn,
			(SELECT count(*) FROM pg_stat_activity WHERE state IS NOT NULL) AS used
		FROM pg_settings WHERE name = 'max_connections'`).Row()
	if err := row.Scan(&s.MaxConn, &s.Used); err != nil {
		return s, err
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT COALESCE(state, 'unknown') AS state, count(*) AS count
		FROM pg_stat_activity
		WHERE pid != pg_backend_pid()
		GROUP BY state`).Rows()
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return s, err
		}
		switch state {
		case "active":
			s.Active = count
		case "idle":
			s.Idle = count
		case "idle in transaction":
			s.IdleInTxn = count
		}
	}

	s.Free = s.MaxConn - s.Used
	if s.MaxConn > 0 {
		s.Utilization = s.Used * 100 / s.MaxConn
	}
	return s, rows.Err()
}
