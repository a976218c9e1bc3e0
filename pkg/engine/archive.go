// Package engine - 可选的sqlite样本归档
// CSV面向单次会话，归档库则跨会话累积原始样本，便于长期回溯
package engine

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Kevin-Rudy/pingtrend/pkg/core"
)

// Archive 把每个采样周期的原始值写入sqlite数据库
type Archive struct {
	db *sql.DB
}

// OpenArchive 打开（必要时创建）归档数据库
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("无法打开归档数据库 %s: %w", path, err)
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS samples (
    name     TEXT    NOT NULL,
    address  TEXT    NOT NULL,
    at       INTEGER NOT NULL,
    latency  REAL
);
CREATE INDEX IF NOT EXISTS idx_samples_at ON samples(at);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("无法初始化归档表: %w", err)
	}

	return &Archive{db: db}, nil
}

// RecordCycle 写入一个周期的所有目标样本
// 缺失样本（NaN）存为NULL，与0ms的合法测量值区分
func (a *Archive) RecordCycle(at time.Time, targets []core.Target, values []float64) error {
	if a == nil || a.db == nil {
		return nil
	}

	tx, err := a.db.Begin()
	if err != nil {
		return err
	}

	for i, target := range targets {
		var latency interface{}
		if !math.IsNaN(values[i]) {
			latency = values[i]
		}
		if _, err := tx.Exec(
			`INSERT INTO samples(name, address, at, latency) VALUES (?,?,?,?)`,
			target.Name, target.Address, at.UnixMicro(), latency,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// CountSamples 返回归档中的样本总数，主要用于测试和状态展示
func (a *Archive) CountSamples() (int, error) {
	if a == nil || a.db == nil {
		return 0, nil
	}

	var count int
	err := a.db.QueryRow(`SELECT COUNT(*) FROM samples`).Scan(&count)
	return count, err
}

// Close 关闭数据库
// 对已关闭或从未打开的归档调用是安全的
func (a *Archive) Close() {
	if a == nil || a.db == nil {
		return
	}
	a.db.Close()
	a.db = nil
}
