// Package store 把扫描历史落到 MySQL，配置了 DSN 才启用。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/padicalls/padiscan/src/internal/scanner"
)

type Store struct {
	db *sql.DB
}

// ScanRecord 是 scan_history 表的一行
type ScanRecord struct {
	ID        int64
	Address   string
	Name      string
	Symbol    string
	Verdict   string
	Honeypot  string
	BuyTax    string
	SellTax   string
	CreatedAt time.Time
}

// Open 建连接池并自动迁移表结构
func Open(ctx context.Context, dsn string) (*Store, error) {
	// created_at 扫描成 time.Time 依赖 parseTime
	if !strings.Contains(dsn, "parseTime") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "parseTime=true"
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	if err := autoMigrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// autoMigrate 自动检查并创建所需的表
func autoMigrate(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS scan_history (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    address VARCHAR(42) NOT NULL COMMENT 'Token Contract Address',
    name VARCHAR(128) NOT NULL COMMENT 'Token Name',
    symbol VARCHAR(64) NOT NULL COMMENT 'Token Symbol',
    verdict VARCHAR(64) NOT NULL COMMENT 'Ownership Verdict',
    honeypot VARCHAR(32) NOT NULL COMMENT 'Honeypot Verdict',
    buy_tax VARCHAR(16) NOT NULL DEFAULT 'N/A',
    sell_tax VARCHAR(16) NOT NULL DEFAULT 'N/A',
    created_at DATETIME NOT NULL,
    INDEX idx_address (address),
    INDEX idx_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate scan_history: %w", err)
	}
	return nil
}

// SaveScan 记录一次扫描的摘要字段
func (s *Store) SaveScan(ctx context.Context, r *scanner.ScanReport, verdict, honeypot, buyTax, sellTax string) error {
	const q = `INSERT INTO scan_history
		(address, name, symbol, verdict, honeypot, buy_tax, sell_tax, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		r.Address, r.Metadata.Name, r.Metadata.Symbol,
		verdict, honeypot, buyTax, sellTax, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert scan_history: %w", err)
	}
	return nil
}

// History 按时间倒序取一个地址的最近扫描记录
func (s *Store) History(ctx context.Context, address string, limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `SELECT id, address, name, symbol, verdict, honeypot, buy_tax, sell_tax, created_at
		FROM scan_history WHERE address = ? ORDER BY created_at DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, address, limit)
	if err != nil {
		return nil, fmt.Errorf("query scan_history: %w", err)
	}
	defer rows.Close()

	var out []ScanRecord
	for rows.Next() {
		var r ScanRecord
		if err := rows.Scan(&r.ID, &r.Address, &r.Name, &r.Symbol, &r.Verdict,
			&r.Honeypot, &r.BuyTax, &r.SellTax, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
