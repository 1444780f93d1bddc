package client

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"qrkeeper/internal/domain/qrcode"
)

// RecordCache - локальная копия последнего списка QR-кодов.
type RecordCache interface {
	ReplaceAll(items []qrcode.ListItem) error
	Upsert(item qrcode.ListItem) error
	List() ([]qrcode.ListItem, error)
	Close() error
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS qr_codes (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_qr_codes_created ON qr_codes(created_at);
	`)

	return err
}

// ReplaceAll заменяет кэш целиком новым снимком.
func (s *SQLiteStorage) ReplaceAll(items []qrcode.ListItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM qr_codes`); err != nil {
		return fmt.Errorf("ошибка очистки кэша: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO qr_codes (id, kind, payload, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("ошибка сериализации записи %s: %w", item.ID, err)
		}
		if _, err := stmt.Exec(item.ID, item.Kind, string(payload), item.CreatedAt); err != nil {
			return fmt.Errorf("ошибка сохранения записи %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) Upsert(item qrcode.ListItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO qr_codes (id, kind, payload, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, payload = excluded.payload
	`, item.ID, item.Kind, string(payload), item.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения записи: %w", err)
	}
	return nil
}

// List возвращает кэш в порядке сервера: новые первыми.
func (s *SQLiteStorage) List() ([]qrcode.ListItem, error) {
	rows, err := s.db.Query(`SELECT payload FROM qr_codes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей: %w", err)
	}
	defer rows.Close()

	var items []qrcode.ListItem
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		var item qrcode.ListItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("ошибка парсинга записи: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// MemoryStorage - запасной кэш, если SQLite недоступен.
type MemoryStorage struct {
	items []qrcode.ListItem
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) ReplaceAll(items []qrcode.ListItem) error {
	m.items = append([]qrcode.ListItem(nil), items...)
	return nil
}

func (m *MemoryStorage) Upsert(item qrcode.ListItem) error {
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = item
			return nil
		}
	}
	m.items = append([]qrcode.ListItem{item}, m.items...)
	return nil
}

func (m *MemoryStorage) List() ([]qrcode.ListItem, error) {
	return append([]qrcode.ListItem(nil), m.items...), nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
