package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"qrkeeper/internal/domain/qrcode"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type QRCodeRepository struct {
	pool *pgxpool.Pool
	node *snowflake.Node
	log  *slog.Logger
}

func NewQRCodeRepository(pool *pgxpool.Pool, node *snowflake.Node, log *slog.Logger) *QRCodeRepository {
	return &QRCodeRepository{
		pool: pool,
		node: node,
		log:  log.With("component", "qrcode_repository"),
	}
}

const qrCodeColumns = `id, owner_id, kind, content_type, raw_value, encoded_value,
		       destination_url, fg_color, bg_color, logo_ref, logo_size,
		       created_at, updated_at`

// ReserveID выдает короткий base58 идентификатор, уникальный в пределах узла.
func (r *QRCodeRepository) ReserveID(_ context.Context) (string, error) {
	if r.node == nil {
		return "", fmt.Errorf("snowflake node is not configured")
	}
	return r.node.Generate().Base58(), nil
}

func (r *QRCodeRepository) Create(ctx context.Context, rec *qrcode.Record) error {
	const query = `
		INSERT INTO qr_codes (id, owner_id, kind, content_type, raw_value, encoded_value,
		                      destination_url, fg_color, bg_color, logo_ref, logo_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var (
		destination sql.NullString
		logoRef     sql.NullString
		logoSize    sql.NullInt32
	)
	if rec.Kind == qrcode.KindDynamic {
		destination = sql.NullString{String: rec.DestinationURL, Valid: true}
	}
	if rec.Logo != nil {
		logoRef = sql.NullString{String: rec.Logo.ImageRef, Valid: rec.Logo.ImageRef != ""}
		logoSize = sql.NullInt32{Int32: int32(rec.Logo.SizePx), Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.OwnerID, rec.Kind, rec.ContentType, rec.RawValue, rec.EncodedValue,
		destination, rec.Style.ForegroundColor, rec.Style.BackgroundColor, logoRef, logoSize,
		rec.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to insert qr code", "id", rec.ID, "owner_id", rec.OwnerID, "error", err)
		return fmt.Errorf("insert qr code: %w", err)
	}

	return nil
}

func (r *QRCodeRepository) List(ctx context.Context, ownerID int) ([]qrcode.Record, error) {
	query := `
		SELECT ` + qrCodeColumns + `
		FROM qr_codes
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("failed to list qr codes", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list qr codes: %w", err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

func (r *QRCodeRepository) Get(ctx context.Context, id string) (*qrcode.Record, error) {
	query := `
		SELECT ` + qrCodeColumns + `
		FROM qr_codes
		WHERE id = $1`

	rec, err := r.scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, qrcode.ErrNotFound
		}
		r.log.Error("failed to get qr code", "id", id, "error", err)
		return nil, fmt.Errorf("get qr code: %w", err)
	}

	return rec, nil
}

// UpdateDestination не трогает остальные колонки. Последняя запись побеждает.
func (r *QRCodeRepository) UpdateDestination(ctx context.Context, id, destination string, updatedAt time.Time) error {
	const query = `
		UPDATE qr_codes
		SET destination_url = $2, updated_at = $3
		WHERE id = $1 AND kind = 'dynamic'`

	tag, err := r.pool.Exec(ctx, query, id, destination, updatedAt)
	if err != nil {
		r.log.Error("failed to update destination", "id", id, "error", err)
		return fmt.Errorf("update destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return qrcode.ErrNotFound
	}

	return nil
}

func (r *QRCodeRepository) scanRecords(rows pgx.Rows) ([]qrcode.Record, error) {
	var records []qrcode.Record

	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

func (r *QRCodeRepository) scanRecord(row pgx.Row) (*qrcode.Record, error) {
	var (
		rec         qrcode.Record
		destination sql.NullString
		logoRef     sql.NullString
		logoSize    sql.NullInt32
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.Kind, &rec.ContentType, &rec.RawValue, &rec.EncodedValue,
		&destination, &rec.Style.ForegroundColor, &rec.Style.BackgroundColor, &logoRef, &logoSize,
		&rec.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.DestinationURL = destination.String
	if logoSize.Valid {
		rec.Logo = &qrcode.Logo{ImageRef: logoRef.String, SizePx: int(logoSize.Int32)}
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		rec.UpdatedAt = &t
	}

	return &rec, nil
}
