package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gmelsby/cli-shogi-game/internal/apperror"
	"github.com/gmelsby/cli-shogi-game/internal/entity"
)

// GameResult is the archived record of a finished game.
type GameResult struct {
	GameID        string
	Winner        entity.Color
	BlackCaptured int
	RedCaptured   int
	FinishedAt    time.Time
}

type ArchiveRepository interface {
	Save(ctx context.Context, result *GameResult) error
	FindByGameID(ctx context.Context, gameID string) (*GameResult, error)
	ListRecent(ctx context.Context, limit int) ([]*GameResult, error)
}

type archiveRepository struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &archiveRepository{
		conn: conn,
	}
}

func (that *archiveRepository) Save(ctx context.Context, result *GameResult) error {
	query := `INSERT INTO finished_games (id, winner, black_captured, red_captured, finished_at) VALUES (?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.GameID,
		string(result.Winner),
		result.BlackCaptured,
		result.RedCaptured,
		result.FinishedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("can't save game result: %w", err)
	}

	return nil
}

func (that *archiveRepository) FindByGameID(ctx context.Context, gameID string) (*GameResult, error) {
	query := `SELECT id, winner, black_captured, red_captured, finished_at FROM finished_games WHERE id = ?`

	result, err := that.scanResult(that.conn.QueryRowContext(ctx, query, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game result: %w", err)
	}

	return result, nil
}

func (that *archiveRepository) ListRecent(ctx context.Context, limit int) ([]*GameResult, error) {
	query := `SELECT id, winner, black_captured, red_captured, finished_at FROM finished_games ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list game results: %w", err)
	}
	defer rows.Close()

	var results []*GameResult
	for rows.Next() {
		result, scanErr := that.scanResult(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("can't scan game result: %w", scanErr)
		}

		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read game results: %w", err)
	}

	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (that *archiveRepository) scanResult(row rowScanner) (*GameResult, error) {
	var result GameResult
	var winner, finishedAt string

	if err := row.Scan(&result.GameID, &winner, &result.BlackCaptured, &result.RedCaptured, &finishedAt); err != nil {
		return nil, err
	}

	result.Winner = entity.Color(winner)

	parsed, err := time.Parse(time.RFC3339, finishedAt)
	if err != nil {
		return nil, fmt.Errorf("can't parse finished_at: %w", err)
	}
	result.FinishedAt = parsed

	return &result, nil
}
