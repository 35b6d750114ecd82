package db

import (
	"context"
	"fmt"

	"plant-irrigation-api/irrigation"
)

func (s *Store) InsertBoard(ctx context.Context, board irrigation.Board) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, "INSERT INTO boards (board_id) VALUES ($1)", board.BoardID)
	if err != nil {
		return classify("failed to create board", err)
	}
	return nil
}

func (s *Store) GetBoard(ctx context.Context, boardID int64) (*irrigation.Board, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var board irrigation.Board
	err := s.db.QueryRowContext(ctx, "SELECT board_id FROM boards WHERE board_id = $1", boardID).Scan(&board.BoardID)
	if err != nil {
		return nil, classify(fmt.Sprintf("failed to get board %d", boardID), err)
	}
	return &board, nil
}

func (s *Store) ListBoards(ctx context.Context) ([]irrigation.Board, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT board_id FROM boards ORDER BY board_id")
	if err != nil {
		return nil, classify("failed to query boards", err)
	}
	defer rows.Close()

	boards := []irrigation.Board{}
	for rows.Next() {
		var board irrigation.Board
		if err := rows.Scan(&board.BoardID); err != nil {
			return nil, classify("failed to scan board", err)
		}
		boards = append(boards, board)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("error iterating boards", err)
	}
	return boards, nil
}

func (s *Store) DeleteBoard(ctx context.Context, boardID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE plants
		SET board_id = NULL, moisture = NULL, temperature = NULL, light = NULL
		WHERE board_id = $1
	`, boardID); err != nil {
		return classify("failed to release board binding", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM boards WHERE board_id = $1", boardID)
	if err != nil {
		return classify("failed to delete board", err)
	}
	if err := requireAffected(result, fmt.Sprintf("board %d", boardID)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify("failed to commit board deletion", err)
	}
	return nil
}
