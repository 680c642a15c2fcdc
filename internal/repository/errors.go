package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/repository/dao"
)

// translateErr turns driver and DAO errors into domain errors. Errors that are
// already domain errors pass through untouched.
func translateErr(err error) error {
	if err == nil {
		return nil
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}

	switch {
	case errors.Is(err, dao.ErrBoardNotFound):
		return &domain.Error{Kind: domain.ErrNotFound, Code: domain.CodeBoardNotFound, Message: "board not found", Cause: err}
	case errors.Is(err, dao.ErrSquareNotFound):
		return &domain.Error{Kind: domain.ErrNotFound, Code: domain.CodeSquareNotFound, Message: "square not found", Cause: err}
	case errors.Is(err, dao.ErrGameNotFound):
		return &domain.Error{Kind: domain.ErrNotFound, Code: domain.CodeGameNotFound, Message: "game not found", Cause: err}
	case errors.Is(err, dao.ErrAlreadyPlaced):
		return &domain.Error{Kind: domain.ErrState, Code: domain.CodeAlreadyAssigned, Message: "square already placed on the grid", Cause: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return domain.Conflict(err)
		case pgerrcode.UniqueViolation:
			// Two writers raced on a unique slot, such as a grid position or
			// a game number. The loser retries and re-reads.
			return domain.Conflict(err)
		}
	}

	return domain.Internal(domain.CodeInternal, err)
}
