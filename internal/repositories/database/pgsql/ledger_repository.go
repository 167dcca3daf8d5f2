package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	"github.com/sgca/treasury_backend/internal/models"
	"github.com/sgca/treasury_backend/internal/utils/mapping"
	"github.com/sgca/treasury_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryWithTx
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryWithTx) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, account_id, kind, amount, occurred_at, description, category_id, recorded_by, created_at, created_by, last_updated_at, last_updated_by`

func scanEntryRow(row pgx.Row) (*models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.Kind,
		&m.Amount,
		&m.OccurredAt,
		&m.Description,
		&m.CategoryID,
		&m.RecordedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateEntry inserts a new entry and applies delta to the account's cached
// balance. The entry insert and the balance update happen in one database
// transaction with the account row locked, so concurrent writers to the same
// account serialize and no update is lost.
func (r *PgxLedgerRepository) CreateEntry(ctx context.Context, entry domain.Entry, delta domain.Money) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer r.Rollback(ctx, tx) // Ignored if the transaction commits

		if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, entry.AccountID); err != nil {
			return err
		}

		m := mapping.ToModelEntry(entry)
		query := `
			INSERT INTO entries (entry_id, account_id, kind, amount, occurred_at, description, category_id, recorded_by, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err = tx.Exec(ctx, query,
			m.EntryID,
			m.AccountID,
			m.Kind,
			m.Amount,
			m.OccurredAt,
			m.Description,
			m.CategoryID,
			m.RecordedBy,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: entry with ID %s already exists", apperrors.ErrDuplicate, m.EntryID)
			}
			return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
		}

		if err := r.accountRepo.ApplyBalanceDeltaInTx(ctx, tx, entry.AccountID, delta, entry.LastUpdatedBy); err != nil {
			return err
		}

		return r.Commit(ctx, tx)
	})
}

// lockEntryDelta reads the stored entry's kind and amount inside the
// transaction, locking the row, and returns the entry's current signed effect
// on the balance. Reversals must be derived from this in-transaction state,
// never from a read taken before the unit began.
func (r *PgxLedgerRepository) lockEntryDelta(ctx context.Context, tx pgx.Tx, accountID, entryID string) (domain.Money, error) {
	query := `SELECT kind, amount FROM entries WHERE entry_id = $1 AND account_id = $2 FOR UPDATE;`

	var kind models.EntryKind
	var amount decimal.Decimal
	if err := tx.QueryRow(ctx, query, entryID, accountID).Scan(&kind, &amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ZeroMoney(), apperrors.NewNotFoundError("entry " + entryID + " not found")
		}
		return domain.ZeroMoney(), fmt.Errorf("failed to lock entry %s: %w", entryID, err)
	}
	return domain.MoneyFromStorage(amount).Signed(domain.EntryKind(kind)), nil
}

// UpdateEntry replaces the stored entry and applies the reversal of the
// stored state followed by the new entry's delta to the account balance, all
// within one transaction. The account row lock is taken first, then the entry
// row lock, so concurrent mutations of the same entry serialize and each one
// reverses exactly the state it replaces.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.Entry) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer r.Rollback(ctx, tx)

		if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, entry.AccountID); err != nil {
			return err
		}

		storedDelta, err := r.lockEntryDelta(ctx, tx, entry.AccountID, entry.EntryID)
		if err != nil {
			return err
		}

		m := mapping.ToModelEntry(entry)
		query := `
			UPDATE entries
			SET kind = $3, amount = $4, occurred_at = $5, description = $6, category_id = $7, last_updated_at = $8, last_updated_by = $9
			WHERE entry_id = $1 AND account_id = $2;
		`
		cmdTag, err := tx.Exec(ctx, query,
			m.EntryID,
			m.AccountID,
			m.Kind,
			m.Amount,
			m.OccurredAt,
			m.Description,
			m.CategoryID,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("entry " + m.EntryID + " not found for update")
		}

		if err := r.accountRepo.ApplyBalanceDeltaInTx(ctx, tx, entry.AccountID, storedDelta.Neg(), entry.LastUpdatedBy); err != nil {
			return err
		}
		if err := r.accountRepo.ApplyBalanceDeltaInTx(ctx, tx, entry.AccountID, entry.Delta(), entry.LastUpdatedBy); err != nil {
			return err
		}

		return r.Commit(ctx, tx)
	})
}

// DeleteEntry removes the entry and reverses its effect on the account
// balance within one transaction. The reversal is computed from the stored
// row locked inside the unit, not from any state the caller read earlier.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, accountID, entryID, deletedBy string) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer r.Rollback(ctx, tx)

		if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID); err != nil {
			return err
		}

		storedDelta, err := r.lockEntryDelta(ctx, tx, accountID, entryID)
		if err != nil {
			return err
		}

		query := `DELETE FROM entries WHERE entry_id = $1 AND account_id = $2;`
		if _, err := tx.Exec(ctx, query, entryID, accountID); err != nil {
			return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
		}

		if err := r.accountRepo.ApplyBalanceDeltaInTx(ctx, tx, accountID, storedDelta.Neg(), deletedBy); err != nil {
			return err
		}

		return r.Commit(ctx, tx)
	})
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	m, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainEntry(*m)
	return &entry, nil
}

// ScanEntries retrieves all entries for an account within [from, to], both
// ends inclusive, newest first with entry_id as tie-breaker.
func (r *PgxLedgerRepository) ScanEntries(ctx context.Context, accountID string, from, to time.Time) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE account_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at DESC, entry_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for account %s: %w", accountID, err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for account %s: %w", accountID, err)
	}

	return mapping.ToDomainEntrySlice(entries), nil
}

// ListEntries retrieves a paginated list of entries for an account using
// token-based pagination. It returns the entries, a token for the next page,
// and an error.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20 // Or a configurable default
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE account_id = $1
	`
	// Ordering is crucial and must be stable. entry_id is a UUID and sorts
	// lexicographically in Postgres, which gives a deterministic tie-break.
	orderByClause := `ORDER BY occurred_at DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `AND (occurred_at, entry_id) < ($2, $3)`
		args = append(args, lastOccurredAt, lastEntryID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.Entry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points to the last item included in this response page;
		// the next query starts after it.
		lastEntry := modelEntries[limit-1]
		token := pagination.EncodeToken(lastEntry.OccurredAt, lastEntry.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainEntrySlice(results), nextTokenVal, nil
}

// SumEntries recomputes the account balance from the full entry log.
func (r *PgxLedgerRepository) SumEntries(ctx context.Context, accountID string) (domain.Money, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM entries
		WHERE account_id = $1;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return domain.ZeroMoney(), fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}
	return domain.MoneyFromStorage(sum), nil
}
