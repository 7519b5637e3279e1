package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/information-sharing-networks/pim-catalog/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the postgres Store, built on the sqlc queries in package database.
type PostgresStore struct {
	pool    *pgxpool.Pool
	queries *database.Queries
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		queries: database.New(pool),
	}
}

func (s *PostgresStore) FindOneByIdentifier(ctx context.Context, code string) (*AttributeGroup, error) {
	row, err := s.queries.GetAttributeGroupByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attribute group %q: %w", code, err)
	}
	return s.load(ctx, s.queries, row)
}

// Create stores group, its attributes and its labels in a single transaction.
func (s *PostgresStore) Create(ctx context.Context, group *AttributeGroup) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// rollback is a no-op once the transaction is committed
		_ = tx.Rollback(ctx)
	}()

	txQueries := s.queries.WithTx(tx)

	row, err := txQueries.CreateAttributeGroup(ctx, database.CreateAttributeGroupParams{
		ID:        group.ID,
		Code:      group.Code,
		SortOrder: int64(group.SortOrder),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrCodeAlreadyUsed
		}
		return fmt.Errorf("failed to create attribute group: %w", err)
	}

	if len(group.Attributes) > 0 {
		// an attribute belongs to at most one group
		if err := txQueries.TouchAttributeGroupsOfAttributes(ctx, group.Attributes); err != nil {
			return fmt.Errorf("failed to update the previous group of the attributes: %w", err)
		}
		if err := txQueries.DetachAttributes(ctx, group.Attributes); err != nil {
			return fmt.Errorf("failed to detach attributes from their previous group: %w", err)
		}
	}
	for i, code := range group.Attributes {
		err := txQueries.AddAttributeToGroup(ctx, database.AddAttributeToGroupParams{
			AttributeGroupID: row.ID,
			AttributeCode:    code,
			Position:         int32(i),
		})
		if err != nil {
			return fmt.Errorf("failed to add attribute %q: %w", code, err)
		}
	}

	for _, locale := range group.LabelLocales() {
		label := group.Labels[locale]
		if label == "" {
			continue
		}
		err := txQueries.CreateAttributeGroupLabel(ctx, database.CreateAttributeGroupLabelParams{
			AttributeGroupID: row.ID,
			Locale:           locale,
			Label:            label,
		})
		if err != nil {
			return fmt.Errorf("failed to add label %q: %w", locale, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	group.Created = row.Created
	group.Updated = row.Updated
	return nil
}

func (s *PostgresStore) List(ctx context.Context, offset, limit int) ([]AttributeGroup, error) {
	rows, err := s.queries.ListAttributeGroups(ctx, database.ListAttributeGroupsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attribute groups: %w", err)
	}

	groups := make([]AttributeGroup, 0, len(rows))
	for _, row := range rows {
		group, err := s.load(ctx, s.queries, row)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	n, err := s.queries.CountAttributeGroups(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count attribute groups: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStore) LocaleExists(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	exists, err := s.queries.LocaleExists(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to look up locale %q: %w", code, err)
	}
	return exists, nil
}

func (s *PostgresStore) AttributeExists(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	exists, err := s.queries.AttributeExists(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to look up attribute %q: %w", code, err)
	}
	return exists, nil
}

func (s *PostgresStore) AddLocale(ctx context.Context, code string, activated bool) error {
	if code == "" {
		return fmt.Errorf("locale code cannot be empty")
	}
	return s.queries.UpsertLocale(ctx, database.UpsertLocaleParams{Code: code, Activated: activated})
}

func (s *PostgresStore) AddAttribute(ctx context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("attribute code cannot be empty")
	}
	return s.queries.UpsertAttribute(ctx, code)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if _, err := s.queries.IsDatabaseRunning(ctx); err != nil {
		return fmt.Errorf("database is not available: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// load adds the attributes and labels of a stored group.
func (s *PostgresStore) load(ctx context.Context, q *database.Queries, row database.AttributeGroup) (*AttributeGroup, error) {
	attributes, err := q.GetAttributeGroupAttributes(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attributes of %q: %w", row.Code, err)
	}
	if attributes == nil {
		attributes = []string{}
	}

	labelRows, err := q.GetAttributeGroupLabels(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get labels of %q: %w", row.Code, err)
	}
	labels := make(map[string]string, len(labelRows))
	for _, l := range labelRows {
		labels[l.Locale] = l.Label
	}

	return &AttributeGroup{
		ID:         row.ID,
		Code:       row.Code,
		SortOrder:  int(row.SortOrder),
		Attributes: attributes,
		Labels:     labels,
		Created:    row.Created,
		Updated:    row.Updated,
	}, nil
}
