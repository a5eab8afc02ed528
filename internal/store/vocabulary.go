package store

import (
	"context"

	"gorm.io/gorm"
)

// Item is one row of a list, keyed by column name.
type Item map[string]any

type FetchOptions struct {
	// Columns to project; empty means all.
	Select []string
	// Page bound; the controlled lists fit well below it.
	Top int
}

// VocabularyStore reads the controlled vocabulary lists.
type VocabularyStore interface {
	Fetch(ctx context.Context, listName string, opts FetchOptions) ([]Item, error)
}

type VocabularyStoreImpl struct {
	db *gorm.DB
}

func NewVocabularyStore(db *gorm.DB) VocabularyStore {
	return &VocabularyStoreImpl{db: db}
}

func (s *VocabularyStoreImpl) Fetch(ctx context.Context, listName string, opts FetchOptions) ([]Item, error) {
	table, err := tableFor(listName)
	if err != nil {
		return nil, err
	}

	for _, col := range opts.Select {
		if err := checkIdent(col); err != nil {
			return nil, err
		}
	}

	query := s.db.WithContext(ctx).Table(table)
	if len(opts.Select) > 0 {
		query = query.Select(opts.Select)
	}
	if opts.Top > 0 {
		query = query.Limit(opts.Top)
	}

	var rows []map[string]any
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item(row))
	}
	return items, nil
}
