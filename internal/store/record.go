package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// RecordStore is the write side of the list backend: add/update by id plus a
// minimal odata-style equality filter ("Field eq 'value'").
type RecordStore interface {
	Add(ctx context.Context, listName string, fields Item) (uint64, error)
	Update(ctx context.Context, listName string, id uint64, fields Item) error
	GetByID(ctx context.Context, listName string, id uint64) (Item, error)
	Filter(ctx context.Context, listName string, filter string) ([]Item, error)
}

type RecordStoreImpl struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) RecordStore {
	return &RecordStoreImpl{db: db}
}

func (s *RecordStoreImpl) Add(ctx context.Context, listName string, fields Item) (uint64, error) {
	table, err := tableFor(listName)
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, fmt.Errorf("no fields to insert into %s", listName)
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if err := checkIdent(col); err != nil {
			return 0, err
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	placeholders := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		placeholders = append(placeholders, "?")
		args = append(args, fields[col])
	}

	var id uint64
	err = s.db.WithContext(ctx).Raw(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	), args...).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *RecordStoreImpl) Update(ctx context.Context, listName string, id uint64, fields Item) error {
	table, err := tableFor(listName)
	if err != nil {
		return err
	}
	for col := range fields {
		if err := checkIdent(col); err != nil {
			return err
		}
	}
	return s.db.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		Updates(map[string]any(fields)).Error
}

func (s *RecordStoreImpl) GetByID(ctx context.Context, listName string, id uint64) (Item, error) {
	table, err := tableFor(listName)
	if err != nil {
		return nil, err
	}
	var row map[string]any
	err = s.db.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return Item(row), nil
}

func (s *RecordStoreImpl) Filter(ctx context.Context, listName string, filter string) ([]Item, error) {
	table, err := tableFor(listName)
	if err != nil {
		return nil, err
	}

	column, value, err := parseEqFilter(filter)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	err = s.db.WithContext(ctx).
		Table(table).
		Where(fmt.Sprintf("%s = ?", column), value).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item(row))
	}
	return items, nil
}

// parseEqFilter accepts "Field eq 'text'" or "Field eq 42".
func parseEqFilter(filter string) (string, any, error) {
	parts := strings.SplitN(strings.TrimSpace(filter), " eq ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("unsupported filter %q", filter)
	}

	column := strings.TrimSpace(parts[0])
	if err := checkIdent(column); err != nil {
		return "", nil, err
	}

	raw := strings.TrimSpace(parts[1])
	if strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") && len(raw) >= 2 {
		return column, strings.Trim(raw, "'"), nil
	}

	var n int64
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return "", nil, fmt.Errorf("unsupported filter value %q", raw)
	}
	return column, n, nil
}
