package labeling

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"meeting-summaries-backend/internal/store"
)

// NRTitle is the "Not Required" sentinel entry every element and
// sub-discipline vocabulary must carry.
const NRTitle = "NR"

// Catalog holds the six controlled vocabularies, deduplicated and ready for
// cascade filtering. It is loaded once and read-only afterward.
type Catalog struct {
	WorkPackages     []WorkPackage    `json:"workPackages"`
	Phases           []Phase          `json:"phases"`
	DesignStages     []DesignStage    `json:"designStages"`
	Elements         []Element        `json:"elements"`
	SubDisciplines   []SubDiscipline  `json:"subDisciplines"`
	DocumentStatuses []DocumentStatus `json:"documentStatuses"`
}

// ElementNR returns the element sentinel substituted for rows whose work
// package requires an element that was never picked.
func (c *Catalog) ElementNR() *Element {
	for i := range c.Elements {
		if c.Elements[i].Title == NRTitle {
			return &c.Elements[i]
		}
	}
	return nil
}

// SubDisciplineNR returns the sub-discipline sentinel.
func (c *Catalog) SubDisciplineNR() *SubDiscipline {
	for i := range c.SubDisciplines {
		if c.SubDisciplines[i].Title == NRTitle {
			return &c.SubDisciplines[i]
		}
	}
	return nil
}

type CatalogLoader struct {
	vocabularies store.VocabularyStore
	top          int
}

func NewCatalogLoader(vocabularies store.VocabularyStore, top int) *CatalogLoader {
	return &CatalogLoader{vocabularies: vocabularies, top: top}
}

// Load fetches all six vocabulary lists concurrently and waits for their
// joint completion. On fetch failure the affected vocabulary stays empty and
// the first error is returned alongside the partially populated catalog; the
// caller treats missing vocabularies as empty option lists.
func (l *CatalogLoader) Load(ctx context.Context) (*Catalog, error) {
	catalog := &Catalog{}

	// Plain group: a failed list must not cancel its siblings.
	var g errgroup.Group

	g.Go(func() error {
		items, err := l.vocabularies.Fetch(ctx, store.ListWorkPackages, store.FetchOptions{
			Select: []string{"id", "title"},
			Top:    l.top,
		})
		if err != nil {
			return fmt.Errorf("fetch %s: %w", store.ListWorkPackages, err)
		}
		all := make([]WorkPackage, 0, len(items))
		for _, item := range items {
			all = append(all, WorkPackage{ID: itemID(item), Title: itemString(item, "title")})
		}
		deduped := dedupeBy(all, func(wp WorkPackage) string { return wp.Title })
		kept := make([]WorkPackage, 0, len(deduped))
		for _, wp := range deduped {
			if !contains(excludedCatalogWorkPackages, wp.Title) {
				kept = append(kept, wp)
			}
		}
		catalog.WorkPackages = kept
		return nil
	})

	g.Go(func() error {
		items, err := l.vocabularies.Fetch(ctx, store.ListPhases, store.FetchOptions{
			Select: []string{"id", "title", "wp_type"},
			Top:    l.top,
		})
		if err != nil {
			return fmt.Errorf("fetch %s: %w", store.ListPhases, err)
		}
		all := make([]Phase, 0, len(items))
		for _, item := range items {
			all = append(all, Phase{
				ID:     itemID(item),
				Title:  itemString(item, "title"),
				WPType: WPType(itemString(item, "wp_type")),
			})
		}
		catalog.Phases = dedupeBy(all, func(p Phase) string { return p.Title })
		return nil
	})

	g.Go(func() error {
		items, err := l.vocabularies.Fetch(ctx, store.ListDesignStages, store.FetchOptions{
			Select: []string{"id", "title", "wp_type", "phases"},
			Top:    l.top,
		})
		if err != nil {
			return fmt.Errorf("fetch %s: %w", store.ListDesignStages, err)
		}
		all := make([]DesignStage, 0, len(items))
		for _, item := range items {
			all = append(all, DesignStage{
				ID:     itemID(item),
				Title:  itemString(item, "title"),
				WPType: WPType(itemString(item, "wp_type")),
				Phases: splitPhases(itemString(item, "phases")),
			})
		}
		catalog.DesignStages = dedupeBy(all, func(ds DesignStage) string { return ds.Title })
		return nil
	})

	g.Go(func() error {
		items, err := l.vocabularies.Fetch(ctx, store.ListElements, store.FetchOptions{
			Select: []string{"id", "title", "wp", "location", "element_code", "element_name", "element_type", "element_name_and_code"},
			Top:    l.top,
		})
		if err != nil {
			return fmt.Errorf("fetch %s: %w", store.ListElements, err)
		}
		all := make([]Element, 0, len(items))
		for _, item := range items {
			all = append(all, Element{
				ID:                 itemID(item),
				Title:              itemString(item, "title"),
				WP:                 itemString(item, "wp"),
				Location:           itemString(item, "location"),
				ElementCode:        itemString(item, "element_code"),
				ElementName:        itemString(item, "element_name"),
				ElementType:        itemString(item, "element_type"),
				ElementNameAndCode: itemString(item, "element_name_and_code"),
			})
		}
		// Elements dedupe on the composite display code, not on Title.
		catalog.Elements = dedupeBy(all, func(e Element) string { return e.ElementNameAndCode })
		return nil
	})

	g.Go(func() error {
		items, err := l.vocabularies.Fetch(ctx, store.ListSubDisciplines, store.FetchOptions{
			Select: []string{"id", "title", "discipline", "discipline_value", "sub_discipline"},
			Top:    l.top,
		})
		if err != nil {
			return fmt.Errorf("fetch %s: %w", store.ListSubDisciplines, err)
		}
		all := make([]SubDiscipline, 0, len(items))
		for _, item := range items {
			all = append(all, SubDiscipline{
				ID:              itemID(item),
				Title:           itemString(item, "title"),
				Discipline:      itemString(item, "discipline"),
				DisciplineValue: itemString(item, "discipline_value"),
				SubDiscipline:   itemString(item, "sub_discipline"),
			})
		}
		catalog.SubDisciplines = dedupeBy(all, func(sd SubDiscipline) string { return sd.SubDiscipline })
		return nil
	})

	g.Go(func() error {
		items, err := l.vocabularies.Fetch(ctx, store.ListDocumentStatus, store.FetchOptions{
			Select: []string{"id", "title"},
			Top:    l.top,
		})
		if err != nil {
			return fmt.Errorf("fetch %s: %w", store.ListDocumentStatus, err)
		}
		all := make([]DocumentStatus, 0, len(items))
		for _, item := range items {
			all = append(all, DocumentStatus{ID: itemID(item), Title: itemString(item, "title")})
		}
		catalog.DocumentStatuses = dedupeBy(all, func(ds DocumentStatus) string { return ds.Title })
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("[CATALOG] vocabulary load incomplete: %v", err)
		return catalog, err
	}

	// The NR sentinel is a load-time invariant: payload building substitutes
	// it for required-but-missing selections and has no fallback.
	if catalog.ElementNR() == nil {
		return catalog, fmt.Errorf("elements vocabulary has no %q sentinel entry", NRTitle)
	}
	if catalog.SubDisciplineNR() == nil {
		return catalog, fmt.Errorf("sub-disciplines vocabulary has no %q sentinel entry", NRTitle)
	}

	return catalog, nil
}

// dedupeBy keeps the first item for each key, preserving order. Items with an
// empty key are dropped.
func dedupeBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, item)
	}
	return result
}

func splitPhases(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	phases := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			phases = append(phases, trimmed)
		}
	}
	return phases
}

func itemString(item store.Item, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}

// itemID tolerates the integer types different drivers scan ids into.
func itemID(item store.Item) uint64 {
	switch v := item["id"].(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case int:
		return uint64(v)
	case float64:
		return uint64(v)
	}
	return 0
}
