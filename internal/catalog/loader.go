package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanNess-system/Jardin-Infinito/internal/wordpress"
	"golang.org/x/sync/errgroup"
)

// AllCategories is the sentinel that heads every category list and disables
// category filtering.
const AllCategories = "Todas"

// DefaultImage is the placeholder shown when no media resolves.
const DefaultImage = "/JardinInfinito.png"

const (
	defaultConcurrency = 8
	collectionPageSize = 100
	excerptLimit       = 150
	defaultReadingTime = 5
)

type Loader struct {
	wp          *wordpress.Client
	log         *slog.Logger
	concurrency int
}

// NewLoader builds a loader. concurrency caps how many entries resolve their
// media at the same time; <=0 picks the default.
func NewLoader(wp *wordpress.Client, log *slog.Logger, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Loader{wp: wp, log: log, concurrency: concurrency}
}

// Options are the listing filters, applied in declaration order:
// featured first, then category, then the count limit.
type Options struct {
	OnlyFeatured bool
	Category     string
	Limit        int
}

// Result is a loaded, filtered listing plus the distinct categories of its
// items for the filter bar, headed by the AllCategories sentinel.
type Result struct {
	Items      []Item   `json:"data"`
	Categories []string `json:"categories"`
}

// Load fetches a collection and turns every record into an Item. Media for
// the batch resolves concurrently, bounded by the loader's concurrency cap;
// one record's bad image or field never fails the load.
func (l *Loader) Load(ctx context.Context, col Collection, opts Options) (*Result, error) {
	entries, err := l.wp.ListEntries(ctx, col.Slug, wordpress.ListOptions{PerPage: collectionPageSize})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", col.Slug, err)
	}

	items := make([]Item, len(entries))
	media := newMediaResolver(l.wp, l.log)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for idx := range entries {
		idx := idx
		g.Go(func() error {
			items[idx] = l.buildItem(gctx, media, col, &entries[idx])
			return nil
		})
	}
	// buildItem never returns an error; degraded items are the policy
	_ = g.Wait()

	filtered := applyFilters(items, opts)
	return &Result{Items: filtered, Categories: categoriesOf(filtered)}, nil
}

func (l *Loader) buildItem(ctx context.Context, media *mediaResolver, col Collection, entry *wordpress.Entry) Item {
	item := Item{
		ID:               entry.ID,
		Title:            entry.Title.Rendered,
		Description:      description(entry.Content.Rendered),
		Image:            DefaultImage,
		OriginalPrice:    wordpress.Number(entry.ACF[col.PriceKey]),
		DiscountPrice:    wordpress.Number(entry.ACF[col.DiscountKey]),
		Category:         wordpress.CategoryOr(entry.ACF["categoria"], col.CategoryFallback),
		Stock:            int(wordpress.Number(entry.ACF["stock"])),
		ShortDescription: wordpress.String(entry.ACF["descripcion_corta"]),
		Featured:         wordpress.Bool(entry.ACF[col.FeaturedKey]),
	}
	if item.ShortDescription == "" {
		item.ShortDescription = wordpress.Excerpt(entry.Content.Rendered, excerptLimit)
	}
	if col.HasTags {
		item.Label = wordpress.String(entry.ACF["etiqueta"])
		item.Includes = wordpress.String(entry.ACF["incluye"])
	}

	if images := media.resolveAll(ctx, entry, col.ImageSlots); len(images) > 0 {
		item.Image = images[0].URL
		item.AdditionalImages = images[1:]
	}
	return item
}

// LoadPosts fetches the blog collection and normalizes it into posts.
func (l *Loader) LoadPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 6
	}
	entries, err := l.wp.ListEntries(ctx, "blog", wordpress.ListOptions{PerPage: limit})
	if err != nil {
		return nil, fmt.Errorf("loading blog: %w", err)
	}

	posts := make([]Post, len(entries))
	media := newMediaResolver(l.wp, l.log)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for idx := range entries {
		idx := idx
		g.Go(func() error {
			entry := &entries[idx]
			post := Post{
				ID:          entry.ID,
				Title:       entry.Title.Rendered,
				Excerpt:     wordpress.Excerpt(entry.Excerpt.Rendered, excerptLimit),
				Image:       DefaultImage,
				Date:        entry.Date,
				Category:    wordpress.CategoryOr(entry.ACF["categoria"], ""),
				ReadingTime: int(wordpress.NumberOr(entry.ACF["tiempo_lectura"], defaultReadingTime)),
			}
			if img := media.resolve(gctx, entry.FeaturedMedia); img != nil {
				post.Image = img.URL
			}
			posts[idx] = post
			return nil
		})
	}
	_ = g.Wait()

	return posts, nil
}

func applyFilters(items []Item, opts Options) []Item {
	filtered := items
	if opts.OnlyFeatured {
		filtered = keep(filtered, func(i Item) bool { return i.Featured })
	}
	if opts.Category != "" && opts.Category != AllCategories {
		filtered = keep(filtered, func(i Item) bool { return i.Category == opts.Category })
	}
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}
	return filtered
}

func keep(items []Item, pred func(Item) bool) []Item {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if pred(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

// categoriesOf lists the distinct categories of the final item set, in first
// appearance order, behind the AllCategories sentinel.
func categoriesOf(items []Item) []string {
	categories := []string{AllCategories}
	seen := map[string]bool{}
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories
}

func description(html string) string {
	if s := wordpress.StripHTML(html); s != "" {
		return s
	}
	return "Sin descripción"
}
