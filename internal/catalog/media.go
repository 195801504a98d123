package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/DanNess-system/Jardin-Infinito/internal/wordpress"
)

// mediaResolver looks media ids up and remembers the answers — including the
// failures — for the duration of one loader invocation. Nothing is cached
// across loads.
type mediaResolver struct {
	wp  *wordpress.Client
	log *slog.Logger

	mu    sync.Mutex
	cache map[int]*Image
}

func newMediaResolver(wp *wordpress.Client, log *slog.Logger) *mediaResolver {
	return &mediaResolver{wp: wp, log: log, cache: make(map[int]*Image)}
}

// resolve maps one media reference to an Image. Zero, empty and non-numeric
// references return nil without touching the network; lookup failures return
// nil too, never an error — a missing image must not sink the whole batch.
func (r *mediaResolver) resolve(ctx context.Context, ref any) *Image {
	id, ok := wordpress.MediaID(ref)
	if !ok {
		return nil
	}

	r.mu.Lock()
	if img, seen := r.cache[id]; seen {
		r.mu.Unlock()
		return img
	}
	r.mu.Unlock()

	img := r.fetch(ctx, id)

	r.mu.Lock()
	r.cache[id] = img
	r.mu.Unlock()
	return img
}

func (r *mediaResolver) fetch(ctx context.Context, id int) *Image {
	media, err := r.wp.GetMedia(ctx, id)
	if err != nil {
		var apiErr *wordpress.APIError
		if errors.As(err, &apiErr) {
			r.log.Warn("Could not fetch media", "id", id, "status", apiErr.StatusCode)
		} else {
			r.log.Error("Media request failed", "id", id, "error", err)
		}
		return nil
	}

	if media.SourceURL == "" {
		r.log.Warn("Media has no usable URL", "id", id)
		return nil
	}

	alt := media.AltText
	if alt == "" {
		alt = media.Title.Rendered
	}
	title := media.Title.Rendered
	if title == "" {
		title = fmt.Sprintf("Imagen %d", id)
	}
	return &Image{URL: media.SourceURL, Alt: alt, Title: title}
}

// resolveAll gathers an entry's featured image plus its additional image
// slots, in slot order, skipping every reference that fails to resolve. The
// result is never padded.
func (r *mediaResolver) resolveAll(ctx context.Context, entry *wordpress.Entry, slots int) []Image {
	var images []Image
	if img := r.resolve(ctx, entry.FeaturedMedia); img != nil {
		images = append(images, *img)
	}
	for _, ref := range entry.AdditionalImageRefs(slots) {
		if img := r.resolve(ctx, ref); img != nil {
			images = append(images, *img)
		}
	}
	return images
}
