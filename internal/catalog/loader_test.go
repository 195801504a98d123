package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/DanNess-system/Jardin-Infinito/internal/wordpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWP struct {
	entries    []map[string]any
	media      map[int]map[string]any
	mediaCalls atomic.Int64
	listStatus int
}

func (f *fakeWP) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/wp-json/wp/v2/media/"):
			f.mediaCalls.Add(1)
			id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2/media/"))
			m, ok := f.media[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(m)
		default:
			if f.listStatus != 0 {
				w.WriteHeader(f.listStatus)
				return
			}
			json.NewEncoder(w).Encode(f.entries)
		}
	})
}

func newTestLoader(t *testing.T, fake *fakeWP) *Loader {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLoader(wordpress.NewClient(server.URL, "", "", log), log, 4)
}

func entry(id int, title string, acf map[string]any) map[string]any {
	return map[string]any{
		"id":      id,
		"title":   map[string]string{"rendered": title},
		"content": map[string]string{"rendered": fmt.Sprintf("<p>%s descripcion</p>", title)},
		"acf":     acf,
	}
}

func mediaRecord(id int, url, alt string) map[string]any {
	return map[string]any{
		"id":         id,
		"source_url": url,
		"alt_text":   alt,
		"title":      map[string]string{"rendered": "media-" + strconv.Itoa(id)},
	}
}

func TestLoadNormalizesEntries(t *testing.T) {
	t.Parallel()

	fake := &fakeWP{
		entries: []map[string]any{
			func() map[string]any {
				e := entry(1, "Hule Tinto", map[string]any{
					"precio":              "600",
					"precio_descuento":    450.0,
					"categoria":           []any{"Interior", "Hogar"},
					"stock":               "10",
					"producto_destacado":  true,
					"descripcion_corta":   "Hojas anchas",
					"imagen_adicional_1":  7.0,
					"imagen_adicional_2":  "",
					"imagen_adicional_3":  "abc",
					"imagen_adicional_10": 8.0,
				})
				e["featured_media"] = 5
				return e
			}(),
		},
		media: map[int]map[string]any{
			5: mediaRecord(5, "https://cdn.example.com/main.jpg", "Hule"),
			7: mediaRecord(7, "https://cdn.example.com/extra1.jpg", ""),
			8: mediaRecord(8, "https://cdn.example.com/extra2.jpg", "Otra"),
		},
	}
	loader := newTestLoader(t, fake)

	result, err := loader.Load(context.Background(), Products, Options{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, 1, item.ID)
	assert.Equal(t, "Hule Tinto", item.Title)
	assert.Equal(t, "Hule Tinto descripcion", item.Description)
	assert.Equal(t, 600.0, item.OriginalPrice)
	assert.Equal(t, 450.0, item.DiscountPrice)
	// arrays collapse to their first element
	assert.Equal(t, "Interior", item.Category)
	assert.Equal(t, 10, item.Stock)
	assert.True(t, item.Featured)
	assert.Equal(t, "Hojas anchas", item.ShortDescription)

	// featured image first, then the additional slots in order; the empty
	// and non-numeric slots vanish
	assert.Equal(t, "https://cdn.example.com/main.jpg", item.Image)
	require.Len(t, item.AdditionalImages, 2)
	assert.Equal(t, "https://cdn.example.com/extra1.jpg", item.AdditionalImages[0].URL)
	assert.Equal(t, "https://cdn.example.com/extra2.jpg", item.AdditionalImages[1].URL)

	// alt falls back to the media title when empty
	assert.Equal(t, "media-7", item.AdditionalImages[0].Alt)

	assert.Equal(t, []string{"Todas", "Interior"}, result.Categories)
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	fake := &fakeWP{
		entries: []map[string]any{
			entry(2, "Planta Misteriosa", map[string]any{}),
		},
	}
	loader := newTestLoader(t, fake)

	result, err := loader.Load(context.Background(), Products, Options{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, DefaultImage, item.Image)
	assert.Equal(t, 0.0, item.OriginalPrice)
	assert.Equal(t, "General", item.Category)
	assert.False(t, item.Featured)
	// no descripcion_corta means an excerpt of the content
	assert.Equal(t, "Planta Misteriosa descripcion", item.ShortDescription)

	// featured_media 0 means no media request at all
	assert.Equal(t, int64(0), fake.mediaCalls.Load())
}

func TestLoadEmptyDescriptionFallback(t *testing.T) {
	t.Parallel()

	fake := &fakeWP{
		entries: []map[string]any{
			{
				"id":      3,
				"title":   map[string]string{"rendered": "Sin Texto"},
				"content": map[string]string{"rendered": "<p></p>"},
				"acf":     map[string]any{},
			},
		},
	}
	loader := newTestLoader(t, fake)

	result, err := loader.Load(context.Background(), Products, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Sin descripción", result.Items[0].Description)
}

func TestLoadFilters(t *testing.T) {
	t.Parallel()

	fake := &fakeWP{
		entries: []map[string]any{
			entry(1, "A", map[string]any{"categoria": "Interior", "producto_destacado": true}),
			entry(2, "B", map[string]any{"categoria": "Exterior", "producto_destacado": true}),
			entry(3, "C", map[string]any{"categoria": "Interior"}),
			entry(4, "D", map[string]any{"categoria": "Interior", "producto_destacado": "1"}),
		},
	}
	loader := newTestLoader(t, fake)
	ctx := context.Background()

	result, err := loader.Load(ctx, Products, Options{OnlyFeatured: true})
	require.NoError(t, err)
	assert.Len(t, result.Items, 3)

	result, err = loader.Load(ctx, Products, Options{OnlyFeatured: true, Category: "Interior"})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "A", result.Items[0].Title)
	assert.Equal(t, "D", result.Items[1].Title)

	result, err = loader.Load(ctx, Products, Options{OnlyFeatured: true, Category: "Interior", Limit: 1})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "A", result.Items[0].Title)

	// "Todas" is a no-op filter
	result, err = loader.Load(ctx, Products, Options{Category: AllCategories})
	require.NoError(t, err)
	assert.Len(t, result.Items, 4)

	// categories reflect the filtered set, in first-appearance order
	result, err = loader.Load(ctx, Products, Options{Category: "Exterior"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Todas", "Exterior"}, result.Categories)
}

func TestLoadTagsOnlyForGiftPlants(t *testing.T) {
	t.Parallel()

	acf := map[string]any{"etiqueta": "Regalo", "incluye": "Maceta y moño"}
	fake := &fakeWP{entries: []map[string]any{entry(1, "Kit", acf)}}
	loader := newTestLoader(t, fake)

	result, err := loader.Load(context.Background(), GiftPlants, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Regalo", result.Items[0].Label)
	assert.Equal(t, "Maceta y moño", result.Items[0].Includes)

	fake2 := &fakeWP{entries: []map[string]any{entry(1, "Kit", acf)}}
	loader2 := newTestLoader(t, fake2)

	result, err = loader2.Load(context.Background(), Products, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Items[0].Label)
	assert.Empty(t, result.Items[0].Includes)
}

func TestLoadMediaFailureDegrades(t *testing.T) {
	t.Parallel()

	e := entry(1, "Planta", map[string]any{})
	e["featured_media"] = 404
	fake := &fakeWP{entries: []map[string]any{e}}
	loader := newTestLoader(t, fake)

	result, err := loader.Load(context.Background(), Products, Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultImage, result.Items[0].Image)
	assert.Empty(t, result.Items[0].AdditionalImages)
}

func TestLoadMediaIsCachedPerLoad(t *testing.T) {
	t.Parallel()

	e1 := entry(1, "Primera", map[string]any{})
	e1["featured_media"] = 5
	e2 := entry(2, "Segunda", map[string]any{})
	e2["featured_media"] = 5

	fake := &fakeWP{
		entries: []map[string]any{e1, e2},
		media:   map[int]map[string]any{5: mediaRecord(5, "https://cdn.example.com/a.jpg", "a")},
	}
	loader := newTestLoader(t, fake)

	result, err := loader.Load(context.Background(), Products, Options{})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, int64(1), fake.mediaCalls.Load())
}

func TestLoadUpstreamError(t *testing.T) {
	t.Parallel()

	fake := &fakeWP{listStatus: http.StatusInternalServerError}
	loader := newTestLoader(t, fake)

	_, err := loader.Load(context.Background(), Products, Options{})
	require.Error(t, err)
}

func TestLoadPosts(t *testing.T) {
	t.Parallel()

	fake := &fakeWP{
		entries: []map[string]any{
			{
				"id":             1,
				"title":          map[string]string{"rendered": "Cuidado de suculentas"},
				"excerpt":        map[string]string{"rendered": "<p>" + strings.Repeat("a", 200) + "</p>"},
				"date":           "2024-05-01T10:00:00",
				"featured_media": 5,
				"acf":            map[string]any{"categoria": "Consejos", "tiempo_lectura": "8"},
			},
			{
				"id":      2,
				"title":   map[string]string{"rendered": "Sin extras"},
				"excerpt": map[string]string{"rendered": "<p>breve</p>"},
				"acf":     map[string]any{},
			},
		},
		media: map[int]map[string]any{5: mediaRecord(5, "https://cdn.example.com/post.jpg", "post")},
	}
	loader := newTestLoader(t, fake)

	posts, err := loader.LoadPosts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Cuidado de suculentas", posts[0].Title)
	assert.Equal(t, strings.Repeat("a", 150)+"...", posts[0].Excerpt)
	assert.Equal(t, "https://cdn.example.com/post.jpg", posts[0].Image)
	assert.Equal(t, "Consejos", posts[0].Category)
	assert.Equal(t, 8, posts[0].ReadingTime)

	assert.Equal(t, "breve", posts[1].Excerpt)
	assert.Equal(t, DefaultImage, posts[1].Image)
	assert.Equal(t, 5, posts[1].ReadingTime)
}
