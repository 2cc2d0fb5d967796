package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jkow/earmark"
	"github.com/jkow/earmark/goquery"
	"github.com/jkow/earmark/mock"
	"github.com/jkow/earmark/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCatalog = `
sources:
  - name: mysite
    base_url: https://audiobooks.example.com
    kind: selector
    rules:
      search:
        url: "/?s={query}"
        item_container_selector: "article.post"
        title_selector: "h2.entry-title a"
      details:
        author_selector: "div.entry-content > p:nth-of-type(1) > a"
        description_selector: "div.entry-content p"
        cover_image_url_selector: "img.book-cover"
        chapter_container_selector: "audio.wp-audio-shortcode"
        chapter_url_selector: "source"
  - name: librivox
    kind: archive
`

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads a valid catalog", func(t *testing.T) {
		t.Parallel()

		catalog, err := yaml.NewLoader(goquery.NewValidator()).Load([]byte(validCatalog))
		require.NoError(t, err)

		assert.Equal(t, []string{"mysite", "librivox"}, catalog.Names())

		def, err := catalog.Lookup("mysite")
		require.NoError(t, err)
		assert.Equal(t, earmark.KindSelector, def.Kind)
		assert.Equal(t, earmark.ContentTypeAudiobook, def.ContentType)
		require.NotNil(t, def.Rules)
		assert.Equal(t, "/?s={query}", def.Rules.Search.URL)
		require.NotNil(t, def.Rules.Details.CoverImageURLSelector)
		assert.Equal(t, "img.book-cover", *def.Rules.Details.CoverImageURLSelector)
		assert.Nil(t, def.Rules.Details.ChapterTitleSelector, "absent optional selector stays nil")

		archive, err := catalog.Lookup("librivox")
		require.NoError(t, err)
		assert.Equal(t, earmark.KindArchive, archive.Kind)
		assert.Nil(t, archive.Rules)
	})

	t.Run("legacy custom kind maps to selector", func(t *testing.T) {
		t.Parallel()

		raw := `
sources:
  - name: oldsite
    base_url: https://example.com
    kind: custom
    rules:
      search:
        url: "/search?q={query}"
        item_container_selector: "div.result"
        title_selector: "a.title"
      details:
        author_selector: "span.author"
        description_selector: "div.desc"
        chapter_container_selector: "li.chapter"
        chapter_url_selector: "a"
`
		catalog, err := yaml.NewLoader(nil).Load([]byte(raw))
		require.NoError(t, err)
		def, err := catalog.Lookup("oldsite")
		require.NoError(t, err)
		assert.Equal(t, earmark.KindSelector, def.Kind)
	})

	t.Run("malformed YAML is ECONFIG", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.NewLoader(nil).Load([]byte("sources: [not: closed"))
		require.Error(t, err)
		assert.Equal(t, earmark.ECONFIG, earmark.ErrorCode(err))
	})

	t.Run("missing required selector field is ECONFIG", func(t *testing.T) {
		t.Parallel()

		raw := `
sources:
  - name: broken
    base_url: https://example.com
    rules:
      search:
        url: "/?s={query}"
        item_container_selector: "article"
        title_selector: "h2 a"
      details:
        description_selector: "div.desc"
        chapter_container_selector: "audio"
        chapter_url_selector: "source"
`
		_, err := yaml.NewLoader(nil).Load([]byte(raw))
		require.Error(t, err)
		assert.Equal(t, earmark.ECONFIG, earmark.ErrorCode(err))
		assert.Contains(t, earmark.ErrorMessage(err), "author_selector")
	})

	t.Run("statically malformed selector is ESELECTOR", func(t *testing.T) {
		t.Parallel()

		raw := `
sources:
  - name: badsel
    base_url: https://example.com
    rules:
      search:
        url: "/?s={query}"
        item_container_selector: "article["
        title_selector: "h2 a"
      details:
        author_selector: "span.author"
        description_selector: "div.desc"
        chapter_container_selector: "audio"
        chapter_url_selector: "source"
`
		_, err := yaml.NewLoader(goquery.NewValidator()).Load([]byte(raw))
		require.Error(t, err)
		assert.Equal(t, earmark.ESELECTOR, earmark.ErrorCode(err))
		assert.Contains(t, earmark.ErrorMessage(err), "badsel")
	})

	t.Run("validator receives every configured selector", func(t *testing.T) {
		t.Parallel()

		var seen []string
		validator := &mock.SelectorValidator{
			ValidateSelectorFn: func(expr string) error {
				seen = append(seen, expr)
				return nil
			},
		}

		_, err := yaml.NewLoader(validator).Load([]byte(validCatalog))
		require.NoError(t, err)
		assert.Contains(t, seen, "article.post")
		assert.Contains(t, seen, "img.book-cover")
		assert.Contains(t, seen, "source")
	})

	t.Run("duplicate source names are ECONFIG", func(t *testing.T) {
		t.Parallel()

		raw := `
sources:
  - name: librivox
    kind: archive
  - name: librivox
    kind: archive
`
		_, err := yaml.NewLoader(nil).Load([]byte(raw))
		require.Error(t, err)
		assert.Equal(t, earmark.ECONFIG, earmark.ErrorCode(err))
	})
}

func TestLoader_LoadFile(t *testing.T) {
	t.Parallel()

	t.Run("loads from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validCatalog), 0o644))

		catalog, err := yaml.NewLoader(goquery.NewValidator()).LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, catalog.Names(), 2)
	})

	t.Run("missing file is ECONFIG", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.NewLoader(nil).LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, earmark.ECONFIG, earmark.ErrorCode(err))
	})
}
