package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/pagesnap"
	"github.com/fwojciec/pagesnap/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<main id="PAGES_CONTAINER"><h1>New in</h1><h2>Ankara</h2><p>Hand made in Lagos.</p></main>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# New in")
		assert.Contains(t, md, "## Ankara")
		assert.Contains(t, md, "Hand made in Lagos.")
	})

	t.Run("keeps relative links without domain", func(t *testing.T) {
		t.Parallel()

		html := `<p>Visit the <a href="/shop">shop</a>.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[shop](/shop)")
	})

	t.Run("resolves relative links against domain", func(t *testing.T) {
		t.Parallel()

		html := `<p>Visit the <a href="/shop">shop</a>.</p>`

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://www.femibyjojo.com"))
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[shop](https://www.femibyjojo.com/shop)")
	})

	t.Run("converts unordered lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Dresses</li><li>Tops</li><li>Bags</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- Dresses")
		assert.Contains(t, md, "- Tops")
		assert.Contains(t, md, "- Bags")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Size</th><th>Bust</th></tr></thead>
<tbody><tr><td>S</td><td>86</td></tr><tr><td>M</td><td>91</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Size")
		assert.Contains(t, md, "Bust")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("drops scripts", func(t *testing.T) {
		t.Parallel()

		html := `<div><script>window.wix = {}</script><p>Shop now</p></div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "Shop now", md)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  \n")

		require.Error(t, err)
		assert.Equal(t, pagesnap.EINVALID, pagesnap.ErrorCode(err))
	})
}
