package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
)

func extract(t *testing.T, input string) string {
	t.Helper()
	text, err := New().Extract(context.Background(), &domain.RawDocument{Content: []byte(input)})
	require.NoError(t, err)
	return text
}

func TestExtractor_SupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()
	assert.Contains(t, mimeTypes, "text/html")
	assert.Contains(t, mimeTypes, "application/xhtml+xml")
}

func TestExtractor_Priority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestExtractor_Extract_Document(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>Ignored title</title><style>body { color: red; }</style></head>
<body>
  <h1>Wind   Energy</h1>
  <p>Turbines &amp; blades</p>
  <script>var rotor = 1;</script>
  <!-- hidden comment -->
  <ul><li>offshore</li><li>onshore</li></ul>
</body>
</html>`

	assert.Equal(t, "Wind Energy\nTurbines & blades\noffshore\nonshore", extract(t, input))
}

func TestExtractor_Extract_Breaks(t *testing.T) {
	assert.Equal(t, "line one\nline two", extract(t, "line one<br/>line two"))
	assert.Equal(t, "above\nbelow", extract(t, "above<hr>below"))
}

func TestExtractor_Extract_InlineTagsJoin(t *testing.T) {
	assert.Equal(t, "a bold claim", extract(t, "<span>a <b>bold</b> claim</span>"))
}

func TestExtractor_Extract_Empty(t *testing.T) {
	assert.Empty(t, extract(t, "<html><head></head><body><script>x()</script></body></html>"))
}

func TestExtractor_Extract_Nil(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
