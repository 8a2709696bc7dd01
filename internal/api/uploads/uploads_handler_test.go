package uploads

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.png"), []byte("PNGDATA"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "ann.jpg"), []byte("JPEGDATA"), 0o644))
	return dir
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_ServesFiles(t *testing.T) {
	h := Handler("/uploads/", setupDir(t))

	rec := get(h, "/uploads/default.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PNGDATA", rec.Body.String())

	rec = get(h, "/uploads/nested/ann.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "JPEGDATA", rec.Body.String())
}

func TestHandler_MissingFile(t *testing.T) {
	h := Handler("/uploads/", setupDir(t))

	assert.Equal(t, http.StatusNotFound, get(h, "/uploads/nobody.png").Code)
}

func TestHandler_NoDirectoryListing(t *testing.T) {
	h := Handler("/uploads/", setupDir(t))

	rec := get(h, "/uploads/nested/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ann.jpg")

	assert.Equal(t, http.StatusNotFound, get(h, "/uploads/").Code)
}

func TestHandler_NoTraversal(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("s3cr3t"), 0o600))
	dir := filepath.Join(parent, "uploads")
	require.NoError(t, os.Mkdir(dir, 0o755))

	rec := get(Handler("/uploads/", dir), "/uploads/../secret.txt")
	assert.NotContains(t, rec.Body.String(), "s3cr3t")
}

func TestHandler_ServesIndexHTMLByName(t *testing.T) {
	dir := setupDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>hi</p>"), 0o644))
	h := Handler("/uploads/", dir)

	rec := get(h, "/uploads/index.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>hi</p>", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, get(h, "/uploads").Code)
}

func TestHandler_ContentType(t *testing.T) {
	h := Handler("/uploads/", setupDir(t))

	rec := get(h, "/uploads/nested/ann.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
}
