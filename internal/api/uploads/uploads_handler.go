// Package uploads serves stored profile pictures read-only.
package uploads

import (
	"net/http"
	"path"
)

// Handler serves the files in dir under prefix. Directories answer 404
// instead of a listing, and every regular file is served under its own
// name, index.html included.
func Handler(prefix, dir string) http.Handler {
	root := http.Dir(dir)
	return http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, err := root.Open(path.Clean("/" + r.URL.Path))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil || stat.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)
	}))
}
