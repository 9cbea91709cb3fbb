package openaccount

import (
	"io/fs"

	vanilla "github.com/goliatone/go-openaccount/pkg/renderers/vanilla"
)

// AssetsFS exposes the embedded stylesheet so applications can serve it
// without shipping files of their own.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(openaccount.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
