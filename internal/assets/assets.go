// Package assets embeds the JavaScript sources that the host bundler compiles
// into the Sigma.js graph component.
package assets

import (
	"embed"
	"io/fs"
)

// Staged asset names, in the order they are copied.
const (
	WrapperJSX = "SigmaGraphWrapper.jsx"
	ViewerJSX  = "SigmaGraphViewer.jsx"
)

// Files lists the assets the stager copies into the host build directory.
var Files = []string{WrapperJSX, ViewerJSX}

//go:embed SigmaGraphWrapper.jsx SigmaGraphViewer.jsx bootstrap.js
var files embed.FS

// FS returns the embedded assets. Entries carry a zero modification time.
func FS() fs.FS {
	return files
}

// BootstrapJS is the browser glue served by the demo server. It mounts every
// rendered component and forwards its events over the live websocket.
var BootstrapJS = mustRead("bootstrap.js")

func mustRead(name string) []byte {
	b, err := files.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return b
}
