package web

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

//go:embed static/*
var embeddedStaticFS embed.FS

//go:embed templates/*
var embeddedTemplatesFS embed.FS

// StaticFS and TemplatesFS default to the assets compiled into the
// binary. UseDevFS points them at the source tree instead.
var (
	StaticFS    fs.FS = embeddedStaticFS
	TemplatesFS fs.FS = embeddedTemplatesFS
)

// UseDevFS serves templates and static assets from dir so edits show up
// without a rebuild. Dev only.
func UseDevFS(dir string) {
	StaticFS = os.DirFS(dir)
	TemplatesFS = os.DirFS(dir)
}

// SourceDir locates this package's directory in the source tree, for
// dev-mode serving and watching.
func SourceDir() (string, bool) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", false
	}
	return filepath.Dir(file), true
}
