package xsdmodel

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ocxtools/xsdmodel/internal/model"
	"github.com/ocxtools/xsdmodel/internal/parser"
	"github.com/ocxtools/xsdmodel/internal/registry"
	"github.com/ocxtools/xsdmodel/internal/resolver"
	"github.com/ocxtools/xsdmodel/internal/source"
	"github.com/ocxtools/xsdmodel/internal/xmltree"
)

// LoadOptions configures schema loading.
type LoadOptions struct {
	// SkipReferences loads only the root document, ignoring import and
	// include directives.
	SkipReferences bool
	// HTTPClient enables http(s) schema locations.
	HTTPClient *http.Client
	// CacheDir keeps a local copy of every downloaded document, so
	// repeated loads of a remote schema work offline.
	CacheDir string
	// FS overrides the host filesystem for file locations.
	FS fs.FS
}

// Load resolves the schema rooted at location in the given filesystem,
// following imports and includes relative to it.
func Load(fsys fs.FS, location string) (*SchemaModel, error) {
	return LoadWithOptions(context.Background(), location, LoadOptions{FS: fsys})
}

// LoadFile resolves the schema rooted at a file path.
func LoadFile(path string) (*SchemaModel, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	return LoadWithOptions(context.Background(), base, LoadOptions{FS: os.DirFS(dir)})
}

// LoadWithOptions resolves the schema rooted at location, which is either a
// filesystem path or an http(s) URL when an HTTP client is configured.
// Imported and included documents merge into one registry before resolution,
// so cross-document references resolve regardless of load order.
func LoadWithOptions(ctx context.Context, location string, opts LoadOptions) (*SchemaModel, error) {
	opener := &source.Resolver{
		FS:       opts.FS,
		Client:   opts.HTTPClient,
		CacheDir: opts.CacheDir,
	}
	l := &loader{
		opener: opener,
		follow: !opts.SkipReferences,
		seen:   make(map[string]bool),
	}
	m, err := l.load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	return m, nil
}

// Parse resolves a single schema document from a reader. Import and include
// directives are not followed; references into other documents fail as
// unresolved.
func Parse(r io.Reader) (*SchemaModel, error) {
	doc, err := xmltree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	reg, err := newRegistryFor(doc)
	if err != nil {
		return nil, err
	}
	info, err := parser.ParseDocument(reg, doc, "schema")
	if err != nil {
		return nil, err
	}
	return finish(reg, info.Version, info.Changes)
}

type loader struct {
	opener *source.Resolver
	follow bool
	seen   map[string]bool
}

func (l *loader) load(ctx context.Context, location string) (*SchemaModel, error) {
	var (
		reg     *registry.Registry
		version string
		changes []model.SchemaChange
	)

	queue := []string{location}
	for len(queue) > 0 {
		loc := queue[0]
		queue = queue[1:]
		if l.seen[loc] {
			continue
		}
		l.seen[loc] = true

		doc, err := l.parseLocation(ctx, loc)
		if err != nil {
			return nil, err
		}
		if reg == nil {
			if reg, err = newRegistryFor(doc); err != nil {
				return nil, err
			}
		}

		info, err := parser.ParseDocument(reg, doc, loc)
		if err != nil {
			return nil, err
		}
		if version == "" {
			version = info.Version
		}
		changes = append(changes, info.Changes...)

		if !l.follow {
			break
		}
		for _, ref := range info.References {
			queue = append(queue, source.ResolveReference(loc, ref.Location))
		}
	}

	return finish(reg, version, changes)
}

func (l *loader) parseLocation(ctx context.Context, location string) (*xmltree.Document, error) {
	rc, err := l.opener.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	doc, err := xmltree.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse schema document %s: %w", location, err)
	}
	return doc, nil
}

// newRegistryFor builds the registry owning the namespace table, with the
// root document's target namespace as the table's target.
func newRegistryFor(doc *xmltree.Document) (*registry.Registry, error) {
	root, err := doc.Root()
	if err != nil {
		return nil, err
	}
	target := model.NamespaceURI(root.Attr("targetNamespace"))
	return registry.New(model.NewNamespaceTable(target)), nil
}

func finish(reg *registry.Registry, version string, changes []model.SchemaChange) (*SchemaModel, error) {
	m, err := resolver.Resolve(reg)
	if err != nil {
		return nil, err
	}
	if version != "" {
		m.Version = version
	}
	m.Changes = changes
	return m, nil
}
