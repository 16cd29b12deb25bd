package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xsderrors "github.com/ocxtools/xsdmodel/errors"
)

func TestOpenFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/main.xsd": &fstest.MapFile{Data: []byte("<schema/>")},
	}
	r := &Resolver{FS: fsys}

	rc, err := r.Open(context.Background(), "schemas/main.xsd")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "<schema/>", string(data))
}

func TestOpenMissingFileFailsWithLocation(t *testing.T) {
	r := &Resolver{FS: fstest.MapFS{}}

	_, err := r.Open(context.Background(), "schemas/ghost.xsd")

	var unavailable *xsderrors.SourceUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "schemas/ghost.xsd", unavailable.Location)
}

func TestRemoteDisabledWithoutClient(t *testing.T) {
	r := &Resolver{}

	_, err := r.Open(context.Background(), "https://example.org/schema.xsd")

	var unavailable *xsderrors.SourceUnavailable
	require.ErrorAs(t, err, &unavailable)
}

func TestRemoteFetchAndCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits++
		io.WriteString(w, "<schema/>")
	}))
	defer srv.Close()

	r := &Resolver{Client: srv.Client(), CacheDir: t.TempDir()}

	read := func() string {
		rc, err := r.Open(context.Background(), srv.URL+"/ocx.xsd")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, "<schema/>", read())
	assert.Equal(t, "<schema/>", read())
	assert.Equal(t, 1, hits, "second read must come from the cache")

	// With the cache populated, no client is needed at all.
	offline := &Resolver{CacheDir: r.CacheDir}
	rc, err := offline.Open(context.Background(), srv.URL+"/ocx.xsd")
	require.NoError(t, err)
	rc.Close()
}

func TestRemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.NotFound(w, req)
	}))
	defer srv.Close()

	r := &Resolver{Client: srv.Client()}
	_, err := r.Open(context.Background(), srv.URL+"/ghost.xsd")

	var unavailable *xsderrors.SourceUnavailable
	require.ErrorAs(t, err, &unavailable)
}

func TestResolveReference(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{
			name: "relative file against file",
			base: "schemas/main.xsd",
			ref:  "unitsml.xsd",
			want: "schemas/unitsml.xsd",
		},
		{
			name: "parent directory",
			base: "schemas/v3/main.xsd",
			ref:  "../shared/types.xsd",
			want: "schemas/shared/types.xsd",
		},
		{
			name: "absolute url passes through",
			base: "schemas/main.xsd",
			ref:  "https://example.org/unitsml.xsd",
			want: "https://example.org/unitsml.xsd",
		},
		{
			name: "relative against url",
			base: "https://example.org/v3/main.xsd",
			ref:  "unitsml.xsd",
			want: "https://example.org/v3/unitsml.xsd",
		},
		{
			name: "no base",
			base: "",
			ref:  "main.xsd",
			want: "main.xsd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveReference(tt.base, tt.ref))
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.org/schema.xsd"))
	assert.True(t, IsRemote("http://example.org/schema.xsd"))
	assert.False(t, IsRemote("schemas/main.xsd"))
	assert.False(t, IsRemote("/abs/path.xsd"))
}
