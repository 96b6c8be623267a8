package flasharray_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

func TestResolveReferences(t *testing.T) {
	t.Parallel()
	t.Run("empty refs is a no-op", func(t *testing.T) {
		t.Parallel()

		params := flasharray.NewQueryParams().WithNames("vol01")

		resolved, err := flasharray.ResolveReferences(nil, params, "ids", "names")
		require.NoError(t, err)
		assert.Same(t, params, resolved)
	})

	t.Run("empty refs with nil params yields fresh params", func(t *testing.T) {
		t.Parallel()

		resolved, err := flasharray.ResolveReferences(nil, nil, "ids", "names")
		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Empty(t, resolved.ToValues())
	})

	t.Run("ids win when all refs expose ids", func(t *testing.T) {
		t.Parallel()

		refs := []flasharray.Reference{
			{ID: "id-2", Name: "vol02"},
			{ID: "id-1", Name: "vol01"},
		}

		resolved, err := flasharray.ResolveReferences(refs, nil, "ids", "names")
		require.NoError(t, err)
		// Input order is preserved
		assert.Equal(t, []string{"id-2", "id-1"}, resolved.IDs)
		assert.Empty(t, resolved.Names)
	})

	t.Run("names used when ids are not uniform", func(t *testing.T) {
		t.Parallel()

		refs := []flasharray.Reference{
			{ID: "id-1", Name: "vol01"},
			{Name: "vol02"},
		}

		resolved, err := flasharray.ResolveReferences(refs, nil, "ids", "names")
		require.NoError(t, err)
		assert.Equal(t, []string{"vol01", "vol02"}, resolved.Names)
		assert.Empty(t, resolved.IDs)
	})

	t.Run("names candidate alone resolves names", func(t *testing.T) {
		t.Parallel()

		refs := []flasharray.Reference{
			{ID: "id-1", Name: "host01"},
		}

		resolved, err := flasharray.ResolveReferences(refs, nil, "names")
		require.NoError(t, err)
		assert.Equal(t, []string{"host01"}, resolved.Names)
	})

	t.Run("prefixed candidates land in extra parameters", func(t *testing.T) {
		t.Parallel()

		refs := []flasharray.Reference{
			{Name: "host01"},
			{Name: "host02"},
		}

		resolved, err := flasharray.ResolveReferences(refs, nil, "host_names")
		require.NoError(t, err)
		assert.Equal(t, "host01,host02", resolved.ToValues().Get("host_names"))
	})

	t.Run("refs replace raw lists already present", func(t *testing.T) {
		t.Parallel()

		params := flasharray.NewQueryParams().WithIDs("stale-id").WithNames("stale-name")
		refs := []flasharray.Reference{{Name: "vol01"}}

		resolved, err := flasharray.ResolveReferences(refs, params, "ids", "names")
		require.NoError(t, err)
		assert.Empty(t, resolved.IDs)
		assert.Equal(t, []string{"vol01"}, resolved.Names)

		// The original params are untouched
		assert.Equal(t, []string{"stale-id"}, params.IDs)
		assert.Equal(t, []string{"stale-name"}, params.Names)
	})

	t.Run("unrelated parameters survive resolution", func(t *testing.T) {
		t.Parallel()

		params := flasharray.NewQueryParams().WithFilter("destroyed='false'").WithLimit(50)
		refs := []flasharray.Reference{{ID: "id-1"}}

		resolved, err := flasharray.ResolveReferences(refs, params, "ids", "names")
		require.NoError(t, err)
		assert.Equal(t, "destroyed='false'", resolved.Filter)
		assert.Equal(t, 50, resolved.Limit)
		assert.Equal(t, []string{"id-1"}, resolved.IDs)
	})

	t.Run("mixed refs with no uniform attribute fail", func(t *testing.T) {
		t.Parallel()

		refs := []flasharray.Reference{
			{ID: "id-1"},
			{Name: "vol02"},
		}

		_, err := flasharray.ResolveReferences(refs, nil, "ids", "names")
		require.Error(t, err)

		var refErr *flasharray.InvalidReferenceError

		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, []string{"ids", "names"}, refErr.Candidates)
	})

	t.Run("uniform ids without an ids candidate fail", func(t *testing.T) {
		t.Parallel()

		refs := []flasharray.Reference{{ID: "id-1"}}

		_, err := flasharray.ResolveReferences(refs, nil, "names")
		require.Error(t, err)

		var refErr *flasharray.InvalidReferenceError

		assert.ErrorAs(t, err, &refErr)
	})

	t.Run("empty reference fails", func(t *testing.T) {
		t.Parallel()

		refs := []flasharray.Reference{{}}

		_, err := flasharray.ResolveReferences(refs, nil, "ids", "names")
		require.Error(t, err)

		var refErr *flasharray.InvalidReferenceError

		assert.ErrorAs(t, err, &refErr)
	})
}

func TestResolveReference(t *testing.T) {
	t.Parallel()

	resolved, err := flasharray.ResolveReference(flasharray.Reference{ID: "id-1"}, nil, "ids", "names")
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1"}, resolved.IDs)
}
