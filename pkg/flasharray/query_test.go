package flasharray_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()
	t.Run("nil params yield empty values", func(t *testing.T) {
		t.Parallel()

		var params *flasharray.QueryParams

		assert.Empty(t, params.ToValues())
	})

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		params := flasharray.NewQueryParams().
			WithContinuationToken("tok-1").
			WithFilter("destroyed='false'").
			WithIDs("id-1", "id-2").
			WithNames("vol01").
			WithSort("name", "created-").
			WithLimit(25).
			WithOffset(50).
			WithTotalItemCount(true).
			WithTotalOnly(true).
			With("host_names", "host01", "host02")

		values := params.ToValues()

		assert.Equal(t, "tok-1", values.Get("continuation_token"))
		assert.Equal(t, "destroyed='false'", values.Get("filter"))
		assert.Equal(t, "id-1,id-2", values.Get("ids"))
		assert.Equal(t, "vol01", values.Get("names"))
		assert.Equal(t, "name,created-", values.Get("sort"))
		assert.Equal(t, "25", values.Get("limit"))
		assert.Equal(t, "50", values.Get("offset"))
		assert.Equal(t, "true", values.Get("total_item_count"))
		assert.Equal(t, "true", values.Get("total_only"))
		assert.Equal(t, "host01,host02", values.Get("host_names"))
	})

	t.Run("zero values are omitted", func(t *testing.T) {
		t.Parallel()

		values := flasharray.NewQueryParams().ToValues()
		assert.Empty(t, values)
	})
}

func TestQueryParams_Clone(t *testing.T) {
	t.Parallel()
	t.Run("nil receiver yields fresh params", func(t *testing.T) {
		t.Parallel()

		var params *flasharray.QueryParams

		clone := params.Clone()
		require.NotNil(t, clone)
		assert.Empty(t, clone.ToValues())
	})

	t.Run("clone is independent of the original", func(t *testing.T) {
		t.Parallel()

		params := flasharray.NewQueryParams().
			WithIDs("id-1").
			WithNames("vol01").
			With("host_names", "host01")

		clone := params.Clone()
		clone.WithIDs("id-2")
		clone.Names[0] = "changed"
		clone.With("host_names", "host02")

		assert.Equal(t, []string{"id-1"}, params.IDs)
		assert.Equal(t, []string{"vol01"}, params.Names)
		assert.Equal(t, "host01", params.ToValues().Get("host_names"))
	})
}
