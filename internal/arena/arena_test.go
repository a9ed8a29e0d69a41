package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct{ n int }

func TestTable_InsertLookup(t *testing.T) {
	tbl := NewTable()

	h, err := tbl.Insert(&box{n: 7})
	require.NoError(t, err)
	assert.False(t, h.IsNull())
	assert.Equal(t, uint32(1), h.Slot())
	assert.Equal(t, uint32(1), h.Gen())

	b, err := Get[*box](tbl, h)
	require.NoError(t, err)
	assert.Equal(t, 7, b.n)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_NullHandle(t *testing.T) {
	tbl := NewTable()

	_, err := tbl.Lookup(Null)
	assert.ErrorIs(t, err, ErrNullHandle)

	assert.ErrorIs(t, tbl.Release(Null), ErrNullHandle)
	assert.False(t, tbl.Contains(Null))

	_, err = tbl.Insert(nil)
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestTable_StaleAfterRelease(t *testing.T) {
	tbl := NewTable()

	h1, err := tbl.Insert(&box{n: 1})
	require.NoError(t, err)
	require.NoError(t, tbl.Release(h1))

	t.Run("lookup", func(t *testing.T) {
		_, err := tbl.Lookup(h1)
		assert.ErrorIs(t, err, ErrStaleHandle)
	})

	t.Run("double release", func(t *testing.T) {
		assert.ErrorIs(t, tbl.Release(h1), ErrStaleHandle)
	})

	t.Run("slot reuse bumps generation", func(t *testing.T) {
		h2, err := tbl.Insert(&box{n: 2})
		require.NoError(t, err)
		assert.Equal(t, h1.Slot(), h2.Slot())
		assert.NotEqual(t, h1.Gen(), h2.Gen())

		_, err = tbl.Lookup(h1)
		assert.ErrorIs(t, err, ErrStaleHandle)

		b, err := Get[*box](tbl, h2)
		require.NoError(t, err)
		assert.Equal(t, 2, b.n)
	})
}

func TestTable_TypeMismatch(t *testing.T) {
	tbl := NewTable()

	h, err := tbl.Insert(&box{n: 3})
	require.NoError(t, err)

	_, err = Get[string](tbl, h)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// The handle stays valid after a mismatched lookup.
	_, err = Get[*box](tbl, h)
	assert.NoError(t, err)
}

func TestTable_UnknownSlot(t *testing.T) {
	tbl := NewTable()

	_, err := tbl.Lookup(makeHandle(1, 42))
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestTable_LiveAndStats(t *testing.T) {
	tbl := NewTable(WithCapacity(4))

	var hs []Handle
	for i := 0; i < 5; i++ {
		h, err := tbl.Insert(&box{n: i})
		require.NoError(t, err)
		hs = append(hs, h)
	}
	require.NoError(t, tbl.Release(hs[1]))
	require.NoError(t, tbl.Release(hs[3]))

	assert.Equal(t, []Handle{hs[0], hs[2], hs[4]}, tbl.Live())

	_, _ = tbl.Lookup(hs[1])

	st := tbl.Stats()
	assert.Equal(t, uint64(5), st.Inserted)
	assert.Equal(t, uint64(2), st.Released)
	assert.Equal(t, uint64(1), st.Rejected)
	assert.Equal(t, uint64(3), st.Live)
}

func TestTable_ConcurrentInsertRelease(t *testing.T) {
	tbl := NewTable()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h, err := tbl.Insert(&box{n: i})
				if err != nil {
					t.Error(err)
					return
				}
				if err := tbl.Release(h); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Live())
}
