package artifact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sinkContract(t *testing.T, sink Sink) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, _, err := sink.Get(ctx, "invoices/none.pdf")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put get overwrite", func(t *testing.T) {
		info, err := sink.Put(ctx, "invoices/a.pdf", []byte("first"), "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "invoices/a.pdf", info.Key)
		assert.Equal(t, int64(5), info.Size)

		_, err = sink.Put(ctx, "invoices/a.pdf", []byte("second"), "application/pdf")
		require.NoError(t, err)

		info, data, err := sink.Get(ctx, "invoices/a.pdf")
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
		assert.Equal(t, "application/pdf", info.ContentType)
	})

	t.Run("list by prefix", func(t *testing.T) {
		_, err := sink.Put(ctx, "bulk/b.pdf", []byte("b"), "application/pdf")
		require.NoError(t, err)

		infos, err := sink.List(ctx, "invoices/")
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, "invoices/a.pdf", infos[0].Key)
	})
}

func TestMemory(t *testing.T) {
	sinkContract(t, NewMemory())
}

func TestFilesystem(t *testing.T) {
	sink, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	sinkContract(t, sink)

	_, err = sink.Put(context.Background(), "", []byte("x"), "")
	assert.Error(t, err)
}

func TestFilesystem_KeysStayInsideRoot(t *testing.T) {
	root := t.TempDir()
	sink, err := NewFilesystem(root)
	require.NoError(t, err)

	_, err = sink.Put(context.Background(), "../../escape.pdf", []byte("x"), "application/pdf")
	require.NoError(t, err)

	infos, err := sink.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "escape.pdf", infos[0].Key)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	sink, err := Open(ctx, Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, sink.Driver())

	sink, err = Open(ctx, Config{FSRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, sink.Driver())

	_, err = Open(ctx, Config{Driver: "ftp"})
	assert.Error(t, err)

	_, err = Open(ctx, Config{Driver: DriverS3})
	assert.Error(t, err)
}
