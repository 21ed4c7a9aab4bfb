package nats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesStream(t *testing.T) {
	ctx := context.Background()
	emb, err := Open(ctx, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = emb.Close() })

	info, err := emb.Stream.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, StreamName, info.Config.Name)
	require.Equal(t, []string{"campus.>"}, info.Config.Subjects)
	require.Zero(t, info.Config.MaxAge, "events are retained forever")
}

func TestOpen_ReopensExistingData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	emb, err := Open(ctx, dir)
	require.NoError(t, err)
	_, err = emb.JS.Publish(ctx, SubjectForEvent(EventTypeSchool, "abc123"), []byte(`{}`))
	require.NoError(t, err)
	require.NoError(t, emb.Close())

	emb, err = Open(ctx, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = emb.Close() })

	info, err := emb.Stream.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), info.State.Msgs)
}

func TestSubjects(t *testing.T) {
	require.Equal(t, "campus.school.>", SubjectForType(EventTypeSchool))
	require.Equal(t, "campus.school.abc123", SubjectForEvent(EventTypeSchool, "abc123"))
}
