package storage

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImages_Resolve(t *testing.T) {
	l := NewLocalImages("/img")
	ctx := context.Background()

	got, err := l.Resolve(ctx, "red strat.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/img/red%20strat.jpg", got)

	got, _ = l.Resolve(ctx, "/tele.png")
	assert.Equal(t, "/img/tele.png", got)

	got, _ = l.Resolve(ctx, "https://cdn.example.com/a.png")
	assert.Equal(t, "https://cdn.example.com/a.png", got)

	got, _ = l.Resolve(ctx, "")
	assert.Equal(t, "", got)
}

type fakePresigner struct {
	object string
	err    error
}

func (f *fakePresigner) PresignedGetObject(_ context.Context, bucket, object string, expires time.Duration, _ url.Values) (*url.URL, error) {
	f.object = object
	if f.err != nil {
		return nil, f.err
	}
	return url.Parse("https://minio.local/" + bucket + "/" + object + "?X-Amz-Expires=" + expires.String())
}

func TestMinioImages_Resolve(t *testing.T) {
	p := &fakePresigner{}
	m := &MinioImages{client: p, bucket: "guitars", ttl: time.Minute}

	got, err := m.Resolve(context.Background(), "/strat.jpg")
	require.NoError(t, err)
	assert.Equal(t, "strat.jpg", p.object)
	assert.Contains(t, got, "https://minio.local/guitars/strat.jpg")

	p.err = errors.New("denied")
	_, err = m.Resolve(context.Background(), "tele.jpg")
	assert.Error(t, err)
}
