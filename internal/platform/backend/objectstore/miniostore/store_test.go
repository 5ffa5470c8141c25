package miniostore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockObjectAPI struct {
	PutObjectFunc    func(ctx context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObjectFunc func(ctx context.Context, bucket, name string, opts minio.RemoveObjectOptions) error
	StatObjectFunc   func(ctx context.Context, bucket, name string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

func (m *mockObjectAPI) PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, bucket, name, r, size, opts)
	}
	return minio.UploadInfo{}, nil
}

func (m *mockObjectAPI) RemoveObject(ctx context.Context, bucket, name string, opts minio.RemoveObjectOptions) error {
	if m.RemoveObjectFunc != nil {
		return m.RemoveObjectFunc(ctx, bucket, name, opts)
	}
	return nil
}

func (m *mockObjectAPI) StatObject(ctx context.Context, bucket, name string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if m.StatObjectFunc != nil {
		return m.StatObjectFunc(ctx, bucket, name, opts)
	}
	return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
}

func TestStore_UploadUpsert(t *testing.T) {
	t.Parallel()

	var gotName, gotType, gotBody string
	var gotSize int64
	api := &mockObjectAPI{
		PutObjectFunc: func(ctx context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			assert.Equal(t, "box", bucket)
			b, _ := io.ReadAll(r)
			gotName, gotType, gotBody, gotSize = name, opts.ContentType, string(b), size
			return minio.UploadInfo{Key: name}, nil
		},
		StatObjectFunc: func(ctx context.Context, bucket, name string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
			t.Error("upsert must not stat")
			return minio.ObjectInfo{}, nil
		},
	}
	s := newStore(api, "box", "http://localhost:9000/")

	require.NoError(t, s.Upload(context.Background(), "produtos/u1/1.png", strings.NewReader("img"), 3, "image/png", true))
	assert.Equal(t, "produtos/u1/1.png", gotName)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, "img", gotBody)
	assert.Equal(t, int64(3), gotSize)
}

func TestStore_UploadWithoutUpsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		statErr error
		wantErr error
		wantPut bool
	}{
		{name: "free path", statErr: minio.ErrorResponse{Code: "NoSuchKey"}, wantPut: true},
		{name: "taken path", statErr: nil, wantErr: ErrObjectExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var put bool
			api := &mockObjectAPI{
				StatObjectFunc: func(ctx context.Context, bucket, name string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
					return minio.ObjectInfo{}, tt.statErr
				},
				PutObjectFunc: func(ctx context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
					put = true
					return minio.UploadInfo{}, nil
				},
			}
			err := newStore(api, "box", "http://x").Upload(context.Background(), "perfil/u1-1.jpg", strings.NewReader("a"), 1, "image/jpeg", false)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantPut, put)
		})
	}
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	var removed []string
	api := &mockObjectAPI{RemoveObjectFunc: func(ctx context.Context, bucket, name string, opts minio.RemoveObjectOptions) error {
		removed = append(removed, name)
		if name == "bad" {
			return errors.New("denied")
		}
		return nil
	}}
	s := newStore(api, "box", "http://x")

	require.NoError(t, s.Remove(context.Background(), "a", "b"))
	assert.Equal(t, []string{"a", "b"}, removed)
	assert.ErrorContains(t, s.Remove(context.Background(), "bad"), "denied")
}

func TestStore_PublicURL(t *testing.T) {
	t.Parallel()

	s := newStore(&mockObjectAPI{}, "box", "http://localhost:9000/")
	assert.Equal(t, "http://localhost:9000/box/produtos/u1/1.png", s.PublicURL("produtos/u1/1.png"))
}
