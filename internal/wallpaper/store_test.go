package wallpaper

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/logging"
	"github.com/dmitrijs2005/mediavault/internal/models"
	"github.com/dmitrijs2005/mediavault/internal/repositories/settings"
)

// failingRepo wraps a real repository and fails selected calls.
type failingRepo struct {
	settings.Repository
	getErr, setErr, delErr error
}

func (f *failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.Get(ctx, key)
}

func (f *failingRepo) Set(ctx context.Context, key string, v []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Repository.Set(ctx, key, v)
}

func (f *failingRepo) Delete(ctx context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	return f.Repository.Delete(ctx, key)
}

func newStore(t *testing.T) (*Store, *settings.MemoryRepository, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	repo := settings.NewMemoryRepository()
	return NewStore(repo, logging.New("debug", &buf)), repo, &buf
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	cfgs := []models.WallpaperConfig{
		models.NewWallpaperConfig(models.MediaTypeImage, "file:///a.jpg"),
		{
			Type: models.MediaTypeVideo, URL: "https://cdn/x.mp4", ObjectFit: models.ObjectFitContain,
			Opacity: 0, BlurPx: 12.5, Brightness: 0.6, Muted: false, Loop: false,
		},
	}

	for _, cfg := range cfgs {
		require.NoError(t, s.Save(ctx, &cfg))
		got := s.Load(ctx)
		require.NotNil(t, got)
		if diff := cmp.Diff(cfg, *got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSaveNil_DeletesRecord(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	cfg := models.NewWallpaperConfig(models.MediaTypeImage, "u")
	require.NoError(t, s.Save(ctx, &cfg))
	require.NoError(t, s.Save(ctx, nil))

	assert.Nil(t, s.Load(ctx))
	v, err := repo.Get(ctx, Key)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestLoad_MissingIsNilWithoutWarning(t *testing.T) {
	s, _, logs := newStore(t)

	assert.Nil(t, s.Load(context.Background()))
	assert.NotContains(t, logs.String(), "level=WARN")
}

func TestLoad_InvalidRecordsAreDiscarded(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"type":"image","url":`,
		"empty url":      `{"type":"image","url":""}`,
		"missing url":    `{"type":"video"}`,
		"bad type":       `{"type":"gif","url":"u"}`,
		"wrong shape":    `[1,2,3]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			s, repo, logs := newStore(t)
			ctx := context.Background()
			require.NoError(t, repo.Set(ctx, Key, []byte(raw)))

			assert.Nil(t, s.Load(ctx))
			assert.Contains(t, logs.String(), "discarding persisted wallpaper")
		})
	}
}

func TestLoad_FillsDefaultsForMissingFields(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, Key, []byte(`{"type":"video","url":"v.mp4","blurPx":3}`)))

	got := s.Load(ctx)
	require.NotNil(t, got)

	want := models.NewWallpaperConfig(models.MediaTypeVideo, "v.mp4")
	want.BlurPx = 3
	assert.Equal(t, want, *got)
}

func TestLoad_ClampsOutOfRangeValues(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, Key, []byte(`{"type":"image","url":"u","opacity":4,"blurPx":-1,"objectFit":"fill"}`)))

	got := s.Load(ctx)
	require.NotNil(t, got)
	assert.Equal(t, 1.0, got.Opacity)
	assert.Equal(t, 0.0, got.BlurPx)
	assert.Equal(t, models.ObjectFitCover, got.ObjectFit)
}

func TestLoad_ReadErrorIsNil(t *testing.T) {
	var buf bytes.Buffer
	repo := &failingRepo{Repository: settings.NewMemoryRepository(), getErr: errors.New("disk gone")}
	s := NewStore(repo, logging.New("warn", &buf))

	assert.Nil(t, s.Load(context.Background()))
	assert.Contains(t, buf.String(), "disk gone")
}

func TestSave_ErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	repo := &failingRepo{Repository: settings.NewMemoryRepository(), setErr: boom, delErr: boom}
	s := NewStore(repo, logging.Discard())
	ctx := context.Background()

	cfg := models.NewWallpaperConfig(models.MediaTypeImage, "u")
	assert.ErrorIs(t, s.Save(ctx, &cfg), boom)
	assert.ErrorIs(t, s.Save(ctx, nil), boom)
}

func TestEncode_UsesPersistedFieldNames(t *testing.T) {
	data, err := Encode(models.NewWallpaperConfig(models.MediaTypeImage, "u"))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"type":"image","url":"u","objectFit":"cover","opacity":1,"blurPx":0,"brightness":1,"muted":true,"loop":true}`,
		string(data))
}

func TestDecode_WrapsInvalidState(t *testing.T) {
	_, err := Decode([]byte(`nope`))
	assert.ErrorIs(t, err, common.ErrInvalidPersistedState)
}
