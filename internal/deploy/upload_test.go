package deploy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yc-actions/bucket-deploy/pkg/storage"
	"github.com/yc-actions/bucket-deploy/pkg/storage/mocks"
)

// setupTest creates a test file system with the given files.
func setupTest(t *testing.T) afero.Fs {
	appFS := afero.NewMemMapFs()

	err := appFS.MkdirAll("src/a", 0o755)
	require.NoError(t, err)

	files := map[string]string{
		"src/a/index.js":  "function foo(){}",
		"src/main.css":    "body",
		"src/index.html":  "<html></html>",
		"src/a/page.html": "<html>page</html>",
	}

	for name, content := range files {
		require.NoError(t, afero.WriteFile(appFS, name, []byte(content), 0o644))
	}

	return appFS
}

// recorder captures store calls in the order they happen.
type recorder struct {
	mu      sync.Mutex
	events  []string
	headers map[string]string
	types   map[string]string
}

func newRecorder() *recorder {
	return &recorder{headers: map[string]string{}, types: map[string]string{}}
}

func (r *recorder) put(_ context.Context, obj *storage.StorageObject) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, "put "+obj.ObjectName)
	r.headers[obj.ObjectName] = obj.CacheControl
	r.types[obj.ObjectName] = obj.ContentType
}

func (r *recorder) del(_ context.Context, _ string, keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		r.events = append(r.events, "delete "+k)
	}
}

func TestExecuteAppliesGroupCacheControl(t *testing.T) {
	mockStorage := mocks.NewMockStorageService(t)
	rec := newRecorder()

	mockStorage.EXPECT().
		PutObject(mock.Anything, mock.Anything).
		Run(rec.put).
		Return(nil).
		Times(4)

	groups, err := Plan(Rules{
		"*":      "public, no-cache",
		"*.html": "public, max-age=3600",
		"*.css":  "public, max-age=7200",
	}, false)
	require.NoError(t, err)

	exec := &Executor{Fs: setupTest(t), Storage: mockStorage, Parallel: 2}

	report, err := exec.Execute(context.Background(), Target{Root: "src", Bucket: "test-bucket"}, groups)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"index.html":  "public, max-age=3600",
		"a/page.html": "public, max-age=3600",
		"main.css":    "public, max-age=7200",
		"a/index.js":  "public, no-cache",
	}, rec.headers)
	assert.Equal(t, "text/html; charset=utf-8", rec.types["index.html"])
	assert.Equal(t, 4, report.Uploaded())
	assert.Empty(t, report.Failed())
	assert.NoError(t, report.Err())
}

func TestExecuteSkipsUnselectedFiles(t *testing.T) {
	mockStorage := mocks.NewMockStorageService(t)

	mockStorage.EXPECT().
		PutObject(mock.Anything, mock.MatchedBy(func(obj *storage.StorageObject) bool {
			return obj.BucketName == "test-bucket" && obj.ObjectName == "index.html"
		})).
		Return(nil).
		Once()

	groups := []Group{{ID: "root-html", Include: []string{"index.html"}, Exclude: []string{"*"}}}
	exec := &Executor{Fs: setupTest(t), Storage: mockStorage}

	report, err := exec.Execute(context.Background(), Target{Root: "src", Bucket: "test-bucket"}, groups)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Uploaded())
}

func TestExecuteWithPrefix(t *testing.T) {
	mockStorage := mocks.NewMockStorageService(t)
	rec := newRecorder()

	mockStorage.EXPECT().PutObject(mock.Anything, mock.Anything).Run(rec.put).Return(nil).Times(4)

	groups, err := Plan(Rules{"*": "no-cache"}, false)
	require.NoError(t, err)

	exec := &Executor{Fs: setupTest(t), Storage: mockStorage}

	_, err = exec.Execute(context.Background(), Target{Root: "src", Bucket: "test-bucket", Prefix: "/assets/"}, groups)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"assets/index.html", "assets/main.css", "assets/a/index.js", "assets/a/page.html"},
		keysOf(rec.headers),
	)
}

func TestExecutePrunesAfterUploads(t *testing.T) {
	mockStorage := mocks.NewMockStorageService(t)
	rec := newRecorder()

	mockStorage.EXPECT().PutObject(mock.Anything, mock.Anything).Run(rec.put).Return(nil).Times(4)
	mockStorage.EXPECT().
		ListObjects(mock.Anything, "test-bucket", "site/", int32(storage.MaxDeleteBatch), "").
		Return([]string{"site/index.html", "site/old.js", "site/legacy.html"}, "page-2", true, nil).
		Once()
	mockStorage.EXPECT().
		ListObjects(mock.Anything, "test-bucket", "site/", int32(storage.MaxDeleteBatch), "page-2").
		Return([]string{"site/main.css", "site/a/stale.css"}, "", false, nil).
		Once()
	mockStorage.EXPECT().
		DeleteObjects(mock.Anything, "test-bucket", []string{"site/old.js", "site/a/stale.css"}).
		Run(rec.del).
		Return(nil, nil).
		Once()

	groups, err := Plan(Rules{"*": "no-cache", "*.html": "max-age=60"}, true)
	require.NoError(t, err)

	exec := &Executor{Fs: setupTest(t), Storage: mockStorage, Parallel: 3}

	report, err := exec.Execute(context.Background(), Target{Root: "src", Bucket: "test-bucket", Prefix: "site"}, groups)
	require.NoError(t, err)

	// The default group uploads main.css and a/index.js, then prunes, then
	// the html group uploads the two pages.
	require.Len(t, rec.events, 6)
	assert.ElementsMatch(t, []string{"put site/main.css", "put site/a/index.js"}, rec.events[:2])
	assert.ElementsMatch(t, []string{"delete site/old.js", "delete site/a/stale.css"}, rec.events[2:4])
	assert.ElementsMatch(t, []string{"put site/index.html", "put site/a/page.html"}, rec.events[4:])

	assert.Equal(t, 4, report.Uploaded())
	assert.Equal(t, 2, report.Deleted())
}

func TestExecuteAggregatesFailures(t *testing.T) {
	mockStorage := mocks.NewMockStorageService(t)
	boom := errors.New("network unreachable")

	mockStorage.EXPECT().
		PutObject(mock.Anything, mock.MatchedBy(func(obj *storage.StorageObject) bool {
			return obj.ObjectName == "main.css"
		})).
		Return(boom)
	mockStorage.EXPECT().
		PutObject(mock.Anything, mock.MatchedBy(func(obj *storage.StorageObject) bool {
			return obj.ObjectName != "main.css"
		})).
		Return(nil).
		Times(3)
	mockStorage.EXPECT().
		ListObjects(mock.Anything, "test-bucket", "", int32(storage.MaxDeleteBatch), "").
		Return([]string{"gone.txt", "locked.txt"}, "", false, nil)
	mockStorage.EXPECT().
		DeleteObjects(mock.Anything, "test-bucket", []string{"gone.txt", "locked.txt"}).
		Return(map[string]error{"locked.txt": errors.New("AccessDenied: denied")}, nil)

	groups, err := Plan(Rules{"*": "no-cache", "*.html": "max-age=60"}, true)
	require.NoError(t, err)

	exec := &Executor{Fs: setupTest(t), Storage: mockStorage}

	report, err := exec.Execute(context.Background(), Target{Root: "src", Bucket: "test-bucket"}, groups)
	require.NoError(t, err, "per-file failures do not fail the run")

	assert.Equal(t, 3, report.Uploaded())
	assert.Equal(t, 1, report.Deleted())

	failed := report.Failed()
	require.Len(t, failed, 2)

	byKey := map[string]*TransferError{}
	for _, f := range failed {
		byKey[f.Key] = f
	}

	assert.Equal(t, OpUpload, byKey["main.css"].Op)
	assert.ErrorIs(t, byKey["main.css"], boom)
	assert.Equal(t, OpDelete, byKey["locked.txt"].Op)
	assert.Error(t, report.Err())
}

func TestExecuteRecordsListFailure(t *testing.T) {
	mockStorage := mocks.NewMockStorageService(t)

	mockStorage.EXPECT().PutObject(mock.Anything, mock.Anything).Return(nil).Times(4)
	mockStorage.EXPECT().
		ListObjects(mock.Anything, "test-bucket", "", int32(storage.MaxDeleteBatch), "").
		Return(nil, "", false, errors.New("throttled"))

	groups, err := Plan(Rules{"*": "no-cache"}, true)
	require.NoError(t, err)

	exec := &Executor{Fs: setupTest(t), Storage: mockStorage}

	report, err := exec.Execute(context.Background(), Target{Root: "src", Bucket: "test-bucket"}, groups)
	require.NoError(t, err)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, OpList, failed[0].Op)
}

func TestExecuteCancelled(t *testing.T) {
	mockStorage := mocks.NewMockStorageService(t)

	groups, err := Plan(Rules{"*": "no-cache"}, true)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &Executor{Fs: setupTest(t), Storage: mockStorage}

	report, err := exec.Execute(ctx, Target{Root: "src", Bucket: "test-bucket"}, groups)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, report.Cancelled)
	assert.Empty(t, report.Outcomes())
}

func TestExecuteCancelledMidGroup(t *testing.T) {
	mockStorage := mocks.NewMockStorageService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockStorage.EXPECT().
		PutObject(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ *storage.StorageObject) error {
			cancel()
			return ctx.Err()
		}).
		Once()

	groups, err := Plan(Rules{"*": "no-cache"}, true)
	require.NoError(t, err)

	exec := &Executor{Fs: setupTest(t), Storage: mockStorage, Parallel: 1}

	report, err := exec.Execute(ctx, Target{Root: "src", Bucket: "test-bucket"}, groups)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, report.Cancelled)
	assert.Empty(t, report.Failed(), "calls aborted by cancellation are not transfer failures")
}

func TestExecuteMissingRoot(t *testing.T) {
	exec := &Executor{Fs: afero.NewMemMapFs(), Storage: mocks.NewMockStorageService(t)}

	_, err := exec.Execute(context.Background(), Target{Root: "missing", Bucket: "b"}, nil)
	assert.Error(t, err)
}

func keysOf(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	return keys
}
