package deploy

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/yc-actions/bucket-deploy/pkg/sourcecraft"
	"github.com/yc-actions/bucket-deploy/pkg/storage"
)

// Executor uploads deployment groups to object storage.
type Executor struct {
	Fs       afero.Fs
	Storage  storage.StorageService
	Parallel int
}

// Execute runs groups in order against target.
//
// Per-key failures are recorded in the report and never stop the run. Uploads
// within a group run concurrently; a pruning group deletes stale objects only
// after all of its uploads have finished. If ctx ends, remaining work is
// skipped and the returned error wraps ErrCancelled.
func (e *Executor) Execute(ctx context.Context, target Target, groups []Group) (*Report, error) {
	report := &Report{}

	files, err := collectFiles(e.Fs, target.Root)
	if err != nil {
		return report, fmt.Errorf("failed to walk directory: %w", err)
	}

	sourcecraft.Info(fmt.Sprintf("Found %d files under %s", len(files), target.Root))

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return report, cancelled(report, err)
		}

		e.runGroup(ctx, target, group, files, report)
	}

	if err := ctx.Err(); err != nil {
		return report, cancelled(report, err)
	}

	return report, nil
}

func cancelled(report *Report, err error) error {
	report.Cancelled = true

	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

func (e *Executor) runGroup(ctx context.Context, target Target, group Group, files []string, report *Report) {
	sourcecraft.StartGroup(fmt.Sprintf("Upload %s (Cache-Control: %q)", group.ID, group.CacheControl))
	defer sourcecraft.EndGroup()

	parallel := e.Parallel
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	var g errgroup.Group

	g.SetLimit(parallel)

	for _, rel := range files {
		if !group.Selects(rel) {
			continue
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			key := objectKey(target.Prefix, rel)

			err := e.uploadFile(ctx, target, rel, key, group.CacheControl)
			if err != nil && ctx.Err() != nil {
				return nil
			}

			report.record(OpUpload, key, err)

			return nil
		})
	}

	_ = g.Wait()

	if group.Prune && ctx.Err() == nil {
		e.prune(ctx, target, group, files, report)
	}
}

// uploadFile uploads a file to object storage.
func (e *Executor) uploadFile(ctx context.Context, target Target, rel, key, cacheControl string) error {
	file, err := e.Fs.Open(filepath.Join(target.Root, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	sourcecraft.Info(fmt.Sprintf("Uploading %s to %s/%s", rel, target.Bucket, key))

	storageObject := storage.NewStorageObject(target.Bucket, key, file)
	defer storageObject.Close()

	storageObject.CacheControl = cacheControl
	storageObject.ContentType = mime.TypeByExtension(path.Ext(key))

	// Upload object
	if err := e.Storage.PutObject(ctx, storageObject); err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// prune deletes objects under the target prefix that the group selects but
// that no longer exist in the source tree.
func (e *Executor) prune(ctx context.Context, target Target, group Group, files []string, report *Report) {
	prefix := keyPrefix(target.Prefix)

	sourcecraft.Info(fmt.Sprintf("Pruning %s/%s", target.Bucket, prefix))

	keys, err := storage.ListAllObjects(ctx, e.Storage, target.Bucket, prefix)
	if err != nil {
		if ctx.Err() == nil {
			report.record(OpList, prefix, err)
		}

		return
	}

	source := make(map[string]struct{}, len(files))
	for _, rel := range files {
		source[rel] = struct{}{}
	}

	var stale []string

	for _, key := range keys {
		rel := strings.TrimPrefix(key, prefix)
		if rel == "" {
			continue
		}

		if _, ok := source[rel]; ok {
			continue
		}

		if !group.Selects(rel) {
			continue
		}

		stale = append(stale, key)
	}

	for start := 0; start < len(stale); start += storage.MaxDeleteBatch {
		if ctx.Err() != nil {
			return
		}

		batch := stale[start:min(start+storage.MaxDeleteBatch, len(stale))]

		failed, err := e.Storage.DeleteObjects(ctx, target.Bucket, batch)
		if err != nil && ctx.Err() != nil {
			return
		}

		for _, key := range batch {
			switch {
			case err != nil:
				report.record(OpDelete, key, err)
			case failed[key] != nil:
				report.record(OpDelete, key, failed[key])
			default:
				sourcecraft.Info(fmt.Sprintf("Deleted %s/%s", target.Bucket, key))
				report.record(OpDelete, key, nil)
			}
		}
	}
}

// collectFiles returns the slash-separated paths of all regular files under
// root, sorted.
func collectFiles(f afero.Fs, root string) ([]string, error) {
	var files []string

	err := afero.Walk(f, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		files = append(files, filepath.ToSlash(relPath))

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}

// keyPrefix normalizes a destination prefix to "" or "dir/".
func keyPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}

	return prefix + "/"
}

func objectKey(prefix, rel string) string {
	return keyPrefix(prefix) + rel
}
