package simpleblog

import (
	"context"
	"io"
	"path"
	"strings"
)

// AttachmentPathPrefix is the public prefix served image paths carry.
const AttachmentPathPrefix = "/files/"

// permittedExtensions is the exact allowed set, compared case-sensitively
// as supplied by the client.
var permittedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// ValidExtension reports whether filename carries one of the permitted
// image extensions. The comparison is case-sensitive.
func ValidExtension(filename string) bool {
	ext := path.Ext(filename)
	for _, allowed := range permittedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ResolveAttachmentPath maps an original filename to its public storage
// path. The mapping is deterministic: two uploads with the same original
// filename resolve to the same path and the second overwrites the first's
// bytes. There is no content hashing or disambiguation.
func ResolveAttachmentPath(filename string) string {
	return AttachmentPathPrefix + filename
}

// attachmentKey converts a public "/files/<name>" path into the
// storage-relative blob key.
func attachmentKey(path string) string {
	return strings.TrimPrefix(path, "/")
}

// attachmentStore keeps the blob store consistent with the set of posts
// referencing each path. A file at a path exists iff at least one post row
// currently references that path.
type attachmentStore struct {
	blobs BlobStore
	repo  Repository
}

// store writes the upload bytes under path, replacing any previous content.
func (a *attachmentStore) store(ctx context.Context, path string, reader io.Reader) error {
	if err := a.blobs.Upload(ctx, attachmentKey(path), reader); err != nil {
		return &StorageError{Path: path, Op: "store", Err: err}
	}
	return nil
}

// referenceCount returns the number of post rows whose ImagePath equals
// path.
func (a *attachmentStore) referenceCount(ctx context.Context, path string) (int, error) {
	return a.repo.CountPostsByImagePath(ctx, path)
}

// release deletes the file at path iff no post references it at the time of
// the call. Callers invoke it after the referencing row has been removed or
// repointed, so the count reflects the post-mutation world. An already
// absent file is a no-op success.
//
// The count check and the delete are two separate steps: a concurrent
// create referencing the same path in between can cause premature deletion.
// That window is an accepted race, consistent with the shared-filename
// collision policy.
func (a *attachmentStore) release(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	count, err := a.referenceCount(ctx, path)
	if err != nil {
		return &StorageError{Path: path, Op: "release", Err: err}
	}
	if count > 0 {
		return nil
	}
	if err := a.blobs.Delete(ctx, attachmentKey(path)); err != nil {
		return &StorageError{Path: path, Op: "release", Err: err}
	}
	return nil
}

// open opens the stored bytes at a public path for serving.
func (a *attachmentStore) open(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := a.blobs.Download(ctx, attachmentKey(path))
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	return rc, nil
}
