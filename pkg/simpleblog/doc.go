// Package simpleblog provides a reusable library for blog content
// management with pluggable repository and blob storage backends.
//
// It exposes a single Service interface that orchestrates filtered,
// paginated post listing, post mutation with an attached image lifecycle,
// and comment mutation with name-snapshot ownership checks. Implementations
// of repositories (memory, SQLite, Postgres) and blob stores (memory,
// filesystem, S3) are provided under subpackages.
//
// Storage Consistency
//
// An image file exists in the blob store iff at least one post currently
// references its path. Posts may share one path; deletion is governed by a
// reference count computed after the mutating row change. File writes and
// row commits are not atomic together: a crash between the two can leave an
// orphaned file or a dangling reference. That window is a documented
// limitation, not something the service papers over.
package simpleblog
