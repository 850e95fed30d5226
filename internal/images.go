package internal

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// imageFetchLimit bounds concurrent image lookups per resolve pass.
const imageFetchLimit = 4

// ResolvedImages groups fetched page images by transcript position.
type ResolvedImages map[int][]ImageInfo

// ImageSource is the slice of Client the resolver needs.
type ImageSource interface {
	PageImages(ctx context.Context, filename string, page int) ([]ImageInfo, error)
}

// ImageResolver fetches page images for extracted refs with bounded
// concurrency. Refs pointing past the visible transcript are dropped, so
// a late result can never attach to a message that is no longer shown.
type ImageResolver struct {
	source ImageSource
}

// NewImageResolver creates a resolver backed by source.
func NewImageResolver(source ImageSource) *ImageResolver {
	return &ImageResolver{source: source}
}

// Resolve fetches images for every ref whose message index is below
// visible. Individual fetch failures are logged and skipped; the partial
// result is still returned.
func (r *ImageResolver) Resolve(ctx context.Context, refs []ImageRef, visible int) ResolvedImages {
	resolved := make(ResolvedImages)
	if len(refs) == 0 {
		return resolved
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(imageFetchLimit)

	for _, ref := range refs {
		if ref.MessageIndex < 0 || ref.MessageIndex >= visible {
			LogDebug("Dropping image ref %s p.%d for hidden message %d", ref.Filename, ref.Page, ref.MessageIndex)
			continue
		}
		ref := ref
		g.Go(func() error {
			images, err := r.source.PageImages(ctx, ref.Filename, ref.Page)
			if err != nil {
				LogWarn("Failed to fetch images for %s page %d: %v", ref.Filename, ref.Page, err)
				return nil
			}
			if len(images) == 0 {
				return nil
			}
			mu.Lock()
			resolved[ref.MessageIndex] = append(resolved[ref.MessageIndex], images...)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return resolved
}
