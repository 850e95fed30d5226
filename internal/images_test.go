package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// fakeImageSource serves canned images keyed by "<filename>/<page>" and
// records every lookup.
type fakeImageSource struct {
	mu     sync.Mutex
	images map[string][]ImageInfo
	calls  []string
	err    error
}

func (f *fakeImageSource) PageImages(ctx context.Context, filename string, page int) ([]ImageInfo, error) {
	key := fmt.Sprintf("%s/%d", filename, page)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.images[key], nil
}

func (f *fakeImageSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestImageResolver_Resolve(t *testing.T) {
	source := &fakeImageSource{images: map[string][]ImageInfo{
		"guide.pdf/3":  {{URL: "/images/guide/p3-0.png"}},
		"manual.pdf/1": {{URL: "/images/manual/p1-0.png"}, {URL: "/images/manual/p1-1.png"}},
	}}
	resolver := NewImageResolver(source)

	refs := []ImageRef{
		{Filename: "guide.pdf", Page: 3, MessageIndex: 0},
		{Filename: "manual.pdf", Page: 1, MessageIndex: 2},
	}
	resolved := resolver.Resolve(context.Background(), refs, 3)

	if len(resolved[0]) != 1 || resolved[0][0].URL != "/images/guide/p3-0.png" {
		t.Errorf("resolved[0] = %+v", resolved[0])
	}
	if len(resolved[2]) != 2 {
		t.Errorf("resolved[2] = %+v, want 2 images", resolved[2])
	}
}

func TestImageResolver_DropsHiddenRefs(t *testing.T) {
	source := &fakeImageSource{images: map[string][]ImageInfo{
		"guide.pdf/3": {{URL: "/images/guide/p3-0.png"}},
	}}
	resolver := NewImageResolver(source)

	// Only index 0 is still visible; the rest must not be fetched.
	refs := []ImageRef{
		{Filename: "guide.pdf", Page: 3, MessageIndex: 0},
		{Filename: "guide.pdf", Page: 4, MessageIndex: 1},
		{Filename: "guide.pdf", Page: 5, MessageIndex: 9},
	}
	resolved := resolver.Resolve(context.Background(), refs, 1)

	if len(resolved) != 1 {
		t.Errorf("resolved = %+v, want images for index 0 only", resolved)
	}
	if source.callCount() != 1 {
		t.Errorf("source calls = %d, want 1", source.callCount())
	}
}

func TestImageResolver_PartialFailure(t *testing.T) {
	source := &fakeImageSource{err: errors.New("backend down")}
	resolver := NewImageResolver(source)

	refs := []ImageRef{{Filename: "guide.pdf", Page: 3, MessageIndex: 0}}
	resolved := resolver.Resolve(context.Background(), refs, 1)

	// Fetch failures degrade to no images, never to an error.
	if len(resolved) != 0 {
		t.Errorf("resolved = %+v, want empty on fetch failure", resolved)
	}
}

func TestImageResolver_NoRefs(t *testing.T) {
	source := &fakeImageSource{}
	resolver := NewImageResolver(source)

	resolved := resolver.Resolve(context.Background(), nil, 5)
	if len(resolved) != 0 {
		t.Errorf("resolved = %+v, want empty", resolved)
	}
	if source.callCount() != 0 {
		t.Errorf("source calls = %d, want 0", source.callCount())
	}
}
