package internal

import (
	"strings"
	"testing"
)

func TestExtractImageRefs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ImageRef
	}{
		{
			name: "japanese tag",
			text: "図は 画像(guide.pdf, 3) を参照",
			want: []ImageRef{{Filename: "guide.pdf", Page: 3, MessageIndex: 7}},
		},
		{
			name: "ascii tag",
			text: "see image(manual.pdf, 12) for details",
			want: []ImageRef{{Filename: "manual.pdf", Page: 12, MessageIndex: 7}},
		},
		{
			name: "whitespace inside tag",
			text: "画像( guide.pdf , 5 )",
			want: []ImageRef{{Filename: "guide.pdf", Page: 5, MessageIndex: 7}},
		},
		{
			name: "multiple tags",
			text: "画像(a.pdf, 1) and image(b.pdf, 2)",
			want: []ImageRef{
				{Filename: "a.pdf", Page: 1, MessageIndex: 7},
				{Filename: "b.pdf", Page: 2, MessageIndex: 7},
			},
		},
		{
			name: "page zero ignored",
			text: "画像(guide.pdf, 0)",
			want: nil,
		},
		{
			name: "no tags",
			text: "a plain answer about images",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractImageRefs(tt.text, 7)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractImageRefs() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ref[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStripImageMarkers(t *testing.T) {
	got := StripImageMarkers("The diagram 画像(guide.pdf, 3) shows the flow. See also image(manual.pdf, 1).")
	if strings.Contains(got, "画像(") || strings.Contains(got, "image(") {
		t.Errorf("StripImageMarkers() left marker text: %q", got)
	}
	if !strings.Contains(got, "shows the flow") {
		t.Errorf("StripImageMarkers() dropped surrounding text: %q", got)
	}

	if got := StripImageMarkers("画像(guide.pdf, 3)"); got != "" {
		t.Errorf("StripImageMarkers() on marker-only text = %q, want empty", got)
	}
}
