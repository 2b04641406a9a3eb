package splitter

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{
			name:       "empty text",
			text:       "",
			chunkSize:  1000,
			overlap:    150,
			wantChunks: 1,
		},
		{
			name:       "shorter than window",
			text:       "hello world",
			chunkSize:  1000,
			overlap:    150,
			wantChunks: 1,
		},
		{
			name:       "exactly window size",
			text:       strings.Repeat("a", 1000),
			chunkSize:  1000,
			overlap:    150,
			wantChunks: 1,
		},
		{
			name:       "3000 chars with default window",
			text:       strings.Repeat("a", 3000),
			chunkSize:  1000,
			overlap:    150,
			wantChunks: 4,
		},
		{
			name:       "zero chunk size",
			text:       "some text",
			chunkSize:  0,
			overlap:    0,
			wantChunks: 0,
		},
		{
			name:       "overlap equal to window falls back to full step",
			text:       strings.Repeat("a", 2500),
			chunkSize:  1000,
			overlap:    1000,
			wantChunks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitText(tt.text, tt.chunkSize, tt.overlap)

			if len(chunks) != tt.wantChunks {
				t.Errorf("chunk count = %d, want %d", len(chunks), tt.wantChunks)
			}
		})
	}
}

func TestSplitTextOverlap(t *testing.T) {
	// With window 10 and overlap 4, consecutive chunks must share their
	// boundary characters.
	text := "abcdefghijklmnopqrst" // 20 chars
	chunks := SplitText(text, 10, 4)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-4:]
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's tail: %q vs %q", i, chunks[i], tail)
		}
	}
}

func TestSplitTextNoDataLoss(t *testing.T) {
	text := strings.Repeat("x", 3000)
	chunks := SplitText(text, 1000, 150)

	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Error("final chunk must cover the tail of the input")
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total < len(text) {
		t.Errorf("chunks cover %d chars, input has %d", total, len(text))
	}
}
