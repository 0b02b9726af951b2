package firebuild

import "testing"

const sampleStats = `Statistics of stored cache:
  Hits:          64 / 102 (62.75 %)
  Misses:        38
  Uncacheable:   12
  GC runs:        0
Newly cached:    38
Cache size:   12.34 MB
Saved CPU time: 3m 20.12s
`

func TestCacheIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		stats string
		want  bool
	}{
		{
			name:  "zero size",
			stats: "Cache size:      0.00 kB\n",
			want:  true,
		},
		{
			name:  "zero size after tab",
			stats: "Cache size:\t0.00 kB",
			want:  true,
		},
		{
			name:  "ten kilobytes is not empty",
			stats: "Cache size:     10.00 kB\n",
			want:  false,
		},
		{
			name:  "tiny but non-zero",
			stats: "Cache size:      0.01 kB\n",
			want:  false,
		},
		{
			name:  "megabytes",
			stats: sampleStats,
			want:  false,
		},
		{
			name:  "zero on another line does not match",
			stats: "Cache size:  12.00 MB\nOther:  0.00 kB\n",
			want:  false,
		},
		{
			name:  "no cache size line",
			stats: "Hits: 0\n",
			want:  false,
		},
		{
			name:  "empty output",
			stats: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheIsEmpty(tt.stats); got != tt.want {
				t.Errorf("CacheIsEmpty(%q) = %v, want %v", tt.stats, got, tt.want)
			}
		})
	}
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		setting  string
		wantFlag string
		wantOK   bool
	}{
		{"0", "", true},
		{"1", " -v", true},
		{"2", " -vv", true},
		{"3", "", false},
		{"", "", false},
		{"true", "", false},
		{" 1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.setting, func(t *testing.T) {
			flag, ok := Verbosity(tt.setting)
			if flag != tt.wantFlag || ok != tt.wantOK {
				t.Errorf("Verbosity(%q) = (%q, %v), want (%q, %v)", tt.setting, flag, ok, tt.wantFlag, tt.wantOK)
			}
		})
	}
}

func TestSummaryBlock(t *testing.T) {
	got := SummaryBlock("Hits: 1\nMisses: 0")
	want := "## Firebuild Cache Hit Statistics\n```\nHits: 1\nMisses: 0\n```\n"
	if got != want {
		t.Errorf("SummaryBlock() = %q, want %q", got, want)
	}
}

func TestParseCacheSize(t *testing.T) {
	tests := []struct {
		name   string
		stats  string
		want   string
		wantOK bool
	}{
		{name: "megabytes", stats: sampleStats, want: "12.34 MB", wantOK: true},
		{name: "zero", stats: "Cache size:  0.00 kB", want: "0.00 kB", wantOK: true},
		{name: "integer value", stats: "Cache size: 3 GB", want: "3.00 GB", wantOK: true},
		{name: "missing", stats: "Hits: 1", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, ok := ParseCacheSize(tt.stats)
			if ok != tt.wantOK {
				t.Fatalf("ParseCacheSize() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if size.String() != tt.want {
				t.Errorf("ParseCacheSize() = %q, want %q", size.String(), tt.want)
			}
		})
	}
}
