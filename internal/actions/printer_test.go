package actions

import (
	"bytes"
	"errors"
	"testing"
)

func TestPrinterCommands(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{
			name:  "info is plain text",
			print: func(p *Printer) { p.Info("Save cache using key \"abc\".") },
			want:  "Save cache using key \"abc\".\n",
		},
		{
			name:  "infof formats",
			print: func(p *Printer) { p.Infof("archive is %d bytes", 42) },
			want:  "archive is 42 bytes\n",
		},
		{
			name:  "warning annotation",
			print: func(p *Printer) { p.Warning("something odd") },
			want:  "::warning::something odd\n",
		},
		{
			name:  "notice annotation",
			print: func(p *Printer) { p.Notice("setup failed") },
			want:  "::notice::setup failed\n",
		},
		{
			name:  "debug message",
			print: func(p *Printer) { p.Debug("details") },
			want:  "::debug::details\n",
		},
		{
			name:  "multi-line warning is escaped",
			print: func(p *Printer) { p.Warningf("line1\nline2\r100%%") },
			want:  "::warning::line1%0Aline2%0D100%25\n",
		},
		{
			name: "group markers",
			print: func(p *Printer) {
				p.StartGroup("firebuild stats")
				p.Print("Hits: 1")
				p.EndGroup()
			},
			want: "::group::firebuild stats\nHits: 1\n::endgroup::\n",
		},
		{
			name:  "print keeps text untouched",
			print: func(p *Printer) { p.Print("a\nb %") },
			want:  "a\nb %\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewPrinter(&buf))
			if got := buf.String(); got != tt.want {
				t.Errorf("output mismatch\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestPrinterGroupClosesOnError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	wantErr := errors.New("boom")
	err := p.Group("stats", func() error {
		p.Print("inside")
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Group() error = %v, want %v", err, wantErr)
	}
	want := "::group::stats\ninside\n::endgroup::\n"
	if buf.String() != want {
		t.Errorf("output mismatch\ngot:  %q\nwant: %q", buf.String(), want)
	}
}
