package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/hitsound/internal/config"
	"git.lost.host/meutraa/hitsound/internal/hits"
	"git.lost.host/meutraa/hitsound/internal/testdata"
)

func program(t *testing.T, cache bool) (*Program, string) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "2.aff")
	if err := os.WriteFile(chart, []byte(testdata.Chart), 0o644); nil != err {
		t.Fatal(err)
	}
	opts := &config.Options{
		Command: config.HitsCommand,
		Chart:   chart,
		Out:     filepath.Join(dir, "hits.txt"),
		Radius:  5,
	}
	if cache {
		opts.Cache = filepath.Join(dir, "hits.db")
	}
	p := &Program{Options: opts, Stdout: &bytes.Buffer{}}
	if err := p.Init(); nil != err {
		t.Fatal(err)
	}
	t.Cleanup(p.Deinit)
	return p, dir
}

func TestHits(t *testing.T) {
	p, _ := program(t, true)
	if err := p.Hits(); nil != err {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p.Options.Out)
	if nil != err {
		t.Fatal(err)
	}
	if string(b) != testdata.Hits {
		t.Errorf("hit file\n%s\nwant\n%s", b, testdata.Hits)
	}
	if p.Stdout.(*bytes.Buffer).Len() == 0 {
		t.Error("no summary printed")
	}

	res, err := p.Process(p.Options.Chart)
	if nil != err {
		t.Fatal(err)
	}
	if !res.Cached {
		t.Error("second pass did not reuse stored hits")
	}
	if res.Runs != 1 {
		t.Errorf("%d stored runs, want 1", res.Runs)
	}
	if !strings.Contains(p.Stdout.(*bytes.Buffer).String(), "Runs:") {
		t.Error("summary does not show stored runs")
	}
	if len(res.Hits) != 5 {
		t.Errorf("%d cached hits, want 5", len(res.Hits))
	}
}

func TestApplyOffset(t *testing.T) {
	p, _ := program(t, false)
	p.Options.ApplyOffset = true
	res, err := p.Process(p.Options.Chart)
	if nil != err {
		t.Fatal(err)
	}
	if res.Cached || res.Runs != 0 {
		t.Errorf("cached %v with %d runs without a store", res.Cached, res.Runs)
	}
	if res.Hits[0].Time != 662+248 {
		t.Errorf("first hit at %d, want %d", res.Hits[0].Time, 662+248)
	}
}

func TestOverwriteWithoutTerminal(t *testing.T) {
	p, _ := program(t, false)
	if err := os.WriteFile(p.Options.Out, []byte("old\n"), 0o644); nil != err {
		t.Fatal(err)
	}
	if err := p.Hits(); nil != err {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(p.Options.Out)
	if !strings.HasPrefix(string(b), "662 ") {
		t.Errorf("hit file was not replaced: %q", b)
	}
}

func TestMidiExport(t *testing.T) {
	p, dir := program(t, false)
	p.Options.MIDI = filepath.Join(dir, "hits.mid")
	if err := p.Hits(); nil != err {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p.Options.MIDI)
	if nil != err {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("MThd")) {
		t.Errorf("midi file starts with %q", b[:4])
	}
}

func TestMixFromHitFile(t *testing.T) {
	p, dir := program(t, false)
	if err := p.Hits(); nil != err {
		t.Fatal(err)
	}
	in, err := hits.ReadFile(p.Options.Out)
	if nil != err || len(in) != 5 {
		t.Fatalf("read %d hits (%v)", len(in), err)
	}
	// Samples are missing so mixing must fail before writing anything
	p.Options.HitsFile = p.Options.Out
	p.Options.Wav = filepath.Join(dir, "rhythm.wav")
	p.Options.SampleRate = 44100
	p.Options.Samples = map[hits.Sound]string{hits.TapSound: filepath.Join(dir, "missing.wav")}
	if err := p.Mix(); nil == err {
		t.Error("expected an error for a missing sample")
	}
}

func TestWatch(t *testing.T) {
	p, _ := program(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx) }()

	// Wait for the first pass, then drop the hold and save again
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(p.Options.Out); nil == err {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first pass never wrote the hit file")
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)
	edited := strings.Replace(testdata.Chart, "hold(7624,8950,1);\n", "", 1)
	if err := os.WriteFile(p.Options.Chart, []byte(edited), 0o644); nil != err {
		t.Fatal(err)
	}

	for {
		b, _ := os.ReadFile(p.Options.Out)
		if !strings.Contains(string(b), "7624") && len(b) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("hit file was not rewritten")
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	if err := <-done; nil != err {
		t.Error(err)
	}
}
