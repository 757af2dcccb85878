package textbuf

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/textbuf/lines"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
capacity: 8
units: runes
line_breaks: unicode
max_versions: 16
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Capacity != 8 || cfg.Units != "runes" || cfg.MaxVersions != 16 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.ChangeCountThreshold != DefaultChangeCountThreshold {
		t.Errorf("expected missing field to keep its default, have %d", cfg.ChangeCountThreshold)
	}
	vc, err := FromString("a\u2028b", WithConfig(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if vc.Snapshot().LineCount() != 2 || vc.Measure() != lines.Runes {
		t.Errorf("expected configuration to be applied to the cache")
	}
}

func TestLoadConfigEmptyInput(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, have %+v", cfg)
	}
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	inputs := []string{
		"capacity: 100\n",
		"units: furlongs\n",
		"line_breaks: crlf-only\n",
		"no_such_field: 1\n",
		"capacity: [1, 2]\n",
	}
	for _, in := range inputs {
		if _, err := LoadConfig(strings.NewReader(in)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%q: expected ErrInvalidConfig, got %v", in, err)
		}
	}
}

func TestOptionsOverrideConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 16
	vc, err := NewVersionCache(WithConfig(cfg), WithCapacity(5), WithBreaks(lines.LF))
	if err != nil {
		t.Fatal(err)
	}
	if vc.Config().Capacity != 5 || vc.Config().LineBreaks != "lf" {
		t.Errorf("expected options to override config, have %+v", vc.Config())
	}
}
