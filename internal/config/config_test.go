// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

var parseTests = []struct {
	in   string
	want Config
}{
	{"", Default()},
	{"# nothing\n", Default()},
	{
		"prompt: '$ '\nforeground_only: true\n",
		Config{Prompt: "$ ", ForegroundOnly: true, KillTimeout: 2 * time.Second, Log: Log{Level: "info"}},
	},
	{
		"reap_all: true\nkill_timeout: 500ms\n",
		Config{Prompt: ": ", ReapAll: true, KillTimeout: 500 * time.Millisecond, Log: Log{Level: "info"}},
	},
	{
		"log:\n  file: /tmp/smallsh.log\n  level: debug\n",
		Config{Prompt: ": ", KillTimeout: 2 * time.Second, Log: Log{File: "/tmp/smallsh.log", Level: "debug"}},
	},
	{"prompt: ''\n", Default()},
}

func TestParse(t *testing.T) {
	t.Parallel()
	for _, tc := range parseTests {
		t.Run("", func(t *testing.T) {
			got, err := Parse([]byte(tc.in))
			qt.Assert(t, qt.IsNil(err))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestParseErr(t *testing.T) {
	t.Parallel()
	for _, in := range []string{
		"unknown_key: 1\n",
		"kill_timeout: forever\n",
		"foreground_only: [1, 2]\n",
		"log: {file: [x]}\n",
	} {
		_, err := Parse([]byte(in))
		qt.Check(t, qt.IsNotNil(err), qt.Commentf("%q", in))
	}
}

// Load reads the environment, so these tests are not parallel.

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvVar, "")

	// The default file may be missing.
	cfg, err := Load("")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.CmpEquals(cfg, Default()))

	// An explicit file may not.
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	qt.Assert(t, qt.ErrorIs(err, fs.ErrNotExist))

	explicit := filepath.Join(dir, "explicit.yaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(explicit, []byte("prompt: '> '\n"), 0o644)))
	cfg, err = Load(explicit)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(cfg.Prompt, "> "))
	qt.Assert(t, qt.Equals(cfg.Path, explicit))

	t.Setenv(EnvVar, explicit)
	cfg, err = Load("")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(cfg.Path, explicit))

	t.Setenv(EnvVar, filepath.Join(dir, "missing.yaml"))
	_, err = Load("")
	qt.Assert(t, qt.ErrorIs(err, fs.ErrNotExist))

	bad := filepath.Join(dir, "bad.yaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(bad, []byte("bogus: true\n"), 0o644)))
	_, err = Load(bad)
	qt.Assert(t, qt.ErrorMatches(err, `.*bad\.yaml: .*bogus.*`))
}

func TestLoadUserConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvVar, "")

	userDir, err := os.UserConfigDir()
	qt.Assert(t, qt.IsNil(err))
	path := filepath.Join(userDir, "smallsh", "config.yaml")
	qt.Assert(t, qt.IsNil(os.MkdirAll(filepath.Dir(path), 0o755)))
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte("reap_all: true\n"), 0o644)))

	cfg, err := Load("")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(cfg.ReapAll))
	qt.Assert(t, qt.Equals(cfg.Path, path))
}
