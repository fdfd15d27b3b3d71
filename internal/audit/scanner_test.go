package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docgaps/internal/parser"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestScanner(t *testing.T, excludeDirs, excludeFiles []string) *Scanner {
	t.Helper()
	p := parser.NewParser(parser.NewGrammarLoader())
	s, err := NewScanner(p, excludeDirs, excludeFiles)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestScanCollectsTargetsInStableOrder(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.py":        "def beta():\n    pass\n",
		"a.py":        "def alpha():\n    pass\n\ndef alpha2():\n    pass\n",
		"sub/c.py":    "def gamma():\n    pass\n",
		"notes.txt":   "not python",
		"README.md":   "# readme",
		"sub/ok.py":   "def fine():\n    \"\"\"Documented.\"\"\"\n    pass\n",
		"sub/util.go": "package util",
	})

	s := newTestScanner(t, nil, nil)
	reg, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	if reg.RunID == "" {
		t.Error("registry has no run ID")
	}
	if reg.FileCount != 4 {
		t.Errorf("expected 4 parsed files, got %d", reg.FileCount)
	}

	names := make([]string, 0, len(reg.Targets))
	for _, tgt := range reg.Targets {
		names = append(names, tgt.Name)
	}
	want := []string{"alpha", "alpha2", "beta", "gamma"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v in order, got %v", want, names)
	}
}

func TestScanSkipsExcludedDirsAndFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"keep.py":           "def kept():\n    pass\n",
		".venv/lib/skip.py": "def hidden():\n    pass\n",
		"gen/skip_pb2.py":   "def generated():\n    pass\n",
		"__pycache__/x.py":  "def cached():\n    pass\n",
		"nested/also_ok.py": "def nested_fn():\n    pass\n",
	})

	s := newTestScanner(t, []string{".venv", "__pycache__"}, []string{"*_pb2.py"})
	reg, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	for _, tgt := range reg.Targets {
		if tgt.Name == "hidden" || tgt.Name == "generated" || tgt.Name == "cached" {
			t.Errorf("excluded target leaked into scan: %s", tgt.Name)
		}
	}
}

func TestScanContinuesPastUnparsableFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"broken.py": "def broken(:\n    pass\n",
		"good.py":   "def good():\n    pass\n",
	})

	s := newTestScanner(t, nil, nil)
	reg, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	if reg.ParseFailures != 1 {
		t.Errorf("expected 1 parse failure, got %d", reg.ParseFailures)
	}
	if len(reg.Targets) != 1 || reg.Targets[0].Name != "good" {
		t.Errorf("expected only the good target, got %+v", reg.Targets)
	}
}

func TestScanCleanTreeYieldsEmptyRegistry(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"ok.py": "def fine():\n    \"\"\"Doc.\"\"\"\n    pass\n",
	})

	s := newTestScanner(t, nil, nil)
	reg, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(reg.Targets) != 0 {
		t.Errorf("expected empty registry, got %+v", reg.Targets)
	}
}

func TestScanAcceptsSingleFileRoot(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"solo.py": "def solo():\n    pass\n",
	})

	s := newTestScanner(t, nil, nil)
	reg, err := s.Scan([]string{filepath.Join(dir, "solo.py")})
	if err != nil {
		t.Fatal(err)
	}
	if len(reg.Targets) != 1 || reg.Targets[0].Name != "solo" {
		t.Errorf("expected the solo target, got %+v", reg.Targets)
	}
}

func TestByFileGroupsPreserveLineOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Targets = []parser.Target{
		{Filepath: "a.py", StartLine: 1, Name: "one"},
		{Filepath: "a.py", StartLine: 9, Name: "two"},
		{Filepath: "b.py", StartLine: 3, Name: "three"},
	}

	grouped := reg.ByFile()
	if len(grouped) != 2 {
		t.Fatalf("expected 2 files, got %d", len(grouped))
	}
	a := grouped["a.py"]
	if len(a) != 2 || a[0].Name != "one" || a[1].Name != "two" {
		t.Errorf("unexpected grouping for a.py: %+v", a)
	}
}

func TestWriteReport(t *testing.T) {
	reg := NewRegistry()
	reg.FileCount = 1
	reg.Targets = []parser.Target{{Filepath: "a.py", StartLine: 4, Name: "fn"}}

	path := filepath.Join(t.TempDir(), "report.txt")
	if err := WriteReport(path, reg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, reg.RunID) {
		t.Error("report missing run ID header")
	}
	if !strings.Contains(text, "a.py:4:fn") {
		t.Errorf("report missing target line:\n%s", text)
	}
}

func TestInvalidExcludePattern(t *testing.T) {
	p := parser.NewParser(parser.NewGrammarLoader())
	if _, err := NewScanner(p, []string{"[unclosed"}, nil); err == nil {
		t.Error("expected error for invalid glob pattern")
	}
}
