package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/funvibe/minml/internal/config"
)

var cmdDirective = regexp.MustCompile(`^\(\*\s*cmd:\s*(.*?)\s*\*\)`)

// TestFunctional runs every testdata source file that has a .want file
// through the command tree and compares the combined output.
//
// The first line of each source names the command line, with {file}
// standing for the source path:
//
//	(* cmd: run --entry fib {file} 10 *)
func TestFunctional(t *testing.T) {
	var testFiles []string
	err := filepath.Walk("testdata", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		for _, ext := range config.SourceFileExtensions {
			if strings.HasSuffix(path, ext) {
				wantFile := strings.TrimSuffix(path, ext) + ".want"
				if _, err := os.Stat(wantFile); err == nil {
					testFiles = append(testFiles, path)
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk directory: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No test files with .want found")
	}

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), filepath.Ext(testFile))
		t.Run(testName, func(t *testing.T) {
			src, err := os.ReadFile(testFile)
			if err != nil {
				t.Fatalf("Failed to read source: %v", err)
			}
			firstLine, _, _ := strings.Cut(string(src), "\n")
			m := cmdDirective.FindStringSubmatch(firstLine)
			if m == nil {
				t.Fatalf("%s: first line has no (* cmd: ... *) directive", testFile)
			}
			var args []string
			for _, f := range strings.Fields(m[1]) {
				args = append(args, strings.ReplaceAll(f, "{file}", filepath.ToSlash(testFile)))
			}

			wantFile := strings.TrimSuffix(testFile, filepath.Ext(testFile)) + ".want"
			wantBytes, err := os.ReadFile(wantFile)
			if err != nil {
				t.Fatalf("Failed to read .want file: %v", err)
			}
			want := strings.TrimSpace(string(wantBytes))

			var stdout, stderr bytes.Buffer
			code := Execute(context.Background(), args, strings.NewReader(""), &stdout, &stderr)

			var parts []string
			if s := strings.TrimSpace(stdout.String()); s != "" {
				parts = append(parts, s)
			}
			if s := strings.TrimSpace(stderr.String()); s != "" {
				parts = append(parts, s)
			}
			if code != ExitOK {
				parts = append(parts, fmt.Sprintf("exit status %d", code))
			}
			got := strings.Join(parts, "\n")

			if got != want {
				t.Errorf("output mismatch for %s\n--- want ---\n%s\n--- got ---\n%s", testFile, want, got)
			}
		})
	}
}
