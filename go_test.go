package num_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
)

// The arithmetic engine is imported by everything else in the module, so
// the root package is held to the standard library plus pkg/errors. Logging,
// the CLI stack and the worker pool belong in rsa and cmd.
var allowedThirdParty = map[string]bool{
	"github.com/pkg/errors": true,
}

func TestRootPackageDeps(t *testing.T) {
	if os.Getenv("NUM_SKIP_DEPS") != "" {
		t.Skip()
	}

	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}

	var bad []string
	fset := token.NewFileSet()
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatal(err)
		}
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				t.Fatal(err)
			}
			first := strings.SplitN(path, "/", 2)[0]
			if !strings.Contains(first, ".") {
				continue // standard library
			}
			if !allowedThirdParty[path] {
				bad = append(bad, file+": "+path)
			}
		}
	}

	if len(bad) > 0 {
		sort.Strings(bad)
		t.Fatal("root package has unexpected imports:\n" + strings.Join(bad, "\n"))
	}
}
