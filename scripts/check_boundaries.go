package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "estatehub"

// sharedKernel holds the role and action vocabulary every context evaluates
// requests against.
const sharedKernel = modulePath + "/contexts/identity-access/access-policy"

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerAllowlists lists what each inward layer may import besides the
// standard library. Other layers only get the cross-module check.
var layerAllowlists = map[string]func(modulePrefix string) []string{
	"domain": func(modulePrefix string) []string {
		return []string{modulePrefix + "/domain", sharedKernel + "/domain"}
	},
	"application": func(modulePrefix string) []string {
		return []string{
			modulePrefix + "/application",
			modulePrefix + "/domain",
			modulePrefix + "/ports",
			modulePath + "/contracts",
			sharedKernel,
			"golang.org/x/sync",
		}
	},
	"ports": func(modulePrefix string) []string {
		return []string{modulePrefix + "/domain", modulePath + "/contracts", sharedKernel + "/domain"}
	},
	"transport": func(string) []string { return nil },
}

func main() {
	violations := collectViolations("contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File == violations[j].File {
			if violations[i].Line == violations[j].Line {
				return violations[i].Import < violations[j].Import
			}
			return violations[i].Line < violations[j].Line
		}
		return violations[i].File < violations[j].File
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		normalized := filepath.ToSlash(path)
		parts := strings.Split(normalized, "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}
		modulePrefix := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
		violations = append(violations, validateFile(path, normalized, parts[3], modulePrefix)...)
		return nil
	})

	return violations
}

func validateFile(path string, normalizedPath string, layer string, modulePrefix string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: normalizedPath, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	report := func(line int, importPath string, rule string) {
		violations = append(violations, violation{
			File:   normalizedPath,
			Line:   line,
			Import: importPath,
			Rule:   rule,
		})
	}

	allowlist, inward := layerAllowlists[layer]
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		line := fset.Position(imp.Pos()).Line

		if strings.HasPrefix(importPath, modulePath+"/contexts/") &&
			!hasPrefix(importPath, modulePrefix) &&
			!hasPrefix(importPath, sharedKernel) {
			report(line, importPath, "cross-module imports are forbidden")
		}
		if !inward {
			continue
		}
		if strings.Contains(importPath, "/adapters/") {
			report(line, importPath, layer+" must not import adapters")
		}
		if strings.HasPrefix(importPath, modulePath+"/internal/") ||
			strings.HasPrefix(importPath, modulePath+"/cmd/") {
			report(line, importPath, layer+" must not import runtime infrastructure")
		}
		if !isStdlib(importPath) && !isAllowed(importPath, allowlist(modulePrefix)) {
			report(line, importPath, layer+" import is outside explicit allowlist")
		}
	}

	return violations
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if strings.HasPrefix(importPath, modulePath+"/") {
		return false
	}
	first := importPath
	if idx := strings.Index(first, "/"); idx != -1 {
		first = first[:idx]
	}
	return !strings.Contains(first, ".")
}
