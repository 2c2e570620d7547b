package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// discoveredCommand is a slash command literal found in a domain package.
type discoveredCommand struct {
	Domain string
	Name   string
	File   string // slash-separated, relative to the project root
}

// discoverCommands scans domains/<domain>/*.go of the project in dir for
// discordgo.ApplicationCommand literals. Files that fail to parse are skipped
// with a warning.
func discoverCommands(fs afero.Fs, dir string, log zerolog.Logger) ([]discoveredCommand, error) {
	root := filepath.Join(dir, "domains")
	exists, err := afero.DirExists(fs, root)
	if err != nil || !exists {
		return nil, err
	}

	var found []discoveredCommand
	err = afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(p) != ".go" || strings.HasSuffix(p, "_test.go") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 2 {
			return nil
		}

		src, err := afero.ReadFile(fs, p)
		if err != nil {
			return err
		}
		names, err := parseCommandNames(p, src)
		if err != nil {
			log.Warn().Err(err).Str("file", p).Msg("failed to parse command file")
			return nil
		}
		for _, name := range names {
			found = append(found, discoveredCommand{
				Domain: parts[0],
				Name:   name,
				File:   path.Join("domains", parts[0], parts[1]),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Domain != found[j].Domain {
			return found[i].Domain < found[j].Domain
		}
		return found[i].Name < found[j].Name
	})
	return found, nil
}

// parseCommandNames returns the Name of every discordgo.ApplicationCommand literal in src.
func parseCommandNames(filename string, src []byte) ([]string, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, src, 0)
	if err != nil {
		return nil, err
	}

	var names []string
	ast.Inspect(node, func(n ast.Node) bool {
		lit, ok := n.(*ast.CompositeLit)
		if !ok || !isApplicationCommand(lit.Type) {
			return true
		}
		if name, ok := stringField(lit, "Name"); ok {
			names = append(names, name)
		}
		return true
	})
	return names, nil
}

func isApplicationCommand(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "discordgo" && sel.Sel.Name == "ApplicationCommand"
}

// stringField extracts a string literal field from a keyed composite literal.
func stringField(lit *ast.CompositeLit, field string) (string, bool) {
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok || key.Name != field {
			continue
		}
		basic, ok := kv.Value.(*ast.BasicLit)
		if !ok || basic.Kind != token.STRING {
			return "", false
		}
		s, err := strconv.Unquote(basic.Value)
		if err != nil {
			return "", false
		}
		return s, true
	}
	return "", false
}
