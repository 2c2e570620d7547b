package scaffold

import "path"

// File is one generated file.
type File struct {
	Path     string // slash-separated, relative to the project root
	Template string
	Domain   string
}

// Plan lists the directories and files Generate creates for opts.
// opts must be validated.
func Plan(opts Options) (dirs []string, files []File) {
	dirs = []string{"deploy", "domains"}
	files = []File{
		{Path: "go.mod", Template: "go.mod.tmpl"},
		{Path: ".env", Template: "env.tmpl"},
		{Path: ".env.example", Template: "env.tmpl"},
		{Path: ".gitignore", Template: "gitignore.tmpl"},
		{Path: "main.go", Template: "main.go.tmpl"},
		{Path: "deploy/main.go", Template: "deploy.go.tmpl"},
		{Path: "domains/domains.go", Template: "domains.go.tmpl"},
	}

	for i, domain := range opts.Domains {
		dir := path.Join("domains", domain)
		dirs = append(dirs, dir)
		if i == 0 {
			files = append(files, File{Path: path.Join(dir, "ping.go"), Template: "ping.go.tmpl", Domain: domain})
		} else {
			files = append(files, File{Path: path.Join(dir, "doc.go"), Template: "doc.go.tmpl", Domain: domain})
		}
	}

	if !opts.Minimal {
		dirs = append(dirs, "middlewares")
		files = append(files,
			File{Path: "middlewares/middlewares.go", Template: "middlewares.go.tmpl"},
			File{Path: "Makefile", Template: "Makefile.tmpl"},
			File{Path: "README.md", Template: "README.md.tmpl"},
		)
	}

	if opts.WithStore() {
		dirs = append(dirs, "store")
	}
	if opts.WithSQL() {
		files = append(files, File{Path: "store/store.go", Template: "store.go.tmpl"})
	}
	if opts.WithPostgres {
		files = append(files,
			File{Path: "store/postgres.go", Template: "postgres.go.tmpl"},
			File{Path: "store/schema.sql", Template: "schema.sql.tmpl"},
		)
	}
	if opts.WithSQLite {
		files = append(files, File{Path: "store/sqlite.go", Template: "sqlite.go.tmpl"})
	}
	if opts.WithMongo {
		files = append(files, File{Path: "store/mongo.go", Template: "mongo.go.tmpl"})
	}

	return dirs, files
}
