// Command docgen renders the hours command reference to markdown and HTML.
//
//	go run ./tools/docgen -out docs
package main

import (
	"bytes"
	"flag"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wwlorey/hours/internal/cli"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// page is one generated document.
type page struct {
	Name     string // file name without extension
	Title    string
	Markdown []byte
}

type pageData struct {
	Title   string
	Nav     []page
	Current string
	Content template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} · hours</title>
</head>
<body>
<nav>
{{- range .Nav}}
  <a href="{{.Name}}.html"{{if eq .Name $.Current}} class="active"{{end}}>{{.Title}}</a>
{{- end}}
</nav>
<main>
{{.Content}}
</main>
</body>
</html>
`))

func main() {
	outDir := flag.String("out", "docs", "output directory")
	flag.Parse()

	pages := commandPages(cli.Root())
	md := newMarkdown()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatal("creating %s: %v", *outDir, err)
	}
	for _, p := range pages {
		html, err := renderPage(md, p, pages)
		if err != nil {
			fatal("rendering %s: %v", p.Name, err)
		}
		for ext, data := range map[string][]byte{".md": p.Markdown, ".html": html} {
			path := filepath.Join(*outDir, p.Name+ext)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				fatal("writing %s: %v", path, err)
			}
		}
		fmt.Printf("  generated %s\n", p.Name)
	}
	fmt.Printf("\n  %d pages generated\n", len(pages))
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Linkify,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// commandPages returns an index page followed by one page per visible
// subcommand, depth first.
func commandPages(root *cobra.Command) []page {
	pages := []page{{Name: "index", Title: root.Name(), Markdown: indexMarkdown(root)}}
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, sub := range c.Commands() {
			if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
				continue
			}
			pages = append(pages, page{
				Name:     pageName(sub),
				Title:    sub.CommandPath(),
				Markdown: commandMarkdown(sub),
			})
			walk(sub)
		}
	}
	walk(root)
	return pages
}

func pageName(c *cobra.Command) string {
	return strings.ReplaceAll(c.CommandPath(), " ", "_")
}

func indexMarkdown(root *cobra.Command) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", root.Name(), root.Short)
	b.WriteString("| Command | Description |\n|---|---|\n")
	for _, c := range root.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		fmt.Fprintf(&b, "| [%s](%s.html) | %s |\n", c.Name(), pageName(c), c.Short)
	}
	if flags := root.PersistentFlags().FlagUsages(); flags != "" {
		fmt.Fprintf(&b, "\n## Global flags\n\n```\n%s```\n", flags)
	}
	return b.Bytes()
}

func commandMarkdown(c *cobra.Command) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", c.CommandPath(), c.Short)
	if c.Long != "" {
		fmt.Fprintf(&b, "%s\n\n", c.Long)
	}
	fmt.Fprintf(&b, "## Usage\n\n```sh\n%s\n```\n", c.UseLine())
	if flags := c.NonInheritedFlags().FlagUsages(); flags != "" {
		fmt.Fprintf(&b, "\n## Flags\n\n```\n%s```\n", flags)
	}
	return b.Bytes()
}

func renderPage(md goldmark.Markdown, p page, nav []page) ([]byte, error) {
	var content bytes.Buffer
	if err := md.Convert(p.Markdown, &content); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	err := pageTemplate.Execute(&out, pageData{
		Title:   p.Title,
		Nav:     nav,
		Current: p.Name,
		Content: template.HTML(content.String()),
	})
	return out.Bytes(), err
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "docgen: "+format+"\n", args...)
	os.Exit(1)
}
