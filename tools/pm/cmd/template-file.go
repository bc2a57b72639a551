package cmd

import (
	"fmt"
	"go/doc"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
)

var templateFileCmd = &cobra.Command{
	Use:   "template-file <infile> <outfile>",
	Short: "output a template file using project details",
	Args:  cobra.ExactArgs(2),
	Run:   TemplateFile,
}

var (
	reUnindent  = regexp.MustCompile(`(?ms)^    `)
	reSnipMain  = regexp.MustCompile(`(?ms)^func main\(\) \{$`)
	reSnipStart = regexp.MustCompile(`(?ms)\s*// snip start$`)
	reSnipEnd   = regexp.MustCompile(`(?ms)^(?:}|\s*// snip end)$`)
	reNolint    = regexp.MustCompile(`(?ms)//nolint.*?$`)
)

// TemplateFile renders the template in args[0] into args[1]. Templates get
// two funcs for pulling example code out of Go test files: Example renders a
// whole example function as a playground program and ExampleCode renders just
// the interesting lines, trimmed to the snip markers.
func TemplateFile(_ *cobra.Command, args []string) {
	infile, outfile := args[0], args[1]

	out, err := os.Create(outfile)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: unable to create %q: %v\n", outfile, err)
		os.Exit(1)
	}

	tmpl := template.New(filepath.Base(infile)).Funcs(template.FuncMap{
		"Example":     renderExample,
		"ExampleCode": renderExampleCode,
	})

	tmpl, err = tmpl.ParseFiles(infile)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: unable to decode template file %q: %v\n", infile, err)
		os.Exit(1)
	}

	err = tmpl.Execute(out, nil)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: cannot render template file: %v\n", err)
		os.Exit(1)
	}

	err = out.Close()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: cannot close new file %q: %v", outfile, err)
		os.Exit(1)
	}
}

// renderExample locates the named example in src and pretty-prints its
// playground form with four-space indents.
func renderExample(src, name string) (string, error) {
	fset := token.NewFileSet()
	ex, err := findExample(fset, src, name)
	if err != nil {
		return "", err
	}

	b := &strings.Builder{}
	pc := &printer.Config{
		Mode:     printer.UseSpaces,
		Tabwidth: 4,
	}
	if err := pc.Fprint(b, fset, ex.Play); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderExampleCode is renderExample cut down to the body: everything up to
// the opening of main (or a "// snip start" marker) and everything from the
// closing brace (or "// snip end") is dropped, lint pragmas are stripped, and
// the remainder is unindented one level.
func renderExampleCode(src, name string) (string, error) {
	s, err := renderExample(src, name)
	if err != nil {
		return "", err
	}

	if ixs := reSnipMain.FindStringIndex(s); ixs != nil {
		s = s[ixs[1]:]
	}
	if ixs := reSnipStart.FindStringIndex(s); ixs != nil {
		s = s[ixs[1]:]
	}
	if ixs := reSnipEnd.FindStringIndex(s); ixs != nil {
		s = s[:ixs[0]]
	}

	s = reNolint.ReplaceAllString(s, "")
	s = reUnindent.ReplaceAllString(s, "")
	return strings.TrimSpace(s), nil
}

// findExample parses src and returns its example named name.
func findExample(fset *token.FileSet, src, name string) (*doc.Example, error) {
	f, err := parser.ParseFile(fset, src, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	for _, ex := range doc.Examples(f) {
		if ex.Name == name {
			return ex, nil
		}
	}

	return nil, fmt.Errorf("example %q not found in file %q", name, src)
}
