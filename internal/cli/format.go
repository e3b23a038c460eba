package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formoptions/internal/render"
	"github.com/goliatone/go-formoptions/pkg/options"
)

const (
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatTable    = "table"
	formatTemplate = "template"
)

var errorColor = color.New(color.FgRed, color.Bold)

// fieldView is the serialized shape of one resolved field.
type fieldView struct {
	Schema  string           `json:"schema,omitempty" yaml:"schema,omitempty"`
	Field   string           `json:"field" yaml:"field"`
	Options []options.Option `json:"options" yaml:"options"`
}

// printer writes resolved fields in one output format.
type printer struct {
	format   string
	template string
	engine   *render.Engine
	out      io.Writer
}

func newPrinter(format, template string, out io.Writer) (*printer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	p := &printer{format: format, template: template, out: out}
	switch format {
	case formatJSON, formatYAML, formatTable:
		return p, nil
	case formatTemplate:
		engine, name, err := newTemplateEngine(template)
		if err != nil {
			return nil, err
		}
		p.engine = engine
		p.template = name
		return p, nil
	default:
		return nil, fmt.Errorf("cli: unknown output format %q (want json, yaml, table or template)", format)
	}
}

// newTemplateEngine accepts inline template content or a template file path.
func newTemplateEngine(template string) (*render.Engine, string, error) {
	if strings.TrimSpace(template) == "" {
		return nil, "", fmt.Errorf("cli: --template is required with --output template")
	}
	if render.IsTemplateContent(template) {
		engine, err := render.New()
		return engine, template, err
	}
	dir, file := filepath.Split(template)
	if dir == "" {
		dir = "."
	}
	engine, err := render.New(render.WithBaseDir(dir), render.WithExtension(filepath.Ext(file)))
	return engine, file, err
}

func (p *printer) field(schemaID, field string, opts []options.Option) error {
	if opts == nil {
		opts = []options.Option{}
	}
	switch p.format {
	case formatJSON:
		return writeJSON(p.out, fieldView{Schema: schemaID, Field: field, Options: opts})
	case formatYAML:
		return writeYAML(p.out, fieldView{Schema: schemaID, Field: field, Options: opts})
	case formatTable:
		return writeTable(p.out, []string{"LABEL", "VALUE"}, optionRows("", opts))
	default:
		_, err := p.engine.Render(p.template, render.OptionsContext(schemaID, field, opts), p.out)
		return err
	}
}

func (p *printer) fields(schemaID string, byPath map[string][]options.Option) error {
	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	switch p.format {
	case formatJSON, formatYAML:
		views := make([]fieldView, 0, len(paths))
		for _, path := range paths {
			views = append(views, fieldView{Field: path, Options: byPath[path]})
		}
		payload := struct {
			Schema string      `json:"schema" yaml:"schema"`
			Fields []fieldView `json:"fields" yaml:"fields"`
		}{Schema: schemaID, Fields: views}
		if p.format == formatJSON {
			return writeJSON(p.out, payload)
		}
		return writeYAML(p.out, payload)
	case formatTable:
		var rows [][]string
		for _, path := range paths {
			rows = append(rows, optionRows(path, byPath[path])...)
		}
		return writeTable(p.out, []string{"FIELD", "LABEL", "VALUE"}, rows)
	default:
		_, err := p.engine.Render(p.template, render.FieldsContext(schemaID, paths, byPath), p.out)
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func optionRows(field string, opts []options.Option) [][]string {
	rows := make([][]string, 0, len(opts))
	for _, opt := range opts {
		row := []string{opt.Label, options.StringForm(opt.Value)}
		if field != "" {
			row = append([]string{field}, row...)
		}
		rows = append(rows, row)
	}
	return rows
}

// writeTable pads columns by display width so CJK and emoji labels line up.
// The header is coloured only when w is a terminal.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for idx, cell := range header {
		widths[idx] = runewidth.StringWidth(cell)
	}
	for _, row := range rows {
		for idx, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[idx] {
				widths[idx] = width
			}
		}
	}

	headerLine := formatRow(header, widths)
	if isTerminal(w) {
		paint := color.New(color.FgBlue, color.Bold)
		paint.EnableColor()
		headerLine = paint.Sprint(headerLine)
	}
	if _, err := fmt.Fprintln(w, headerLine); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, formatRow(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for idx, cell := range cells {
		if idx == len(cells)-1 {
			padded[idx] = cell
			continue
		}
		padded[idx] = runewidth.FillRight(cell, widths[idx])
	}
	return strings.Join(padded, "  ")
}

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(v any) bool {
	f, ok := v.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func isInteractive(in, out any) bool {
	return isTerminal(in) && isTerminal(out)
}
