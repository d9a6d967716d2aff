package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"cito/internal/system"
)

type envOptions struct {
	format string
	class  string
	hidden bool
	output string
	diff   string
}

var envOpts envOptions

func init() {
	f := envCmd.Flags()
	f.StringVar(&envOpts.format, "format", "text", "output format (text|msgpack)")
	f.StringVar(&envOpts.class, "class", "", "show only this class")
	f.BoolVar(&envOpts.hidden, "hidden", false, "include classes reachable only through other types")
	f.StringVarP(&envOpts.output, "output", "o", "", "write to file instead of stdout")
	f.StringVar(&envOpts.diff, "diff", "", "compare with a manifest written by --format msgpack")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the built-in types and classes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := system.NewWithContext(cmd.Context())
		m := env.Manifest()

		if envOpts.diff != "" {
			return diffManifest(cmd.OutOrStdout(), m, envOpts.diff)
		}

		out := cmd.OutOrStdout()
		if envOpts.output != "" {
			f, err := os.Create(envOpts.output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", envOpts.output, err)
			}
			defer f.Close()
			out = f
		}

		switch envOpts.format {
		case "text":
			return renderManifestText(out, m, envOpts.class, envOpts.hidden)
		case "msgpack":
			return m.Encode(out)
		default:
			return &flagError{flag: "format", value: envOpts.format, want: "text|msgpack"}
		}
	},
}

func diffManifest(out io.Writer, m *system.Manifest, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()
	old, err := system.DecodeManifest(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	changes := old.Diff(m)
	for _, c := range changes {
		fmt.Fprintln(out, c)
	}
	if len(changes) > 0 {
		return fmt.Errorf("%d differences", len(changes))
	}
	return nil
}

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	classStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const nameColumn = 44

func renderManifestText(w io.Writer, m *system.Manifest, only string, hidden bool) error {
	var b strings.Builder
	found := only == ""
	if only == "" {
		b.WriteString(sectionStyle.Render("Types"))
		b.WriteString("\n")
		for _, t := range m.Types {
			row(&b, "  "+t.Name, t.Kind)
			for _, v := range t.Values {
				row(&b, "    "+v.Name, v.Value)
			}
		}
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Classes"))
		b.WriteString("\n")
	}
	for _, c := range m.Classes {
		if only != "" && c.Name != only {
			continue
		}
		if only == "" && c.Hidden && !hidden {
			continue
		}
		found = true
		header := c.Name
		switch c.TypeParams {
		case 1:
			header += "<T>"
		case 2:
			header += "<TKey, TValue>"
		}
		if c.Base != "" {
			header += " : " + c.Base
		}
		b.WriteString(classStyle.Render(header))
		b.WriteString(" " + idStyle.Render(c.Call) + "\n")
		for _, member := range c.Members {
			if len(member.Overloads) > 0 {
				for _, o := range member.Overloads {
					row(&b, "  "+signature(o), idStyle.Render(o.ID))
				}
				continue
			}
			row(&b, "  "+signature(member), idStyle.Render(member.ID))
		}
	}
	if !found {
		return fmt.Errorf("no class %q", only)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func row(b *strings.Builder, left, right string) {
	if right == "" {
		b.WriteString(left + "\n")
		return
	}
	if runewidth.StringWidth(left) >= nameColumn {
		b.WriteString(left + " " + right + "\n")
		return
	}
	b.WriteString(runewidth.FillRight(left, nameColumn) + right + "\n")
}

func signature(m system.ManifestMember) string {
	switch m.Kind {
	case "method":
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = p.Type + " " + p.Name
			if p.Default != "" {
				params[i] += " = " + p.Default
			}
		}
		prefix := ""
		if m.Call == "static" {
			prefix = "static "
		}
		return prefix + m.Type + " " + m.Name + "(" + strings.Join(params, ", ") + ")"
	case "const":
		return "const " + m.Type + " " + m.Name + " = " + m.Value
	default:
		return m.Type + " " + m.Name
	}
}
