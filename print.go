package columnio

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Print writes the text representation of the schema rooted at node to w.
func Print(w io.Writer, name string, node Node) error {
	return PrintIndent(w, name, node, "\t", "\n")
}

// PrintIndent is like Print but lets the caller customize the indentation
// pattern and line separator.
func PrintIndent(w io.Writer, name string, node Node, pattern, newline string) error {
	pw := &printWriter{writer: w}
	pw.WriteString("message ")

	if name == "" {
		pw.WriteString("{")
	} else {
		pw.WriteString(name)
		pw.WriteString(" {")
	}

	if node.NumChildren() > 0 {
		pi := &printIndent{
			pattern: pattern,
			newline: newline,
			repeat:  1,
		}

		pi.writeNewLine(pw)

		for _, child := range node.ChildNames() {
			printWithIndent(pw, child, node.ChildByName(child), pi)
			pi.writeNewLine(pw)
		}
	}

	pw.WriteString("}")
	return pw.err
}

func printWithIndent(w io.StringWriter, name string, node Node, indent *printIndent) {
	indent.writeTo(w)

	switch {
	case node.Optional():
		w.WriteString("optional ")
	case node.Repeated():
		w.WriteString("repeated ")
	default:
		w.WriteString("required ")
	}

	if node.NumChildren() == 0 {
		w.WriteString(node.Type().String())
		w.WriteString(" ")
		w.WriteString(name)
		w.WriteString(";")
	} else {
		w.WriteString("group")

		if name != "" {
			w.WriteString(" ")
			w.WriteString(name)
		}

		w.WriteString(" {")
		indent.writeNewLine(w)
		indent.push()

		for _, child := range node.ChildNames() {
			printWithIndent(w, child, node.ChildByName(child), indent)
			indent.writeNewLine(w)
		}

		indent.pop()
		indent.writeTo(w)
		w.WriteString("}")
	}
}

type printIndent struct {
	pattern string
	newline string
	repeat  int
}

func (i *printIndent) push() { i.repeat++ }

func (i *printIndent) pop() { i.repeat-- }

func (i *printIndent) writeTo(w io.StringWriter) {
	if i.pattern != "" {
		for n := 0; n < i.repeat; n++ {
			w.WriteString(i.pattern)
		}
	}
}

func (i *printIndent) writeNewLine(w io.StringWriter) {
	w.WriteString(i.newline)
}

type printWriter struct {
	writer io.Writer
	err    error
}

func (w *printWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := io.WriteString(w.writer, s)
	if err != nil {
		w.err = err
	}
	return n, err
}

var _ io.StringWriter = (*printWriter)(nil)

// DumpColumns renders a table summarizing the state of every column of the
// buffer: field path, type, schema levels, value and null counts, size.
func DumpColumns(w io.Writer, buf *Buffer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"COLUMN", "TYPE", "R", "D", "VALUES", "NULLS", "SIZE"})
	table.SetAutoFormatHeaders(false)

	for _, col := range buf.Schema().Columns() {
		b := buf.ColumnBuffer(col.Index())
		table.Append([]string{
			strings.Join(col.Path(), "."),
			col.Type().Kind().String(),
			strconv.Itoa(int(col.MaxRepetitionLevel())),
			strconv.Itoa(int(col.MaxDefinitionLevel())),
			strconv.Itoa(b.NumValues() - b.NumNulls()),
			strconv.Itoa(b.NumNulls()),
			strconv.FormatInt(b.Size(), 10),
		})
	}

	table.Render()
}
