// Package printer renders a parsed QDIMACS instance back to QDIMACS text.
// Grounded on original_source/src/qcnf.rs's Display impls for the
// instance, clause and literal types, and on a Clause.String() method's
// use of strings.Builder for building the output.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/twoqbf/incdet/internal/qdimacs"
)

// Print writes inst to w in QDIMACS format. The output, fed back through
// qdimacs.Parse, reproduces an equivalent instance.
func Print(w io.Writer, inst *qdimacs.Instance) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", inst.NumVars, len(inst.Clauses)); err != nil {
		return err
	}
	for _, block := range inst.Prefix {
		if err := printQuantifierLine(w, block); err != nil {
			return err
		}
	}
	for _, clause := range inst.Clauses {
		if err := printClause(w, clause); err != nil {
			return err
		}
	}
	return nil
}

func printQuantifierLine(w io.Writer, block qdimacs.QuantifierLine) error {
	sb := strings.Builder{}
	if block.Universal {
		sb.WriteString("a")
	} else {
		sb.WriteString("e")
	}
	for _, v := range block.Vars {
		sb.WriteByte(' ')
		sb.WriteString(fmt.Sprintf("%d", v))
	}
	sb.WriteString(" 0\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func printClause(w io.Writer, lits []int) error {
	sb := strings.Builder{}
	for i, l := range lits {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%d", l))
	}
	sb.WriteString(" 0\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// String renders inst as a QDIMACS document.
func String(inst *qdimacs.Instance) string {
	sb := &strings.Builder{}
	_ = Print(sb, inst)
	return sb.String()
}
