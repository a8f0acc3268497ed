package graph

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT renders the graph reachable from root as Graphviz DOT. The walk
// is read-only: it follows provenance links without touching gradients or
// releasing anything, so it is safe to run before a backward pass (and is
// exactly what BackwardOptions.DumpGraph does).
func WriteDOT(w io.Writer, root *Value) error {
	var sb strings.Builder
	sb.WriteString("digraph fusion {\n")
	sb.WriteString("  rankdir=LR;\n")

	ids := make(map[*Value]int)

	var visit func(v *Value)
	visit = func(v *Value) {
		if _, seen := ids[v]; seen {
			return
		}
		id := len(ids)
		ids[v] = id

		label := fmt.Sprintf("%s%v", v.buf.DType(), v.buf.Shape())
		if v.prov == nil {
			label = "leaf " + label
		}
		fmt.Fprintf(&sb, "  v%d [shape=record, label=%q];\n", id, label)

		if v.prov == nil {
			return
		}

		fmt.Fprintf(&sb, "  v%d_op [shape=ellipse, label=%q];\n", id, v.prov.op.Name())
		fmt.Fprintf(&sb, "  v%d_op -> v%d;\n", id, id)

		for _, parent := range v.prov.parents {
			visit(parent)
			fmt.Fprintf(&sb, "  v%d -> v%d_op;\n", ids[parent], id)
		}
	}

	visit(root)
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
