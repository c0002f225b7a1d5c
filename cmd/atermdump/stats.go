package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/reusee/aterm/terms"
)

func writeStats(w io.Writer, stats terms.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "terms\t%d\t\n", stats.Terms)
	fmt.Fprintf(tw, "symbols\t%d\t\n", stats.Symbols)
	fmt.Fprintf(tw, "slots\t%d\t\n", stats.Slots)
	fmt.Fprintf(tw, "collections\t%d\t\n", stats.Collections)
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "class\tblocks\tslots\tlive\tfree\treclaimed\t\n")
	for _, class := range stats.Classes {
		if class.Blocks == 0 {
			continue
		}
		name := fmt.Sprint(class.Class)
		if class.Class == terms.ClassOf(terms.MaxInlineArity+1) {
			name = "wide"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t\n",
			name,
			class.Blocks,
			class.Slots,
			class.Live,
			class.Free,
			class.Reclaimed,
		)
	}
	return tw.Flush()
}
