package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/worklog/internal/model"
)

// DefectsText writes one line per defect, or a single success line.
func DefectsText(w io.Writer, defects []model.Defect) error {
	if len(defects) == 0 {
		_, err := fmt.Fprintf(w, "  %s\n", okStyle.Render("✓ no problems found"))
		return err
	}
	var b strings.Builder
	for _, d := range defects {
		fmt.Fprintf(&b, "  %s %s %s\n",
			errStyle.Render("✗"),
			dimStyle.Render(fmt.Sprintf("line %-4d", d.Line())),
			d.Message())
	}
	fmt.Fprintf(&b, "\n%d problem(s) found\n", len(defects))
	_, err := io.WriteString(w, b.String())
	return err
}
