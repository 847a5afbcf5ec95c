// Package render turns drawing commands into an SVG document.
package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/massmola/compiler/eval"
)

type SVG struct {
	Width      float64
	Height     float64
	Background string
}

// Render writes cmds in order; later commands paint over earlier ones.
func (s SVG) Render(w io.Writer, cmds []eval.Command) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	if s.Background != "" {
		fmt.Fprintf(bw, `  <rect x="0" y="0" width="100%%" height="100%%" fill="%s"/>`+"\n", escape(s.Background))
	}
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case eval.RectCmd:
			fmt.Fprintf(bw, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
				cmd.X, cmd.Y, cmd.W, cmd.H, escape(string(cmd.Fill)))
		case eval.LineCmd:
			fmt.Fprintf(bw, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
				cmd.X1, cmd.Y1, cmd.X2, cmd.Y2, escape(string(cmd.Stroke)))
		default:
			return fmt.Errorf("render: unknown command %s", cmd)
		}
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
