package html

import (
	"io"

	"github.com/recera/vango-sigma/pkg/vango/vdom"
)

// Document is a full HTML page.
type Document struct {
	Title string
	Head  []*vdom.VNode
	Body  *vdom.VNode
}

// Render writes the page, including the doctype, to w.
func (d Document) Render(w io.Writer, opts ...Option) error {
	head := append([]*vdom.VNode{
		vdom.NewElement("meta", vdom.Props{"charset": "UTF-8"}),
		vdom.NewElement("meta", vdom.Props{"name": "viewport", "content": "width=device-width, initial-scale=1.0"}),
		vdom.NewElement("title", nil, vdom.NewText(d.Title)),
	}, d.Head...)

	page := vdom.NewElement("html", vdom.Props{"lang": "en"},
		vdom.NewElement("head", nil, head...),
		vdom.NewElement("body", nil, d.Body),
	)

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return NewHTMLApplier(w, opts...).Apply(nil, page)
}
