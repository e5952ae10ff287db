package web

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	vm "github.com/ericfisherdev/kbdash/internal/adapter/driving/web/viewmodel"
)

// InjectView applies the view model to an operator-supplied host page. The
// children of the first element carrying each target id are replaced by the
// matching fragment. Targets missing from the page and zero fragments are
// skipped silently.
func InjectView(page []byte, v vm.DashboardViewModel) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing host page: %w", err)
	}

	targets := v.Targets()
	if err := injectNode(doc, targets); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering host page: %w", err)
	}
	return buf.Bytes(), nil
}

// injectNode walks the tree depth-first. Each id is consumed on first match,
// mirroring getElementById.
func injectNode(n *html.Node, targets map[string]vm.Fragment) error {
	if len(targets) == 0 {
		return nil
	}

	if n.Type == html.ElementNode {
		if frag, ok := targets[elementID(n)]; ok {
			delete(targets, elementID(n))
			if !frag.IsZero() {
				return replaceChildren(n, frag)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := injectNode(c, targets); err != nil {
			return err
		}
	}
	return nil
}

func elementID(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, "id") {
			return a.Val
		}
	}
	return ""
}

func replaceChildren(n *html.Node, frag vm.Fragment) error {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}

	if !frag.IsHTML() {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: frag.Text})
		return nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(frag.HTML), n)
	if err != nil {
		return fmt.Errorf("parsing fragment for #%s: %w", elementID(n), err)
	}
	for _, child := range nodes {
		n.AppendChild(child)
	}
	return nil
}
