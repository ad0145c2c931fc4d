package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	chartrender "github.com/go-echarts/go-echarts/v2/render"
)

func renderToHtml(deps *Dependencies, c interface{}) template.HTML {
	sublog := deps.logger

	var buf bytes.Buffer
	r := c.(chartrender.Renderer)
	err := r.Render(&buf)
	if err != nil {
		sublog.Error().Err(err).Msg("failed to render chart")
		return ""
	}

	return template.HTML(buf.String())
}

// snippetRenderer renders a chart as an embeddable <div>+<script> fragment
// instead of a full standalone page, so many charts can share one document.
type snippetRenderer struct {
	c      interface{}
	before []func()
}

func newSnippetRenderer(c interface{}, before ...func()) chartrender.Renderer {
	return &snippetRenderer{c: c, before: before}
}

func (r *snippetRenderer) Render(w io.Writer) error {
	const tplName = "_chart"
	for _, fn := range r.before {
		fn()
	}

	tpl := template.
		Must(template.New(tplName).
			Funcs(template.FuncMap{
				"safeJS": func(s interface{}) template.JS {
					return template.JS(fmt.Sprint(s))
				},
			}).
			ParseFiles("templates/charts/_chart.gohtml"),
		)

	err := tpl.ExecuteTemplate(w, tplName, r.c)
	return err
}

func (r *snippetRenderer) RenderContent() []byte {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

// RenderSnippet satisfies the renderer interface; the fragment this renderer
// produces already embeds element and script together, so the split snippet
// form stays empty.
func (r *snippetRenderer) RenderSnippet() chartrender.ChartSnippet {
	return chartrender.ChartSnippet{}
}
