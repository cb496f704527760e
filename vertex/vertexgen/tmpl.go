// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vertexgen

import "text/template"

// RecordTmpl is the template for the static layout of one vertex record.
var RecordTmpl = template.Must(template.New("Record").Parse(`
var _{{.Name}}VertexLayout = vertex.MustValidate(&vertex.Layout{Name: "{{.Name}}", Stride: {{.Stride}}, Attributes: []vertex.Attribute{
{{- range .Fields}}
	{Name: "{{.Name}}", Location: {{.Location}}, Format: vertex.FormatOf[{{.Type}}](), Offset: {{.Offset}}},
{{- end}}
}})

// VertexLayout returns the memory layout of [{{.Name}}].
func ({{.Name}}) VertexLayout() *vertex.Layout { return _{{.Name}}VertexLayout }
`))
