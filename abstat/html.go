// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstat

import (
	"bytes"
	"html/template"
)

var htmlTemplate = template.Must(template.New("").Parse(`
<table class='abstat'>
<tr>{{range .Columns}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr>{{range .}}<td>{{.}}{{end}}
{{end -}}
</table>
`))

// FormatHTML appends an HTML formatting of the table to buf.
func FormatHTML(buf *bytes.Buffer, t *Table) {
	data := struct {
		Columns []string
		Rows    [][]string
	}{Columns: columns}
	for _, r := range t.Rows {
		data.Rows = append(data.Rows, r.cells())
	}
	err := htmlTemplate.Execute(buf, data)
	if err != nil {
		// The only possible errors here are the template not
		// matching the data structure. Don't make the caller
		// check - it's our fault.
		panic(err)
	}
}
