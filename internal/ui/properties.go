//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pagebuilder/internal/builder"
)

// noSelectionHint is shown while nothing is selected.
const noSelectionHint = "Select a component on the canvas"

// PropertyPanel edits the selected component. It shows one entry per field
// of builder.Properties and writes every keystroke back through the editor.
type PropertyPanel struct {
	widget.BaseWidget

	editor  *builder.Editor
	title   *widget.Label
	hint    *widget.Label
	fields  map[string]*fieldRow
	box     *fyne.Container
	syncing bool
	unsub   func()
}

type fieldRow struct {
	label *widget.Label
	entry *widget.Entry
	row   *fyne.Container
}

// NewPropertyPanel binds a panel to editor. Call Close to unsubscribe.
func NewPropertyPanel(editor *builder.Editor) *PropertyPanel {
	p := &PropertyPanel{
		editor: editor,
		title:  widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		hint:   widget.NewLabel(noSelectionHint),
		fields: map[string]*fieldRow{},
	}
	// Text content may span lines; an image source is a single line.
	p.fields[builder.KeyContent] = p.newField(widget.NewMultiLineEntry())
	p.fields[builder.KeySource] = p.newField(widget.NewEntry())
	p.box = container.NewVBox(p.title, p.hint, p.fields[builder.KeyContent].row, p.fields[builder.KeySource].row)
	p.ExtendBaseWidget(p)
	p.apply(editor.Snapshot())
	p.unsub = editor.Subscribe(p.apply)
	return p
}

func (p *PropertyPanel) newField(e *widget.Entry) *fieldRow {
	f := &fieldRow{label: widget.NewLabel(""), entry: e}
	e.OnChanged = func(v string) {
		if p.syncing {
			return
		}
		p.editor.EditSelected(v)
	}
	f.row = container.NewVBox(f.label, e)
	return f
}

// Close detaches the panel from its editor.
func (p *PropertyPanel) Close() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
}

// Entry returns the entry for a field key, for tests and focus handling.
func (p *PropertyPanel) Entry(key string) *widget.Entry {
	if f, ok := p.fields[key]; ok {
		return f.entry
	}
	return nil
}

// Title is the heading currently shown.
func (p *PropertyPanel) Title() string { return p.title.Text }

// apply mirrors st into the panel. Entries are only rewritten when their text
// differs so the cursor survives the editor's own notifications.
func (p *PropertyPanel) apply(st builder.State) {
	p.syncing = true
	defer func() { p.syncing = false }()

	panel, ok := builder.Properties(st)
	if !ok {
		p.title.SetText("")
		p.title.Hide()
		p.hint.Show()
		for _, f := range p.fields {
			f.row.Hide()
		}
		return
	}
	p.title.SetText(panel.Title)
	p.title.Show()
	p.hint.Hide()
	visible := map[string]bool{}
	for _, fd := range panel.Fields {
		f, ok := p.fields[fd.Key]
		if !ok {
			continue
		}
		visible[fd.Key] = true
		f.label.SetText(fd.Label)
		f.entry.SetPlaceHolder(fd.Placeholder)
		if f.entry.Text != fd.Value {
			f.entry.SetText(fd.Value)
		}
		f.row.Show()
	}
	for k, f := range p.fields {
		if !visible[k] {
			f.row.Hide()
		}
	}
}

func (p *PropertyPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewPadded(p.box))
}
