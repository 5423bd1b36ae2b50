package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agencydesk/agencydesk/internal/tui"
)

func TestPreview_View(t *testing.T) {
	p := NewPreview(tui.NewStyles())
	p.SetTitle("Launch announcement")
	p.SetFields([]PreviewField{
		{Key: "Status", Value: "draft"},
		{Key: "Keywords", Value: "launch, product"},
	})
	p.SetBody("The big day is here.")
	p.SetSize(60, 20)

	out := p.View()
	assert.Contains(t, out, "Launch announcement")
	assert.Contains(t, out, "Status:")
	assert.Contains(t, out, "draft")
	assert.Contains(t, out, "Keywords:")
	assert.Contains(t, out, "The big day is here.")
}

func TestPreview_ZeroSize(t *testing.T) {
	p := NewPreview(tui.NewStyles())
	p.SetTitle("Anything")
	assert.Equal(t, "", p.View())
}
