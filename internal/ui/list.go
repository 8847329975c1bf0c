package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytlist/internal/models"
)

var _ list.Item = videoItem{}

// videoItem wraps [models.VideoRecord] to implement [list.Item].
type videoItem struct {
	index int
	video models.VideoRecord
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string       { return fmt.Sprintf("%d. %s", i.index+1, i.video.Title) }
func (i videoItem) Description() string { return i.video.URL }

func videoItems(records []models.VideoRecord) []list.Item {
	items := make([]list.Item, len(records))
	for i, rec := range records {
		items[i] = videoItem{index: i, video: rec}
	}
	return items
}
