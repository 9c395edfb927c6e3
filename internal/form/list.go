package form

import (
	"strings"

	domainerrors "github.com/secondbrain/brain-client/internal/errors"
)

// SetListMode switches between plain and list description entry. Text
// entered in either mode is kept.
func (f *Form) SetListMode(on bool) error {
	return f.edit(func() { f.listMode = on })
}

// AddListItem appends a blank line item.
func (f *Form) AddListItem() error {
	return f.edit(func() { f.listItems = append(f.listItems, "") })
}

// SetListItem replaces line item i.
func (f *Form) SetListItem(i int, value string) error {
	var rangeErr error
	err := f.edit(func() {
		if i < 0 || i >= len(f.listItems) {
			rangeErr = domainerrors.Validationf("list item %d does not exist", i)
			return
		}
		f.listItems[i] = value
	})
	if err != nil {
		return err
	}
	return rangeErr
}

// RemoveListItem deletes line item i.
func (f *Form) RemoveListItem(i int) error {
	var rangeErr error
	err := f.edit(func() {
		if i < 0 || i >= len(f.listItems) {
			rangeErr = domainerrors.Validationf("list item %d does not exist", i)
			return
		}
		f.listItems = append(f.listItems[:i], f.listItems[i+1:]...)
	})
	if err != nil {
		return err
	}
	return rangeErr
}

// ComposeDescription appends the non-blank items as bullet lines to
// description, separated from it by a blank line.
func ComposeDescription(description string, items []string) string {
	var bullets []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			bullets = append(bullets, bulletPrefix+item)
		}
	}
	if len(bullets) == 0 {
		return description
	}
	list := strings.Join(bullets, "\n")
	if description == "" {
		return list
	}
	return description + "\n\n" + list
}
