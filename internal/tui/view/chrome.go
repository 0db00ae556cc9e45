package view

import (
	"fmt"
	"strings"

	tuitheme "comicshelf/internal/tui/theme"
)

func Tabs(active int, th tuitheme.Theme) string {
	labels := []string{"1 archive", "2 latest", "3 about"}
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if i == active {
			rendered[i] = th.TabActive.Render(label)
			continue
		}
		rendered[i] = th.TabInactive.Render(label)
	}
	return strings.Join(rendered, " ")
}

func Toolbar(inReader bool) string {
	if inReader {
		return "←/h prev | →/l next | g first | G latest | y copy link | o open image | esc back | q quit"
	}
	return "j/k move | enter read | 1/2/3 tabs | G latest | r refresh | q quit"
}

func Footer(total, position int, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("comics") + " " + th.MetaValue.Render(fmt.Sprintf("%d", total)),
	}
	if position > 0 {
		parts = append(parts, th.MetaLabel.Render("reading")+" "+th.MetaValue.Render(fmt.Sprintf("%d/%d", position, total)))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	if loading {
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
	}
	if warning != "" {
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if warning != "" {
		main = warning
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
