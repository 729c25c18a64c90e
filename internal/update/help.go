package update

func helpMarkdown(view View) string {
	common := `
## Global

| Key | Action |
|-----|--------|
| 1-5 | switch view |
| ?   | toggle help |
| q   | quit |
`
	switch view {
	case ViewGoals:
		return `# Goals
| Key | Action |
|-----|--------|
| j/k   | move |
| space | toggle completion |
| +/-   | adjust quantity progress |
| a     | add (name, or "name x3 unit") |
| x     | delete |
` + common
	case ViewTasks:
		return `# Tasks
| Key | Action |
|-----|--------|
| j/k   | move |
| space | complete |
| a     | add (title, or "title @2026-01-15") |
| x     | delete |
` + common
	case ViewCompleted:
		return `# Completed
| Key | Action |
|-----|--------|
| j/k   | move |
| space | reopen |
| x     | delete |
` + common
	case ViewDeleted:
		return `# Recently deleted
| Key | Action |
|-----|--------|
| j/k | move |
| r   | restore |
| X   | delete forever |
| E   | empty everything |
` + common
	case ViewSettings:
		return `# Settings
Type a reset hour between 0 and 23 and press enter. Completions before
that hour count toward the previous day.
` + common
	}
	return common
}
