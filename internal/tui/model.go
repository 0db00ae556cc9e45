package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"comicshelf/internal/deeplink"
	"comicshelf/internal/gate"
	"comicshelf/internal/images"
	"comicshelf/internal/manifest"
	"comicshelf/internal/render/htmltext"
	"comicshelf/internal/session"
	"comicshelf/internal/storage"
	"comicshelf/internal/tui/platform"
	tuitheme "comicshelf/internal/tui/theme"
	"comicshelf/internal/tui/view"
)

const (
	tabArchive = iota
	tabLatest
	tabAbout
)

const disclaimerText = "This archive is published as-is by its author and may contain strong " +
	"language, crude humor, or subject matter not suited to all readers. " +
	"Acknowledging this notice is remembered and it will not be shown again."

// Loader fetches and decodes the archive manifest.
type Loader interface {
	Load(ctx context.Context, source string) (*manifest.Manifest, error)
}

// Store persists the resume fragment; the sqlite repository satisfies it.
type Store interface {
	Set(ctx context.Context, key, value string) error
}

type manifestLoadedMsg struct {
	man      *manifest.Manifest
	duration time.Duration
}

type manifestErrorMsg struct {
	err error
}

type imagePreviewSuccessMsg struct {
	id      string
	preview string
}

type imagePreviewErrorMsg struct {
	id  string
	err error
}

type neighborPreloadDoneMsg struct{}

type fragmentSaveErrorMsg struct {
	err error
}

type clearStatusMsg struct {
	id int
}

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Prev       key.Binding
	Next       key.Binding
	First      key.Binding
	Latest     key.Binding
	Enter      key.Binding
	Back       key.Binding
	TabArchive key.Binding
	TabLatest  key.Binding
	TabAbout   key.Binding
	NextTab    key.Binding
	Refresh    key.Binding
	CopyLink   key.Binding
	OpenImage  key.Binding
	Accept     key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		Prev:       key.NewBinding(key.WithKeys("left", "h")),
		Next:       key.NewBinding(key.WithKeys("right", "l")),
		First:      key.NewBinding(key.WithKeys("g")),
		Latest:     key.NewBinding(key.WithKeys("G")),
		Enter:      key.NewBinding(key.WithKeys("enter")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace")),
		TabArchive: key.NewBinding(key.WithKeys("1")),
		TabLatest:  key.NewBinding(key.WithKeys("2")),
		TabAbout:   key.NewBinding(key.WithKeys("3")),
		NextTab:    key.NewBinding(key.WithKeys("tab")),
		Refresh:    key.NewBinding(key.WithKeys("r")),
		CopyLink:   key.NewBinding(key.WithKeys("y")),
		OpenImage:  key.NewBinding(key.WithKeys("o")),
		Accept:     key.NewBinding(key.WithKeys("enter", "a")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// Options wires the model's collaborators. Loader and Source are required;
// everything else degrades gracefully when absent.
type Options struct {
	Loader         Loader
	Store          Store
	Gate           *gate.Gate
	Fetcher        *images.Fetcher
	Source         string
	OpenID         string
	SwipeThreshold int
	ImagePreview   bool
}

type Model struct {
	keys    keyMap
	spinner spinner.Model
	theme   tuitheme.Theme

	loader  Loader
	store   Store
	gate    *gate.Gate
	fetcher *images.Fetcher
	cache   *images.Cache

	source         string
	openOnStart    string
	swipeThreshold int
	imagePreview   bool

	man  *manifest.Manifest
	sess *session.Session

	tab        int
	gridCursor int
	inReader   bool

	width  int
	height int

	loading  bool
	loadErr  error
	status   string
	statusID int
	warning  string

	dragging bool
	dragX    int
	dragY    int

	renderImageFn       func([]byte, int) (string, error)
	copyFn              func(string) error
	openFn              func(string) error
	imagePreviews       map[string]string
	imagePreviewErrs    map[string]string
	imagePreviewLoading map[string]bool
}

func NewModel(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	threshold := opts.SwipeThreshold
	if threshold < 1 {
		threshold = 8
	}

	var cache *images.Cache
	if opts.Fetcher != nil {
		cache = images.NewCache(opts.Fetcher)
	}

	return Model{
		keys:                defaultKeyMap(),
		spinner:             sp,
		theme:               tuitheme.Default(),
		loader:              opts.Loader,
		store:               opts.Store,
		gate:                opts.Gate,
		fetcher:             opts.Fetcher,
		cache:               cache,
		source:              opts.Source,
		openOnStart:         opts.OpenID,
		swipeThreshold:      threshold,
		imagePreview:        opts.ImagePreview,
		loading:             true,
		renderImageFn:       view.RenderInlineImagePreview,
		copyFn:              platform.CopyToClipboard,
		openFn:              platform.OpenInViewer,
		imagePreviews:       make(map[string]string),
		imagePreviewErrs:    make(map[string]string),
		imagePreviewLoading: make(map[string]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadManifestCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case manifestLoadedMsg:
		return m.applyManifest(msg)

	case manifestErrorMsg:
		m.loading = false
		m.loadErr = msg.err
		return m, nil

	case imagePreviewSuccessMsg:
		delete(m.imagePreviewLoading, msg.id)
		m.imagePreviews[msg.id] = msg.preview
		delete(m.imagePreviewErrs, msg.id)
		return m, nil

	case imagePreviewErrorMsg:
		delete(m.imagePreviewLoading, msg.id)
		m.imagePreviewErrs[msg.id] = msg.err.Error()
		return m, nil

	case neighborPreloadDoneMsg:
		return m, nil

	case fragmentSaveErrorMsg:
		m.warning = "position not saved: " + msg.err.Error()
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) applyManifest(msg manifestLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.loadErr = nil
	m.man = msg.man
	m.sess = session.New(msg.man.Comics)
	m.gridCursor = 0
	m.inReader = false

	var cmds []tea.Cmd
	if m.openOnStart != "" && m.sess.OpenByID(m.openOnStart) {
		m.inReader = true
		m.gridCursor = m.sess.Cursor()
		cmds = append(cmds, m.afterMoveCmds()...)
	}
	m.openOnStart = ""

	m.statusID++
	m.status = fmt.Sprintf("Loaded %d comics in %s", m.sess.Len(), msg.duration.Round(time.Millisecond))
	cmds = append(cmds, m.clearStatusAfter(4*time.Second))
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.loadErr != nil {
		// fatal load failure: the diagnostic screen offers no retries
		return m, nil
	}
	if m.disclaimerPending() {
		// the gate swallows everything else, escape included
		if key.Matches(msg, m.keys.Accept) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.gate.Accept(ctx); err != nil {
				m.warning = "notice acknowledgment not saved: " + err.Error()
			}
			return m, nil
		}
		return m, nil
	}
	if m.loading || m.sess == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.inReader {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadManifestCmd())

	case key.Matches(msg, m.keys.TabArchive):
		return m.switchTab(tabArchive)
	case key.Matches(msg, m.keys.TabLatest):
		return m.switchTab(tabLatest)
	case key.Matches(msg, m.keys.TabAbout):
		return m.switchTab(tabAbout)
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % 3)
	}

	if m.inReader {
		return m.handleReaderKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.inReader = false
		m.sess.Close()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		if m.sess.Prev() {
			return m.afterMove()
		}
		return m, nil
	case key.Matches(msg, m.keys.Next):
		if m.sess.Next() {
			return m.afterMove()
		}
		return m, nil
	case key.Matches(msg, m.keys.First):
		if m.sess.JumpToFirst() {
			return m.afterMove()
		}
		return m, nil
	case key.Matches(msg, m.keys.Latest):
		if m.sess.JumpToLatest() {
			return m.afterMove()
		}
		return m, nil
	case key.Matches(msg, m.keys.CopyLink):
		return m.copyCurrentLink()
	case key.Matches(msg, m.keys.OpenImage):
		return m.openCurrentImage()
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.tab == tabArchive && m.gridCursor > 0 {
			m.gridCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.tab == tabArchive && m.gridCursor < m.sess.Len()-1 {
			m.gridCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Latest):
		if m.sess.CanLatest() && m.sess.OpenLatest() {
			m.inReader = true
			m.gridCursor = m.sess.Cursor()
			return m.afterMove()
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		switch m.tab {
		case tabArchive:
			if m.sess.OpenAt(m.gridCursor) {
				m.inReader = true
				return m.afterMove()
			}
		case tabLatest:
			if m.sess.CanLatest() && m.sess.OpenLatest() {
				m.inReader = true
				m.gridCursor = m.sess.Cursor()
				return m.afterMove()
			}
		}
		return m, nil
	}
	return m, nil
}

// handleMouse turns a press-drag-release gesture into a page turn when the
// horizontal travel reaches the threshold and dominates the vertical travel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.loadErr != nil || m.disclaimerPending() || !m.inReader || m.sess == nil {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.dragging = true
		m.dragX = msg.X
		m.dragY = msg.Y
		return m, nil
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		dx := msg.X - m.dragX
		dy := msg.Y - m.dragY
		if abs(dx) < m.swipeThreshold || abs(dx) <= abs(dy) {
			return m, nil
		}
		if dx < 0 {
			if m.sess.Next() {
				return m.afterMove()
			}
			return m, nil
		}
		if m.sess.Prev() {
			return m.afterMove()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) switchTab(tab int) (tea.Model, tea.Cmd) {
	m.tab = tab
	if m.inReader {
		m.inReader = false
		m.sess.Close()
	}
	return m, nil
}

// afterMove runs the side effects of every successful cursor move: persist
// the resume fragment, render the current image, warm the neighbors.
func (m Model) afterMove() (tea.Model, tea.Cmd) {
	m.gridCursor = m.sess.Cursor()
	return m, tea.Batch(m.afterMoveCmds()...)
}

func (m Model) afterMoveCmds() []tea.Cmd {
	entry, ok := m.sess.Current()
	if !ok {
		return nil
	}
	cmds := []tea.Cmd{m.saveFragmentCmd(entry.ID.String())}
	if cmd := m.previewCmd(entry); cmd != nil {
		m.imagePreviewLoading[entry.ID.String()] = true
		cmds = append(cmds, cmd)
	}
	if cmd := m.preloadNeighborsCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m Model) copyCurrentLink() (tea.Model, tea.Cmd) {
	entry, ok := m.sess.Current()
	if !ok {
		return m, nil
	}
	link := m.source + "#" + deeplink.Encode(entry.ID.String())
	if err := m.copyFn(link); err != nil {
		m.warning = err.Error()
		return m, nil
	}
	m.statusID++
	m.status = "Copied " + link
	return m, m.clearStatusAfter(3 * time.Second)
}

func (m Model) openCurrentImage() (tea.Model, tea.Cmd) {
	entry, ok := m.sess.Current()
	if !ok || m.fetcher == nil {
		return m, nil
	}
	target := m.fetcher.Resolve(entry.Image)
	if validated, err := platform.ValidateImageURL(target); err == nil {
		target = validated
	}
	if err := m.openFn(target); err != nil {
		m.warning = "open image: " + err.Error()
	}
	return m, nil
}

func (m Model) disclaimerPending() bool {
	return m.gate != nil && !m.gate.Acknowledged()
}

func (m Model) loadManifestCmd() tea.Cmd {
	loader, source := m.loader, m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		start := time.Now()
		man, err := loader.Load(ctx, source)
		if err != nil {
			return manifestErrorMsg{err: err}
		}
		return manifestLoadedMsg{man: man, duration: time.Since(start)}
	}
}

func (m Model) saveFragmentCmd(id string) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	fragment := deeplink.Encode(id)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// overwrites the single fragment row, so history never accumulates
		if err := store.Set(ctx, storage.KeySessionFragment, fragment); err != nil {
			return fragmentSaveErrorMsg{err: err}
		}
		return nil
	}
}

func (m Model) previewCmd(entry manifest.Entry) tea.Cmd {
	if !m.imagePreview || m.cache == nil {
		return nil
	}
	id := entry.ID.String()
	if _, ok := m.imagePreviews[id]; ok {
		return nil
	}
	if m.imagePreviewLoading[id] {
		return nil
	}
	cache, render, width, image := m.cache, m.renderImageFn, m.contentWidth(), entry.Image
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		data, err := cache.Fetch(ctx, image)
		if err != nil {
			return imagePreviewErrorMsg{id: id, err: err}
		}
		preview, err := render(data, width)
		if err != nil {
			return imagePreviewErrorMsg{id: id, err: err}
		}
		return imagePreviewSuccessMsg{id: id, preview: preview}
	}
}

func (m Model) preloadNeighborsCmd() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	neighbors := m.sess.NeighborImages()
	if len(neighbors) == 0 {
		return nil
	}
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, image := range neighbors {
			cache.Preload(ctx, image)
		}
		return neighborPreloadDoneMsg{}
	}
}

func (m Model) clearStatusAfter(d time.Duration) tea.Cmd {
	id := m.statusID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

func (m Model) View() string {
	var b strings.Builder

	title := "comicshelf"
	if m.man != nil && m.man.Title != "" {
		title = view.Sanitize(m.man.Title)
	}
	b.WriteString(m.theme.Title.Render(title))
	if m.man != nil && m.man.Author != "" {
		b.WriteString("  " + m.theme.MetaValue.Render("by "+view.Sanitize(m.man.Author)))
	}
	b.WriteString("\n")
	b.WriteString(view.Tabs(m.tab, m.theme))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(m.theme.StateWarn.Render("Could not load the comic archive."))
		b.WriteString("\n\n")
		b.WriteString(m.theme.MetaValue.Render(m.loadErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Notice.Render("Nothing can be shown without the archive manifest. q quits."))
		b.WriteString("\n")
		return b.String()

	case m.loading:
		b.WriteString(m.spinner.View() + " Loading archive…\n")
		return b.String()

	case m.disclaimerPending():
		b.WriteString(view.DisclaimerPanel(disclaimerText, m.contentWidth(), m.theme))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.bodyView())
	b.WriteString("\n\n")
	b.WriteString(m.theme.Notice.Render(view.Toolbar(m.inReader)))
	b.WriteString("\n")

	position := 0
	if m.inReader {
		position = m.sess.Cursor() + 1
	}
	b.WriteString(view.Footer(m.sess.Len(), position, m.theme))
	b.WriteString("\n")
	b.WriteString(view.Message(m.loading, m.status, m.warning, m.theme))
	b.WriteString("\n")
	return b.String()
}

func (m Model) bodyView() string {
	if m.inReader {
		entry, ok := m.sess.Current()
		if !ok {
			return m.theme.Notice.Render("No comics yet. Check back later.")
		}
		id := entry.ID.String()
		lines := view.ReaderLines(entry, m.sess.Cursor()+1, m.sess.Len(), m.imagePreviews[id], m.imagePreviewErrs[id], m.theme)
		return strings.Join(lines, "\n")
	}

	switch m.tab {
	case tabLatest:
		entry, ok := m.sess.Latest()
		if !ok {
			return m.theme.Notice.Render("No comics yet. Check back later.")
		}
		id := entry.ID.String()
		lines := view.ReaderLines(entry, m.sess.Len(), m.sess.Len(), m.imagePreviews[id], m.imagePreviewErrs[id], m.theme)
		lines = append(lines, "", m.theme.Notice.Render("enter opens the reader at this comic"))
		return strings.Join(lines, "\n")

	case tabAbout:
		if m.man == nil || strings.TrimSpace(m.man.About) == "" {
			return m.theme.Notice.Render("The author has not written an about page.")
		}
		return strings.Join(htmltext.Lines(m.man.About, m.contentWidth()-4), "\n")

	default:
		return strings.Join(view.GridLines(m.sess.Entries(), m.gridCursor, m.contentWidth(), m.theme), "\n")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
