package tui

import (
	"log/slog"
	"time"

	"chatdesk/attachments"
	"chatdesk/drafts"
	"chatdesk/i18n"
	"chatdesk/logging"
	"chatdesk/messages"
	"chatdesk/modals"
	"chatdesk/models"
	"chatdesk/processor"
	"chatdesk/promises"
	"chatdesk/toast"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AppState represents the current screen of the application
type AppState int

const (
	StateConversation AppState = iota
	StateAttachInput
	StateStories
)

const (
	maxActivityLines = 500
	localAuthor      = "Me"
)

// Deps are the collaborators the TUI drives
type Deps struct {
	Config     models.Config
	Store      *modals.Store
	Intake     *attachments.Intake
	Drafts     *drafts.Store
	Lookup     messages.Lookup
	Repository *messages.Repository
	Promises   *promises.Registry[bool]
	Localizer  *i18n.Localizer
	Logger     *slog.Logger
}

// Model represents the main TUI model
type Model struct {
	state  AppState
	width  int
	height int

	// Pane layout
	leftPaneWidth  int
	rightPaneWidth int
	showRightPane  bool

	// Collaborators
	config     models.Config
	store      *modals.Store
	intake     *attachments.Intake
	drafts     *drafts.Store
	lookup     messages.Lookup
	repository *messages.Repository
	promises   *promises.Registry[bool]
	localizer  *i18n.Localizer
	logger     *slog.Logger

	// Snapshot of the modal state taken after every update
	modalState modals.State

	conversationID string
	toast          toast.Model
	pills          contactPills
	stories        storiesModel
	attachInput    textinput.Model

	// Attachment processing
	pendingBatches int
	spinner        spinner.Model

	// Send-anyway decision awaiting y/n
	pendingDecision *promises.Deferred[bool]

	// Activity pane
	activity             []string
	activityScrollOffset int

	// Error handling
	err       error
	errorLine string
}

// NewModel creates a new TUI model
func NewModel(deps Deps) Model {
	cfg := deps.Config
	if err := cfg.Validate(); err != nil {
		cfg = models.NewConfig()
	}

	localizer := deps.Localizer
	if localizer == nil {
		localizer = i18n.MustNew()
	}
	store := deps.Store
	if store == nil {
		store = modals.NewStore(modals.EmptyState(), deps.Logger)
	}
	registry := deps.Promises
	if registry == nil {
		registry = promises.NewRegistry[bool](cfg.PromiseTTL, deps.Logger)
	}
	draftStore := deps.Drafts
	if draftStore == nil {
		draftStore = drafts.NewStore()
	}
	repository := deps.Repository
	if repository == nil {
		loaded, err := messages.LoadRepository(cfg.MessagesFile)
		if err != nil {
			logging.OrNop(deps.Logger).Warn("falling back to an empty message store", "error", err)
			loaded = messages.NewRepository()
		}
		repository = loaded
	}
	var lookup messages.Lookup = repository
	if deps.Lookup != nil {
		lookup = deps.Lookup
	}
	intake := deps.Intake
	if intake == nil {
		loader := processor.NewLoader(&cfg, deps.Logger)
		intake = attachments.NewIntake(attachments.PolicyFromConfig(cfg), loader, draftStore, cfg.ProcessingWorkers, deps.Logger)
	}

	input := textinput.New()
	input.Placeholder = localizer.T("Composer__attach-prompt", nil)
	input.CharLimit = 4096
	input.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = warningStyle

	m := Model{
		state:          StateConversation,
		config:         cfg,
		store:          store,
		intake:         intake,
		drafts:         draftStore,
		lookup:         lookup,
		repository:     repository,
		promises:       registry,
		localizer:      localizer,
		logger:         logging.Component(logging.OrNop(deps.Logger), "tui"),
		modalState:     store.State(),
		conversationID: cfg.ConversationID,
		toast:          toast.NewModel(localizer, cfg.ToastTimeout),
		pills:          newContactPills(0),
		stories:        newStoriesModel(localizer, sampleStories()),
		attachInput:    input,
		spinner:        s,
	}
	m.pills = m.pills.SetContacts(knownContacts(repository))
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// knownContacts lists the distinct authors of stored messages, excluding
// the local user
func knownContacts(repository *messages.Repository) []string {
	seen := make(map[string]bool)
	var contacts []string
	for _, conversationID := range repository.ConversationIDs() {
		for _, msg := range repository.Conversation(conversationID) {
			if msg.Author == "" || msg.Author == localAuthor || seen[msg.Author] {
				continue
			}
			seen[msg.Author] = true
			contacts = append(contacts, msg.Author)
		}
	}
	return contacts
}

func sampleStories() []story {
	now := time.Now()
	return []story{
		{ID: "story-1", Author: "Alex", Text: "Sunrise hike", PostedAt: now.Add(-2 * time.Hour)},
		{ID: "story-2", Author: "Sam", Text: "New album out today", PostedAt: now.Add(-5 * time.Hour)},
		{ID: "story-3", Author: "Jordan", Text: "Garden update", PostedAt: now.Add(-9 * time.Hour)},
	}
}
