package tui

import (
	"fmt"
	"strings"
	"time"

	"chatdesk/i18n"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// addStoryKind selects the story creator variant
type addStoryKind int

const (
	addStoryText addStoryKind = iota + 1
	addStoryMedia
)

// addStoryData opens the story creator. File is set for media stories.
type addStoryData struct {
	Kind addStoryKind
	File string
}

type story struct {
	ID       string
	Author   string
	Text     string
	File     string
	PostedAt time.Time
	Hidden   bool
}

// storiesEvent tells the parent what a key did beyond the stories view
type storiesEvent int

const (
	storiesNoEvent storiesEvent = iota
	storiesClose
	storiesShowSettings
	storiesHideSettings
)

// storiesModel is the stories screen
type storiesModel struct {
	myStories   []story
	stories     []story
	isMyStories bool
	addStory    *addStoryData
	viewing     *story
	cursor      int
	pathPrompt  bool
	input       textinput.Model
	localizer   *i18n.Localizer
}

func newStoriesModel(localizer *i18n.Localizer, feed []story) storiesModel {
	input := textinput.New()
	input.CharLimit = 700
	input.Width = 50

	return storiesModel{
		stories:   feed,
		input:     input,
		localizer: localizer,
	}
}

// handlesEscape reports whether a child view consumes escape: the my-stories
// list with stories, an open story, or the stories settings.
func (s storiesModel) handlesEscape(settingsVisible bool) bool {
	return (s.isMyStories && len(s.myStories) > 0) || s.viewing != nil || settingsVisible
}

// onMyStoriesClicked opens the my-stories list, or the text creator when
// there is nothing to list
func (s storiesModel) onMyStoriesClicked() storiesModel {
	if len(s.myStories) > 0 {
		s.isMyStories = true
		s.cursor = 0
		return s
	}
	return s.openCreator(addStoryData{Kind: addStoryText})
}

func (s storiesModel) openCreator(data addStoryData) storiesModel {
	s.addStory = &data
	s.pathPrompt = false
	s.input.Reset()
	if data.Kind == addStoryMedia {
		s.input.Placeholder = "Caption (optional)"
	} else {
		s.input.Placeholder = "Say something"
	}
	s.input.Focus()
	return s
}

func (s storiesModel) closeCreator() storiesModel {
	s.addStory = nil
	s.pathPrompt = false
	s.input.Blur()
	s.input.Reset()
	return s
}

// post publishes the creator's story to my stories
func (s storiesModel) post(now time.Time) storiesModel {
	if s.addStory == nil {
		return s
	}
	text := strings.TrimSpace(s.input.Value())
	if s.addStory.Kind == addStoryText && text == "" {
		return s
	}
	s.myStories = append(s.myStories, story{
		ID:       uuid.NewString(),
		Author:   "Me",
		Text:     text,
		File:     s.addStory.File,
		PostedAt: now,
	})
	return s.closeCreator()
}

func (s storiesModel) list() []story {
	if s.isMyStories && len(s.myStories) > 0 {
		return s.myStories
	}
	return s.stories
}

// Update handles a key. settingsVisible is the stories settings flag of the
// modal state.
func (s storiesModel) Update(msg tea.KeyMsg, settingsVisible bool) (storiesModel, tea.Cmd, storiesEvent) {
	if msg.String() == "esc" {
		return s.escape(settingsVisible)
	}

	if s.pathPrompt {
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(s.input.Value())
			if path == "" {
				return s.closeCreator(), nil, storiesNoEvent
			}
			return s.openCreator(addStoryData{Kind: addStoryMedia, File: path}), nil, storiesNoEvent
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd, storiesNoEvent
	}

	if s.addStory != nil {
		if msg.String() == "enter" {
			return s.post(time.Now()), nil, storiesNoEvent
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd, storiesNoEvent
	}

	if s.viewing != nil || settingsVisible {
		return s, nil, storiesNoEvent
	}

	items := s.list()
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(items)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(items) {
			viewed := items[s.cursor]
			s.viewing = &viewed
		}
	case "m":
		s = s.onMyStoriesClicked()
	case "t":
		s = s.openCreator(addStoryData{Kind: addStoryText})
	case "i":
		s.pathPrompt = true
		s.input.Reset()
		s.input.Placeholder = "Path to an image or video"
		s.input.Focus()
	case "h":
		if !s.isMyStories && s.cursor < len(s.stories) {
			s.stories[s.cursor].Hidden = !s.stories[s.cursor].Hidden
		}
	case "o":
		return s, nil, storiesShowSettings
	}

	return s, nil, storiesNoEvent
}

func (s storiesModel) escape(settingsVisible bool) (storiesModel, tea.Cmd, storiesEvent) {
	if s.addStory != nil || s.pathPrompt {
		return s.closeCreator(), nil, storiesNoEvent
	}
	if !s.handlesEscape(settingsVisible) {
		return s, nil, storiesClose
	}

	switch {
	case s.viewing != nil:
		s.viewing = nil
	case settingsVisible:
		return s, nil, storiesHideSettings
	default:
		s.isMyStories = false
		s.cursor = 0
	}
	return s, nil, storiesNoEvent
}

// View renders the stories screen
func (s storiesModel) View(settingsVisible bool) string {
	var b strings.Builder
	t := s.localizer.T

	b.WriteString(titleStyle.Render(t("Stories__title", nil)) + "\n")

	switch {
	case s.pathPrompt:
		b.WriteString(inputFieldStyle.Render("Media: ") + s.input.View() + "\n")
		b.WriteString(helpStyle.Render("Enter to continue, Esc to cancel"))
		return b.String()
	case s.addStory != nil:
		heading := t("StoryCreator__text", nil)
		if s.addStory.Kind == addStoryMedia {
			heading = t("StoryCreator__media", map[string]string{"file": s.addStory.File})
		}
		b.WriteString(highlightStyle.Render(heading) + "\n\n")
		b.WriteString(s.input.View() + "\n\n")
		b.WriteString(helpStyle.Render("Enter to post, Esc to discard"))
		return b.String()
	case s.viewing != nil:
		b.WriteString(authorStyle.Render(s.viewing.Author) + "\n")
		if s.viewing.File != "" {
			b.WriteString(timestampStyle.Render(s.viewing.File) + "\n")
		}
		b.WriteString(bodyStyle.Render(s.viewing.Text) + "\n\n")
		b.WriteString(helpStyle.Render("Esc to close"))
		return b.String()
	case settingsVisible:
		b.WriteString(modalStyle.Render(modalTitleStyle.Render(t("StoriesSettings--title", nil)) + "\n" +
			helpStyle.Render("Esc to close")))
		return b.String()
	}

	heading := t("Stories__my-stories", nil)
	if s.isMyStories && len(s.myStories) > 0 {
		b.WriteString(highlightStyle.Render(heading) + "\n")
	} else {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s (%d)", heading, len(s.myStories))) + "\n\n")
	}

	var hidden []story
	for i, st := range s.list() {
		if st.Hidden && !s.isMyStories {
			hidden = append(hidden, st)
		}
		cursor := "  "
		line := fmt.Sprintf("%s: %s", st.Author, st.Text)
		if st.Hidden {
			line = timestampStyle.Render(line)
		}
		if i == s.cursor {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	if len(hidden) > 0 {
		b.WriteString("\n" + timestampStyle.Render(fmt.Sprintf("%s (%d)", t("Stories__hidden", nil), len(hidden))) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(t("Stories__placeholder--text", nil)) + "\n")
	b.WriteString(helpStyle.Render("m my stories • t text story • i media story • h hide • o settings • esc back"))

	return b.String()
}
