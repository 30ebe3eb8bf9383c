// Package toast holds the notification kinds and the single-slot toast
// component.
package toast

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind selects which notification banner is shown
type Kind int

const (
	FileSize Kind = iota + 1
	DangerousFileType
	MaxAttachments
	UnsupportedMultiAttachment
	CannotMixMultiAndNonMultiAttachments
	UnableToLoadAttachment
)

// DefaultTimeout is how long a toast stays up when no timeout is given
const DefaultTimeout = 8 * time.Second

var kindNames = map[Kind]string{
	FileSize:                             "ToastFileSize",
	DangerousFileType:                    "ToastDangerousFileType",
	MaxAttachments:                       "ToastMaxAttachments",
	UnsupportedMultiAttachment:           "ToastUnsupportedMultiAttachment",
	CannotMixMultiAndNonMultiAttachments: "ToastCannotMixMultiAndNonMultiAttachments",
	UnableToLoadAttachment:               "ToastUnableToLoadAttachment",
}

var kindMessageKeys = map[Kind]string{
	FileSize:                             "fileSizeWarning",
	DangerousFileType:                    "dangerousFileType",
	MaxAttachments:                       "maximumAttachments",
	UnsupportedMultiAttachment:           "oneNonImageAtATimeToast",
	CannotMixMultiAndNonMultiAttachments: "cannotMixImageAndNonImageAttachments",
	UnableToLoadAttachment:               "unableToLoadAttachment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Toast(" + strconv.Itoa(int(k)) + ")"
}

// MessageKey returns the i18n key of the toast text
func (k Kind) MessageKey() string {
	return kindMessageKeys[k]
}

// Align positions the toast horizontally
type Align string

const (
	AlignCenter Align = "center"
	AlignLeft   Align = "left"
)

// Action is an optional button on a toast. Triggering it emits Msg and
// closes the toast.
type Action struct {
	Label string
	Msg   tea.Msg
}

// Toast is a transient notification
type Toast struct {
	Kind                Kind
	Params              map[string]string
	Timeout             time.Duration
	AutoDismissDisabled bool
	DisableCloseOnClick bool
	Align               Align
	Action              *Action
}

// New returns a toast of kind k with default options
func New(k Kind) Toast {
	return Toast{Kind: k}
}

// FileSizeToast reports a file over the size limit
func FileSizeToast(limit int, units string) Toast {
	return Toast{
		Kind: FileSize,
		Params: map[string]string{
			"limit": strconv.Itoa(limit),
			"units": units,
		},
	}
}

// Limit returns the limit parameter of a FileSize toast
func (t Toast) Limit() int {
	n, _ := strconv.Atoi(t.Params["limit"])
	return n
}

// Units returns the units parameter of a FileSize toast
func (t Toast) Units() string {
	return t.Params["units"]
}

func (t Toast) align() Align {
	if t.Align == "" {
		return AlignCenter
	}
	return t.Align
}
