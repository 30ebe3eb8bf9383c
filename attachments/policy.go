// Package attachments decides which selected files may be attached to a
// draft message and hands accepted files to a processing collaborator.
package attachments

import (
	"mime"
	"regexp"
	"strings"

	"chatdesk/models"
	"chatdesk/toast"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

// Executable and script extensions that are never sent
var dangerousExtension = regexp.MustCompile(`(?i)\.(ADE|ADP|APK|APP|APPLICATION|APPREF-MS|ASP|ASX|BAS|BAT|BGI|CAB|CER|CHM|CMD|CNT|COM|CPL|CRT|CSH|DER|DIAGCAB|DLL|EXE|FXP|GADGET|GRP|HLP|HPJ|HTA|INF|INS|ISP|ITS|JAR|JNLP|JS|JSE|KSH|LNK|MAD|MAF|MAG|MAM|MAQ|MAR|MAS|MAT|MAU|MAV|MAW|MCF|MDA|MDB|MDE|MDT|MDW|MDZ|MSC|MSH|MSH1|MSH1XML|MSH2|MSH2XML|MSHXML|MSI|MSP|MST|OPS|OSD|PCD|PIF|PLG|PRF|PRG|PS1|PS1XML|PS2|PS2XML|PSC1|PSC2|PST|REG|SCF|SCR|SCT|SHB|SHS|TMP|URL|VB|VBE|VBP|VBS|VSMACROS|VSW|WS|WSC|WSF|WSH|XNK)\.?$`)

// IsDangerousFileName reports whether name has an executable or script extension
func IsDangerousFileName(name string) bool {
	return dangerousExtension.MatchString(name)
}

// Policy holds the limits applied to every batch
type Policy struct {
	MaxAttachments int
	MaxSizeBytes   int64
	SizeLimit      int
	SizeUnits      string
	ImageTypes     []string
	VideoTypes     []string

	imageSet map[string]bool
	videoSet map[string]bool
}

// PolicyFromConfig builds the policy from validated configuration
func PolicyFromConfig(cfg models.Config) Policy {
	return NewPolicy(cfg.MaxAttachments, cfg.MaxAttachmentSizeMB, cfg.SupportedImageTypes, cfg.SupportedVideoTypes)
}

// NewPolicy builds a policy with a size limit expressed in megabytes
func NewPolicy(maxAttachments, maxSizeMB int, imageTypes, videoTypes []string) Policy {
	p := Policy{
		MaxAttachments: maxAttachments,
		MaxSizeBytes:   int64(maxSizeMB) * 1024 * 1024,
		SizeLimit:      maxSizeMB,
		SizeUnits:      "MB",
		ImageTypes:     append([]string(nil), imageTypes...),
		VideoTypes:     append([]string(nil), videoTypes...),
		imageSet:       make(map[string]bool, len(imageTypes)),
		videoSet:       make(map[string]bool, len(videoTypes)),
	}
	for _, t := range imageTypes {
		p.imageSet[models.BaseMIMEType(t)] = true
	}
	for _, t := range videoTypes {
		p.videoSet[models.BaseMIMEType(t)] = true
	}
	return p
}

// DefaultPolicy uses models.DefaultConfig
func DefaultPolicy() Policy {
	return PolicyFromConfig(models.NewConfig())
}

// Rejection records a file that was dropped and the toast explaining why
type Rejection struct {
	File  models.File
	Toast toast.Toast
}

// Decision is the outcome of evaluating one batch
type Decision struct {
	Accepted      []models.File
	Rejected      []Rejection
	BatchRejected bool
	Toasts        []toast.Toast
}

// Evaluate applies the policy to files given the current drafts.
//
// Files repeating an earlier path in the batch are ignored. Exceeding the
// attachment count rejects the whole batch. Files over the size
// limit or with a dangerous type are dropped one by one. The remaining files
// are then checked together with the drafts: image/video files mixed with
// other files, or more than one non-image/video file, reject the whole batch.
func (p Policy) Evaluate(files []models.File, drafts []models.AttachmentDraft) Decision {
	var d Decision
	files = uniqueFiles(files)
	if len(files) == 0 {
		return d
	}

	if p.MaxAttachments > 0 && len(drafts)+len(files) > p.MaxAttachments {
		return rejectAll(d, files, toast.New(toast.MaxAttachments))
	}

	var survivors []models.File
	for _, file := range files {
		file.ContentType = ResolveContentType(file)
		if t, dropped := p.checkFile(file); dropped {
			d.Rejected = append(d.Rejected, Rejection{File: file, Toast: t})
			d.Toasts = append(d.Toasts, t)
			continue
		}
		survivors = append(survivors, file)
	}

	if t, rejected := checkCombination(survivors, drafts); rejected {
		return rejectAll(d, survivors, t)
	}

	d.Accepted = survivors
	return d
}

// uniqueFiles keeps the first file of each draft path. Drafts are keyed by
// path, so a repeat would share the first file's draft entry.
func uniqueFiles(files []models.File) []models.File {
	seen := make(map[string]bool, len(files))
	out := make([]models.File, 0, len(files))
	for _, file := range files {
		path := draftPath(file)
		if path != "" {
			if seen[path] {
				continue
			}
			seen[path] = true
		}
		out = append(out, file)
	}
	return out
}

func rejectAll(d Decision, files []models.File, t toast.Toast) Decision {
	d.BatchRejected = true
	for _, file := range files {
		d.Rejected = append(d.Rejected, Rejection{File: file, Toast: t})
	}
	d.Toasts = append(d.Toasts, t)
	d.Accepted = nil
	return d
}

func (p Policy) checkFile(file models.File) (toast.Toast, bool) {
	if p.MaxSizeBytes > 0 && file.Size > p.MaxSizeBytes {
		return toast.FileSizeToast(p.SizeLimit, p.SizeUnits), true
	}

	if IsDangerousFileName(file.Name) || (file.Name == "" && IsDangerousFileName(file.Path)) {
		return toast.New(toast.DangerousFileType), true
	}

	base := models.BaseMIMEType(file.ContentType)
	switch {
	case models.IsImageType(base) && !p.imageSet[base]:
		return toast.New(toast.DangerousFileType), true
	case models.IsVideoType(base) && !p.videoSet[base]:
		return toast.New(toast.DangerousFileType), true
	}

	return toast.Toast{}, false
}

func checkCombination(files []models.File, drafts []models.AttachmentDraft) (toast.Toast, bool) {
	if len(files) == 0 || len(files)+len(drafts) < 2 {
		return toast.Toast{}, false
	}

	multi, single := 0, 0
	count := func(contentType string) {
		if isMultiType(contentType) {
			multi++
		} else {
			single++
		}
	}
	for _, draft := range drafts {
		count(draft.ContentType)
	}
	for _, file := range files {
		count(file.ContentType)
	}

	switch {
	case single > 0 && multi > 0:
		return toast.New(toast.CannotMixMultiAndNonMultiAttachments), true
	case single > 1:
		return toast.New(toast.UnsupportedMultiAttachment), true
	}
	return toast.Toast{}, false
}

func isMultiType(contentType string) bool {
	return models.IsImageType(contentType) || models.IsVideoType(contentType)
}

// AcceptContentTypes returns the MIME types the file picker should offer.
// Once a draft holds an image or video only images and videos are offered.
// Nil means no restriction.
func (p Policy) AcceptContentTypes(drafts []models.AttachmentDraft) []string {
	for _, draft := range drafts {
		if draft.IsImage() || draft.IsVideo() {
			types := make([]string, 0, len(p.ImageTypes)+len(p.VideoTypes))
			types = append(types, p.ImageTypes...)
			return append(types, p.VideoTypes...)
		}
	}
	return nil
}

// ResolveContentType returns the declared MIME type of file, sniffing the
// content when the declaration is missing or generic and falling back to the
// extension.
func ResolveContentType(file models.File) string {
	declared := models.BaseMIMEType(file.ContentType)
	if declared != "" && declared != octetStream {
		return declared
	}

	if sniffed := sniffContentType(file); sniffed != "" && sniffed != octetStream {
		return sniffed
	}

	if ext := file.Extension(); ext != "" {
		if byExt := models.BaseMIMEType(mime.TypeByExtension("." + ext)); byExt != "" {
			return byExt
		}
	}

	if declared != "" {
		return declared
	}
	return octetStream
}

func sniffContentType(file models.File) string {
	if file.Open == nil {
		return ""
	}
	rc, err := file.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()

	mt, err := mimetype.DetectReader(rc)
	if err != nil {
		return ""
	}
	return models.BaseMIMEType(mt.String())
}

// Describe summarizes a decision for logs
func (d Decision) Describe() string {
	kinds := make([]string, 0, len(d.Toasts))
	for _, t := range d.Toasts {
		kinds = append(kinds, t.Kind.String())
	}
	return strings.Join(kinds, ",")
}
