package messages

import (
	"strings"

	"chatdesk/models"
	"chatdesk/utils"
)

// TimestampLayout formats SentAt in projections
const TimestampLayout = "Jan 2, 2006 3:04 PM"

// Project derives the forward dialog's view of msg
func Project(msg models.Message) models.ForwardMessageProps {
	props := models.ForwardMessageProps{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Author:         msg.Author,
		Text:           strings.TrimSpace(msg.Body),
	}

	if !msg.SentAt.IsZero() {
		props.Timestamp = msg.SentAt.Format(TimestampLayout)
	}

	for _, a := range msg.Attachments {
		props.Attachments = append(props.Attachments, models.AttachmentSummary{
			FileName:    a.FileName,
			ContentType: models.BaseMIMEType(a.ContentType),
			Size:        utils.FormatFileSize(a.Size),
		})
	}

	return props
}
