package models

// LocationPayload is a shared-location message body.
type LocationPayload struct {
	Latitude  float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude float64 `dynamodbav:"longitude" json:"longitude"`
	Name      string  `dynamodbav:"name,omitempty" json:"name,omitempty"`
}

// GroupMessage is a chat message stored in DynamoDB. CreatedAt is the sort
// key and is assigned server-side, so messages within a group are totally
// ordered by it. Sender profile fields are snapshotted at send time.
type GroupMessage struct {
	GroupID   string `dynamodbav:"groupId" json:"groupId"`     // Partition Key
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"` // Sort Key (RFC3339Nano)
	MessageID string `dynamodbav:"messageId" json:"messageId"`

	SenderID     string `dynamodbav:"senderId" json:"senderId"` // SystemSenderID for lifecycle messages
	SenderName   string `dynamodbav:"senderName" json:"senderName"`
	SenderAvatar string `dynamodbav:"senderAvatar,omitempty" json:"senderAvatar,omitempty"`

	Kind     string           `dynamodbav:"kind" json:"kind"` // "text", "location" or "system"
	Content  string           `dynamodbav:"content,omitempty" json:"content,omitempty"`
	Location *LocationPayload `dynamodbav:"location,omitempty" json:"location,omitempty"`

	IsEdited bool   `dynamodbav:"isEdited" json:"isEdited"`
	EditedAt string `dynamodbav:"editedAt,omitempty" json:"editedAt,omitempty"`

	// Tombstone. The body is replaced with DeletedPlaceholder while Kind is
	// preserved; the original content lives in DeletedMessages.
	IsDeleted bool `dynamodbav:"isDeleted" json:"isDeleted"`

	// Derived per viewer, never stored.
	IsMine bool `dynamodbav:"-" json:"isMine"`
}

// Message kinds
const (
	MessageKindText     = "text"
	MessageKindLocation = "location"
	MessageKindSystem   = "system"
)

// SystemSenderID is the sender id used for automated lifecycle messages.
const SystemSenderID = "system"

// DeletedPlaceholder replaces the body of a tombstoned message.
const DeletedPlaceholder = "This message was deleted"

// GroupMessagesTable is the DynamoDB table name for group chat messages
const GroupMessagesTable = "GroupMessages"
