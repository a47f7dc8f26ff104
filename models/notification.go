package models

// Notification categories
const (
	NotificationJoinRequest     = "join_request"
	NotificationRequestApproved = "request_approved"
	NotificationRequestRejected = "request_rejected"
	NotificationChatMessage     = "chat_message"
	NotificationLike            = "like"
	NotificationComment         = "comment"
	NotificationMemberLeft      = "member_left"
	NotificationMemberRemoved   = "member_removed"
)

// Notification is a per-recipient event record. Every membership event and
// every chat send produces exactly one notification per recipient.
type Notification struct {
	UserID         string `dynamodbav:"userId" json:"userId"`       // Partition Key (recipient)
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"` // Sort Key
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`

	SenderID     string `dynamodbav:"senderId" json:"senderId"`
	SenderName   string `dynamodbav:"senderName" json:"senderName"`
	SenderAvatar string `dynamodbav:"senderAvatar,omitempty" json:"senderAvatar,omitempty"`

	Category string `dynamodbav:"category" json:"category"`
	Message  string `dynamodbav:"message" json:"message"`

	TripID  string `dynamodbav:"tripId,omitempty" json:"tripId,omitempty"`
	GroupID string `dynamodbav:"groupId,omitempty" json:"groupId,omitempty"`

	Read bool `dynamodbav:"read" json:"read"`
}

// IsChat reports whether the notification feeds the chat badge; everything
// else counts toward the general badge.
func (n *Notification) IsChat() bool {
	return n.Category == NotificationChatMessage
}

// UnreadCounts is the pair of badge counters derived per user.
type UnreadCounts struct {
	Chat    int `json:"chat"`
	General int `json:"general"`
}

// NotificationsTable is the DynamoDB table name for notifications
const NotificationsTable = "Notifications"
