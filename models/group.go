package models

// LifecycleFlag is a one-shot trigger guard. Once Triggered flips to true the
// corresponding automation is permanently suppressed for the group;
// TriggeredAt records when it fired for auditing.
type LifecycleFlag struct {
	Triggered   bool   `dynamodbav:"triggered" json:"triggered"`
	TriggeredAt string `dynamodbav:"triggeredAt,omitempty" json:"triggeredAt,omitempty"`
}

// Group is the chat/membership record paired 1:1 with a Trip (same id).
// Members mirrors the Trip's member set; both are written in the same
// transaction on every membership change.
type Group struct {
	GroupID   string `dynamodbav:"groupId" json:"groupId"` // Partition Key, equals TripID
	OwnerID   string `dynamodbav:"ownerId" json:"ownerId"`
	TripTitle string `dynamodbav:"tripTitle" json:"tripTitle"`
	StartDate string `dynamodbav:"startDate,omitempty" json:"startDate,omitempty"` // YYYY-MM-DD

	MaxMembers         int               `dynamodbav:"maxMembers" json:"maxMembers"`
	CurrentMemberCount int               `dynamodbav:"currentMemberCount" json:"currentMemberCount"`
	Members            map[string]Member `dynamodbav:"members" json:"members"`
	MemberIDs          map[string]bool   `dynamodbav:"memberIds" json:"memberIds"` // flat id set for query filtering

	Status    string `dynamodbav:"status" json:"status"` // "active" or "ended"
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`

	NotifiedApproaching LifecycleFlag `dynamodbav:"notifiedApproaching" json:"notifiedApproaching"`
	NotifiedToday       LifecycleFlag `dynamodbav:"notifiedToday" json:"notifiedToday"`

	// Denormalized preview of the most recent message. Best-effort tier:
	// updated outside the membership transaction and allowed to lag.
	LastMessageText string `dynamodbav:"lastMessageText,omitempty" json:"lastMessageText,omitempty"`
	LastMessageAt   string `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	_, ok := g.Members[userID]
	return ok
}

// Trip/Group status values
const (
	TripStatusActive = "active"
	TripStatusEnded  = "ended"
)

// GroupsTable is the DynamoDB table name for trip groups
const GroupsTable = "Groups"
