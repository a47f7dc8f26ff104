package models

// Member is a user who belongs to a trip. Profile fields are snapshotted at
// join time rather than live-joined from UserProfiles.
type Member struct {
	UserID      string `dynamodbav:"userId" json:"userId"`
	DisplayName string `dynamodbav:"displayName" json:"displayName"`
	AvatarURL   string `dynamodbav:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	JoinedAt    string `dynamodbav:"joinedAt" json:"joinedAt"`
}

// JoinRequest is a pending membership application for a trip.
type JoinRequest struct {
	UserID      string `dynamodbav:"userId" json:"userId"`
	DisplayName string `dynamodbav:"displayName" json:"displayName"`
	AvatarURL   string `dynamodbav:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	RequestedAt string `dynamodbav:"requestedAt" json:"requestedAt"`
}

// Comment is an append-only comment on a trip proposal.
type Comment struct {
	UserID      string `dynamodbav:"userId" json:"userId"`
	DisplayName string `dynamodbav:"displayName" json:"displayName"`
	AvatarURL   string `dynamodbav:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Text        string `dynamodbav:"text" json:"text"`
	PostedAt    string `dynamodbav:"postedAt" json:"postedAt"`
}

// Trip is the public trip proposal record. Members and JoinRequests are keyed
// by userId so that removals address an entry by identity instead of relying
// on structural equality against a possibly stale copy.
type Trip struct {
	TripID      string `dynamodbav:"tripId" json:"tripId"` // Partition Key
	OwnerID     string `dynamodbav:"ownerId" json:"ownerId"`
	OwnerName   string `dynamodbav:"ownerName" json:"ownerName"`
	OwnerAvatar string `dynamodbav:"ownerAvatar,omitempty" json:"ownerAvatar,omitempty"`

	Title       string   `dynamodbav:"title" json:"title"`
	Destination string   `dynamodbav:"destination" json:"destination"`
	Category    string   `dynamodbav:"category,omitempty" json:"category,omitempty"`
	Description string   `dynamodbav:"description,omitempty" json:"description,omitempty"`
	StartDate   string   `dynamodbav:"startDate,omitempty" json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate     string   `dynamodbav:"endDate,omitempty" json:"endDate,omitempty"`     // YYYY-MM-DD
	Images      []string `dynamodbav:"images,omitempty" json:"images,omitempty"`       // ordered S3 keys, max 10

	MaxMembers         int                    `dynamodbav:"maxMembers" json:"maxMembers"`
	CurrentMemberCount int                    `dynamodbav:"currentMemberCount" json:"currentMemberCount"`
	Members            map[string]Member      `dynamodbav:"members" json:"members"`
	JoinRequests       map[string]JoinRequest `dynamodbav:"joinRequests" json:"joinRequests"`

	Likes    map[string]bool `dynamodbav:"likes" json:"likes"`
	Comments []Comment       `dynamodbav:"comments,omitempty" json:"comments,omitempty"`

	Status    string `dynamodbav:"status" json:"status"` // "active" or "ended"
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`

	// Owner reputation aggregates, fed into the hot score.
	ReviewCount        int     `dynamodbav:"reviewCount" json:"reviewCount"`
	CompletedTripCount int     `dynamodbav:"completedTripCount" json:"completedTripCount"`
	AverageRating      float64 `dynamodbav:"averageRating" json:"averageRating"`
}

// LikeCount returns the number of users who like the trip.
func (t *Trip) LikeCount() int {
	return len(t.Likes)
}

// IsMember reports whether userID belongs to the trip.
func (t *Trip) IsMember(userID string) bool {
	_, ok := t.Members[userID]
	return ok
}

// HasPendingRequest reports whether userID has an open join request.
func (t *Trip) HasPendingRequest(userID string) bool {
	_, ok := t.JoinRequests[userID]
	return ok
}

// TripsTable is the DynamoDB table name for trip proposals
const TripsTable = "Trips"
