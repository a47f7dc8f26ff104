package models

// Identity is the caller identity supplied by the external authentication
// provider. The server treats it as opaque input and performs no credential
// handling of its own.
type Identity struct {
	UserID        string `json:"userId"`
	DisplayName   string `json:"displayName"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
}

// AsMember converts the identity into a membership entry snapshotted at
// joinedAt.
func (id Identity) AsMember(joinedAt string) Member {
	return Member{
		UserID:      id.UserID,
		DisplayName: id.DisplayName,
		AvatarURL:   id.AvatarURL,
		JoinedAt:    joinedAt,
	}
}

// AsJoinRequest converts the identity into a pending join request.
func (id Identity) AsJoinRequest(requestedAt string) JoinRequest {
	return JoinRequest{
		UserID:      id.UserID,
		DisplayName: id.DisplayName,
		AvatarURL:   id.AvatarURL,
		RequestedAt: requestedAt,
	}
}
