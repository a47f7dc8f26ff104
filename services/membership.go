package services

import (
	"tripmate_server/models"
)

// Membership states for a (trip, user) pair.
const (
	MembershipNone      = "none"
	MembershipRequested = "requested"
	MembershipMember    = "member"
)

// MembershipState reports where userID stands on a trip.
func MembershipState(trip *models.Trip, userID string) string {
	if trip.IsMember(userID) {
		return MembershipMember
	}
	if trip.HasPendingRequest(userID) {
		return MembershipRequested
	}
	return MembershipNone
}

// The functions below are the membership transition rules. They validate
// against the freshest read the caller holds and perform no I/O; the trip
// service re-enforces the capacity and pending-request conditions inside the
// write transaction itself, so a stale read here can only produce a second
// rejection, never a bad write.

// ValidateJoinRequest checks none -> requested.
func ValidateJoinRequest(trip *models.Trip, userID string) error {
	if trip.Status == models.TripStatusEnded {
		return ErrTripEnded
	}
	if userID == trip.OwnerID {
		return validationf("owner cannot request to join their own trip")
	}
	switch MembershipState(trip, userID) {
	case MembershipMember:
		return validationf("user %s is already a member", userID)
	case MembershipRequested:
		return validationf("user %s already has a pending request", userID)
	}
	if trip.CurrentMemberCount >= trip.MaxMembers {
		return ErrCapacityFull
	}
	return nil
}

// ValidateApprove checks requested -> member, initiated by the owner.
func ValidateApprove(trip *models.Trip, callerID, requesterID string) error {
	if callerID != trip.OwnerID {
		return ErrPermission
	}
	if trip.Status == models.TripStatusEnded {
		return ErrTripEnded
	}
	if !trip.HasPendingRequest(requesterID) {
		return validationf("no pending request for user %s", requesterID)
	}
	if trip.CurrentMemberCount >= trip.MaxMembers {
		return ErrCapacityFull
	}
	return nil
}

// ValidateReject checks requested -> none, initiated by the owner.
func ValidateReject(trip *models.Trip, callerID, requesterID string) error {
	if callerID != trip.OwnerID {
		return ErrPermission
	}
	if !trip.HasPendingRequest(requesterID) {
		return validationf("no pending request for user %s", requesterID)
	}
	return nil
}

// ValidateCancelRequest checks requested -> none, initiated by the requester.
func ValidateCancelRequest(trip *models.Trip, userID string) error {
	if !trip.HasPendingRequest(userID) {
		return validationf("no pending request for user %s", userID)
	}
	return nil
}

// ValidateLeave checks member -> none, initiated by the member. The owner
// can never leave; they end the trip instead.
func ValidateLeave(trip *models.Trip, userID string) error {
	if userID == trip.OwnerID {
		return ErrPermission
	}
	if trip.Status == models.TripStatusEnded {
		return ErrTripEnded
	}
	if !trip.IsMember(userID) {
		return validationf("user %s is not a member", userID)
	}
	return nil
}

// ValidateRemove checks member -> none, initiated by the owner against a
// non-owner member.
func ValidateRemove(trip *models.Trip, callerID, targetID string) error {
	if callerID != trip.OwnerID {
		return ErrPermission
	}
	if targetID == trip.OwnerID {
		return ErrPermission
	}
	if trip.Status == models.TripStatusEnded {
		return ErrTripEnded
	}
	if !trip.IsMember(targetID) {
		return validationf("user %s is not a member", targetID)
	}
	return nil
}

// ValidateEnd checks active -> ended, owner only.
func ValidateEnd(trip *models.Trip, callerID string) error {
	if callerID != trip.OwnerID {
		return ErrPermission
	}
	if trip.Status == models.TripStatusEnded {
		return ErrTripEnded
	}
	return nil
}
