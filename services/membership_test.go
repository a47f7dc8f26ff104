package services

import (
	"errors"
	"testing"

	"tripmate_server/models"
)

func stateFixture() *models.Trip {
	return &models.Trip{
		TripID:             "t1",
		OwnerID:            "owner",
		MaxMembers:         3,
		CurrentMemberCount: 2,
		Members: map[string]models.Member{
			"owner":  {UserID: "owner"},
			"member": {UserID: "member"},
		},
		JoinRequests: map[string]models.JoinRequest{
			"pending": {UserID: "pending"},
		},
		Status: models.TripStatusActive,
	}
}

func TestMembershipState(t *testing.T) {
	trip := stateFixture()

	cases := map[string]string{
		"owner":   MembershipMember,
		"member":  MembershipMember,
		"pending": MembershipRequested,
		"nobody":  MembershipNone,
	}
	for userID, want := range cases {
		if got := MembershipState(trip, userID); got != want {
			t.Errorf("MembershipState(%s) = %s, want %s", userID, got, want)
		}
	}
}

func TestTransitionRules(t *testing.T) {
	full := stateFixture()
	full.CurrentMemberCount = full.MaxMembers

	ended := stateFixture()
	ended.Status = models.TripStatusEnded

	cases := []struct {
		name     string
		check    func(*models.Trip) error
		trip     *models.Trip
		wantErr  error
		wantKind string // "validation" when a *ValidationError is expected
	}{
		{name: "join ok", check: func(tr *models.Trip) error { return ValidateJoinRequest(tr, "nobody") }, trip: stateFixture()},
		{name: "join by owner", check: func(tr *models.Trip) error { return ValidateJoinRequest(tr, "owner") }, trip: stateFixture(), wantKind: "validation"},
		{name: "join by member", check: func(tr *models.Trip) error { return ValidateJoinRequest(tr, "member") }, trip: stateFixture(), wantKind: "validation"},
		{name: "join duplicate", check: func(tr *models.Trip) error { return ValidateJoinRequest(tr, "pending") }, trip: stateFixture(), wantKind: "validation"},
		{name: "join full", check: func(tr *models.Trip) error { return ValidateJoinRequest(tr, "nobody") }, trip: full, wantErr: ErrCapacityFull},
		{name: "join ended", check: func(tr *models.Trip) error { return ValidateJoinRequest(tr, "nobody") }, trip: ended, wantErr: ErrTripEnded},

		{name: "approve ok", check: func(tr *models.Trip) error { return ValidateApprove(tr, "owner", "pending") }, trip: stateFixture()},
		{name: "approve by non-owner", check: func(tr *models.Trip) error { return ValidateApprove(tr, "member", "pending") }, trip: stateFixture(), wantErr: ErrPermission},
		{name: "approve without request", check: func(tr *models.Trip) error { return ValidateApprove(tr, "owner", "nobody") }, trip: stateFixture(), wantKind: "validation"},
		{name: "approve full", check: func(tr *models.Trip) error { return ValidateApprove(tr, "owner", "pending") }, trip: full, wantErr: ErrCapacityFull},
		{name: "approve ended", check: func(tr *models.Trip) error { return ValidateApprove(tr, "owner", "pending") }, trip: ended, wantErr: ErrTripEnded},

		{name: "reject ok", check: func(tr *models.Trip) error { return ValidateReject(tr, "owner", "pending") }, trip: stateFixture()},
		{name: "reject by non-owner", check: func(tr *models.Trip) error { return ValidateReject(tr, "member", "pending") }, trip: stateFixture(), wantErr: ErrPermission},
		{name: "reject without request", check: func(tr *models.Trip) error { return ValidateReject(tr, "owner", "nobody") }, trip: stateFixture(), wantKind: "validation"},

		{name: "cancel ok", check: func(tr *models.Trip) error { return ValidateCancelRequest(tr, "pending") }, trip: stateFixture()},
		{name: "cancel without request", check: func(tr *models.Trip) error { return ValidateCancelRequest(tr, "nobody") }, trip: stateFixture(), wantKind: "validation"},

		{name: "leave ok", check: func(tr *models.Trip) error { return ValidateLeave(tr, "member") }, trip: stateFixture()},
		{name: "leave by owner", check: func(tr *models.Trip) error { return ValidateLeave(tr, "owner") }, trip: stateFixture(), wantErr: ErrPermission},
		{name: "leave by non-member", check: func(tr *models.Trip) error { return ValidateLeave(tr, "nobody") }, trip: stateFixture(), wantKind: "validation"},
		{name: "leave ended", check: func(tr *models.Trip) error { return ValidateLeave(tr, "member") }, trip: ended, wantErr: ErrTripEnded},

		{name: "remove ok", check: func(tr *models.Trip) error { return ValidateRemove(tr, "owner", "member") }, trip: stateFixture()},
		{name: "remove by non-owner", check: func(tr *models.Trip) error { return ValidateRemove(tr, "member", "member") }, trip: stateFixture(), wantErr: ErrPermission},
		{name: "remove the owner", check: func(tr *models.Trip) error { return ValidateRemove(tr, "owner", "owner") }, trip: stateFixture(), wantErr: ErrPermission},
		{name: "remove a non-member", check: func(tr *models.Trip) error { return ValidateRemove(tr, "owner", "nobody") }, trip: stateFixture(), wantKind: "validation"},
		{name: "remove ended", check: func(tr *models.Trip) error { return ValidateRemove(tr, "owner", "member") }, trip: ended, wantErr: ErrTripEnded},

		{name: "end ok", check: func(tr *models.Trip) error { return ValidateEnd(tr, "owner") }, trip: stateFixture()},
		{name: "end by non-owner", check: func(tr *models.Trip) error { return ValidateEnd(tr, "member") }, trip: stateFixture(), wantErr: ErrPermission},
		{name: "end twice", check: func(tr *models.Trip) error { return ValidateEnd(tr, "owner") }, trip: ended, wantErr: ErrTripEnded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check(tc.trip)
			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
			case tc.wantKind == "validation":
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("want ValidationError, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("want nil, got %v", err)
				}
			}
		})
	}
}
