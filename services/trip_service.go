package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tripmate_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// TripService owns trip proposals and coordinates every membership
// transition as one atomic transaction across the Trips record, the Groups
// record and the generated notifications. Either all of them reflect the
// transition or none do; there is no sequential-write path for membership.
type TripService struct {
	Dynamo *DynamoService
}

// CreateTripInput is the payload for a new trip proposal.
type CreateTripInput struct {
	Title       string   `json:"title"`
	Destination string   `json:"destination"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Images      []string `json:"images"`
	MaxMembers  int      `json:"maxMembers"`
}

// CreateTrip validates the proposal and creates the Trip and its paired
// Group in one transaction so the pair can never exist half-made.
func (ts *TripService) CreateTrip(ctx context.Context, owner models.Identity, input CreateTripInput) (*models.Trip, error) {
	if err := validateTripInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	tripID := uuid.New().String()
	ownerMember := owner.AsMember(now)

	trip := models.Trip{
		TripID:             tripID,
		OwnerID:            owner.UserID,
		OwnerName:          owner.DisplayName,
		OwnerAvatar:        owner.AvatarURL,
		Title:              input.Title,
		Destination:        input.Destination,
		Category:           input.Category,
		Description:        input.Description,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		Images:             input.Images,
		MaxMembers:         input.MaxMembers,
		CurrentMemberCount: 1,
		Members:            map[string]models.Member{owner.UserID: ownerMember},
		JoinRequests:       map[string]models.JoinRequest{},
		Likes:              map[string]bool{},
		Status:             models.TripStatusActive,
		CreatedAt:          now,
	}

	group := models.Group{
		GroupID:            tripID,
		OwnerID:            owner.UserID,
		TripTitle:          input.Title,
		StartDate:          input.StartDate,
		MaxMembers:         input.MaxMembers,
		CurrentMemberCount: 1,
		Members:            map[string]models.Member{owner.UserID: ownerMember},
		MemberIDs:          map[string]bool{owner.UserID: true},
		Status:             models.TripStatusActive,
		CreatedAt:          now,
	}

	err := ts.Dynamo.TransactWrite(ctx, nil, []TransactPut{
		{TableName: models.TripsTable, Item: trip},
		{TableName: models.GroupsTable, Item: group},
	}, nil)
	if err != nil {
		return nil, transient("create trip", err)
	}

	log.Printf("✅ Created trip %s (%s) by %s", tripID, input.Title, owner.UserID)
	return &trip, nil
}

func validateTripInput(input CreateTripInput) error {
	if input.Title == "" {
		return validationf("title is required")
	}
	if input.Destination == "" {
		return validationf("destination is required")
	}
	if input.MaxMembers < models.MinTripCapacity {
		return validationf("maxMembers must be at least %d", models.MinTripCapacity)
	}
	if len(input.Images) > models.MaxTripImages {
		return validationf("at most %d images allowed", models.MaxTripImages)
	}
	if (input.StartDate == "") != (input.EndDate == "") {
		return validationf("startDate and endDate must be set together")
	}
	if input.StartDate != "" {
		start, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			return validationf("invalid startDate %q", input.StartDate)
		}
		end, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return validationf("invalid endDate %q", input.EndDate)
		}
		if end.Before(start) {
			return validationf("endDate is before startDate")
		}
	}
	return nil
}

// GetTrip fetches a single trip proposal.
func (ts *TripService) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	item, err := ts.Dynamo.GetItem(ctx, models.TripsTable, tripKey(tripID))
	if err != nil {
		return nil, transient("get trip", err)
	}

	var trip models.Trip
	if err := attributevalue.UnmarshalMap(item, &trip); err != nil {
		return nil, fmt.Errorf("failed to parse trip %s: %w", tripID, err)
	}
	return &trip, nil
}

// GetGroup fetches the chat/membership record paired with a trip.
func (ts *TripService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	item, err := ts.Dynamo.GetItem(ctx, models.GroupsTable, groupKey(groupID))
	if err != nil {
		return nil, transient("get group", err)
	}

	var group models.Group
	if err := attributevalue.UnmarshalMap(item, &group); err != nil {
		return nil, fmt.Errorf("failed to parse group %s: %w", groupID, err)
	}
	return &group, nil
}

// ListTrips returns all trip proposals.
func (ts *TripService) ListTrips(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	if err := ts.Dynamo.ScanAll(ctx, models.TripsTable, &trips); err != nil {
		return nil, transient("list trips", err)
	}
	return trips, nil
}

// ListGroupsForUser returns the groups the user belongs to.
func (ts *TripService) ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	var groups []models.Group
	if err := ts.Dynamo.ScanAll(ctx, models.GroupsTable, &groups); err != nil {
		return nil, transient("list groups", err)
	}

	var mine []models.Group
	for _, g := range groups {
		if g.HasMember(userID) {
			mine = append(mine, g)
		}
	}
	return mine, nil
}

// RequestJoin records a pending join request on the trip and notifies the
// owner, both in one transaction. The store re-checks the caller is neither
// a member nor already pending, and that the trip is active with free
// capacity, at apply time.
func (ts *TripService) RequestJoin(ctx context.Context, tripID string, requester models.Identity) error {
	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ValidateJoinRequest(trip, requester.UserID); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	request := requester.AsJoinRequest(now)
	requestAV, err := attributevalue.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal join request: %w", err)
	}

	notification := NewNotification(trip.OwnerID, requester, models.NotificationJoinRequest,
		fmt.Sprintf("%s wants to join \"%s\"", requester.DisplayName, trip.Title), tripID, tripID)

	err = ts.Dynamo.TransactWrite(ctx, []TransactUpdate{
		{
			TableName:           models.TripsTable,
			Key:                 tripKey(tripID),
			UpdateExpression:    "SET #jr.#uid = :request",
			ConditionExpression: "attribute_not_exists(#m.#uid) AND attribute_not_exists(#jr.#uid) AND #status = :active AND currentMemberCount < :max",
			ExpressionAttributeNames: map[string]string{
				"#jr": "joinRequests", "#m": "members", "#uid": requester.UserID, "#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":request": requestAV,
				":active":  &types.AttributeValueMemberS{Value: models.TripStatusActive},
				":max":     numberAV(trip.MaxMembers),
			},
		},
	}, []TransactPut{
		{TableName: models.NotificationsTable, Item: notification},
	}, nil)
	if err != nil {
		return ts.resolveRejection(ctx, tripID, err, func(fresh *models.Trip) error {
			return ValidateJoinRequest(fresh, requester.UserID)
		}, "request join")
	}

	log.Printf("📩 Join request by %s on trip %s", requester.UserID, tripID)
	return nil
}

// CancelRequest withdraws the caller's pending join request.
func (ts *TripService) CancelRequest(ctx context.Context, tripID, userID string) error {
	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ValidateCancelRequest(trip, userID); err != nil {
		return err
	}

	err = ts.Dynamo.TransactWrite(ctx, []TransactUpdate{
		{
			TableName:           models.TripsTable,
			Key:                 tripKey(tripID),
			UpdateExpression:    "REMOVE #jr.#uid",
			ConditionExpression: "attribute_exists(#jr.#uid)",
			ExpressionAttributeNames: map[string]string{
				"#jr": "joinRequests", "#uid": userID,
			},
		},
	}, nil, nil)
	if err != nil {
		return ts.resolveRejection(ctx, tripID, err, func(fresh *models.Trip) error {
			return ValidateCancelRequest(fresh, userID)
		}, "cancel request")
	}
	return nil
}

// ApproveRequest moves the requester from joinRequests to members on both
// the Trip and the Group, increments both member counts and notifies the
// requester, all in one transaction. The capacity check rides on the
// transaction's condition expressions, so two racing approvals against the
// last seat resolve to exactly one success.
func (ts *TripService) ApproveRequest(ctx context.Context, tripID, callerID, requesterID string) error {
	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ValidateApprove(trip, callerID, requesterID); err != nil {
		return err
	}

	request := trip.JoinRequests[requesterID]
	now := time.Now().UTC().Format(time.RFC3339Nano)
	member := models.Member{
		UserID:      request.UserID,
		DisplayName: request.DisplayName,
		AvatarURL:   request.AvatarURL,
		JoinedAt:    now,
	}
	memberAV, err := attributevalue.Marshal(member)
	if err != nil {
		return fmt.Errorf("failed to marshal member: %w", err)
	}

	owner := models.Identity{UserID: trip.OwnerID, DisplayName: trip.OwnerName, AvatarURL: trip.OwnerAvatar}
	notification := NewNotification(requesterID, owner, models.NotificationRequestApproved,
		fmt.Sprintf("Your request to join \"%s\" was approved", trip.Title), tripID, tripID)

	err = ts.Dynamo.TransactWrite(ctx, []TransactUpdate{
		{
			TableName:           models.TripsTable,
			Key:                 tripKey(tripID),
			UpdateExpression:    "SET #m.#uid = :member, currentMemberCount = currentMemberCount + :one REMOVE #jr.#uid",
			ConditionExpression: "attribute_exists(#jr.#uid) AND #status = :active AND currentMemberCount < :max",
			ExpressionAttributeNames: map[string]string{
				"#m": "members", "#jr": "joinRequests", "#uid": requesterID, "#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":member": memberAV,
				":one":    numberAV(1),
				":active": &types.AttributeValueMemberS{Value: models.TripStatusActive},
				":max":    numberAV(trip.MaxMembers),
			},
		},
		{
			TableName:           models.GroupsTable,
			Key:                 groupKey(tripID),
			UpdateExpression:    "SET #m.#uid = :member, memberIds.#uid = :true, currentMemberCount = currentMemberCount + :one",
			ConditionExpression: "#status = :active AND currentMemberCount < :max",
			ExpressionAttributeNames: map[string]string{
				"#m": "members", "#uid": requesterID, "#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":member": memberAV,
				":true":   &types.AttributeValueMemberBOOL{Value: true},
				":one":    numberAV(1),
				":active": &types.AttributeValueMemberS{Value: models.TripStatusActive},
				":max":    numberAV(trip.MaxMembers),
			},
		},
	}, []TransactPut{
		{TableName: models.NotificationsTable, Item: notification},
	}, nil)
	if err != nil {
		return ts.resolveRejection(ctx, tripID, err, func(fresh *models.Trip) error {
			return ValidateApprove(fresh, callerID, requesterID)
		}, "approve request")
	}

	log.Printf("✅ Approved %s into trip %s (%d/%d)", requesterID, tripID, trip.CurrentMemberCount+1, trip.MaxMembers)
	return nil
}

// RejectRequest drops the pending request and notifies the requester.
func (ts *TripService) RejectRequest(ctx context.Context, tripID, callerID, requesterID string) error {
	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ValidateReject(trip, callerID, requesterID); err != nil {
		return err
	}

	owner := models.Identity{UserID: trip.OwnerID, DisplayName: trip.OwnerName, AvatarURL: trip.OwnerAvatar}
	notification := NewNotification(requesterID, owner, models.NotificationRequestRejected,
		fmt.Sprintf("Your request to join \"%s\" was declined", trip.Title), tripID, tripID)

	err = ts.Dynamo.TransactWrite(ctx, []TransactUpdate{
		{
			TableName:           models.TripsTable,
			Key:                 tripKey(tripID),
			UpdateExpression:    "REMOVE #jr.#uid",
			ConditionExpression: "attribute_exists(#jr.#uid)",
			ExpressionAttributeNames: map[string]string{
				"#jr": "joinRequests", "#uid": requesterID,
			},
		},
	}, []TransactPut{
		{TableName: models.NotificationsTable, Item: notification},
	}, nil)
	if err != nil {
		return ts.resolveRejection(ctx, tripID, err, func(fresh *models.Trip) error {
			return ValidateReject(fresh, callerID, requesterID)
		}, "reject request")
	}
	return nil
}

// LeaveTrip removes a non-owner member from both records and notifies the
// remaining members.
func (ts *TripService) LeaveTrip(ctx context.Context, tripID string, leaver models.Identity) error {
	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ValidateLeave(trip, leaver.UserID); err != nil {
		return err
	}

	message := fmt.Sprintf("%s left \"%s\"", leaver.DisplayName, trip.Title)
	var puts []TransactPut
	for memberID := range trip.Members {
		if memberID == leaver.UserID {
			continue
		}
		puts = append(puts, TransactPut{
			TableName: models.NotificationsTable,
			Item:      NewNotification(memberID, leaver, models.NotificationMemberLeft, message, tripID, tripID),
		})
	}

	err = ts.Dynamo.TransactWrite(ctx, ts.removalUpdates(tripID, leaver.UserID), puts, nil)
	if err != nil {
		return ts.resolveRejection(ctx, tripID, err, func(fresh *models.Trip) error {
			return ValidateLeave(fresh, leaver.UserID)
		}, "leave trip")
	}

	log.Printf("👋 %s left trip %s", leaver.UserID, tripID)
	return nil
}

// RemoveMember is the owner-initiated counterpart of LeaveTrip. The removed
// user and the remaining members are notified.
func (ts *TripService) RemoveMember(ctx context.Context, tripID, callerID, targetID string) error {
	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ValidateRemove(trip, callerID, targetID); err != nil {
		return err
	}

	owner := models.Identity{UserID: trip.OwnerID, DisplayName: trip.OwnerName, AvatarURL: trip.OwnerAvatar}
	target := trip.Members[targetID]

	puts := []TransactPut{{
		TableName: models.NotificationsTable,
		Item: NewNotification(targetID, owner, models.NotificationMemberRemoved,
			fmt.Sprintf("You were removed from \"%s\"", trip.Title), tripID, tripID),
	}}
	leftMessage := fmt.Sprintf("%s was removed from \"%s\"", target.DisplayName, trip.Title)
	for memberID := range trip.Members {
		if memberID == targetID || memberID == callerID {
			continue
		}
		puts = append(puts, TransactPut{
			TableName: models.NotificationsTable,
			Item:      NewNotification(memberID, owner, models.NotificationMemberLeft, leftMessage, tripID, tripID),
		})
	}

	err = ts.Dynamo.TransactWrite(ctx, ts.removalUpdates(tripID, targetID), puts, nil)
	if err != nil {
		return ts.resolveRejection(ctx, tripID, err, func(fresh *models.Trip) error {
			return ValidateRemove(fresh, callerID, targetID)
		}, "remove member")
	}

	log.Printf("🚪 Removed %s from trip %s", targetID, tripID)
	return nil
}

// removalUpdates builds the paired Trip/Group updates for leave and kick.
// The store re-checks the trip is still active at apply time; membership is
// frozen once the trip ends.
func (ts *TripService) removalUpdates(tripID, userID string) []TransactUpdate {
	return []TransactUpdate{
		{
			TableName:           models.TripsTable,
			Key:                 tripKey(tripID),
			UpdateExpression:    "REMOVE #m.#uid SET currentMemberCount = currentMemberCount - :one",
			ConditionExpression: "attribute_exists(#m.#uid) AND #status = :active",
			ExpressionAttributeNames: map[string]string{
				"#m": "members", "#uid": userID, "#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one":    numberAV(1),
				":active": &types.AttributeValueMemberS{Value: models.TripStatusActive},
			},
		},
		{
			TableName:           models.GroupsTable,
			Key:                 groupKey(tripID),
			UpdateExpression:    "REMOVE #m.#uid, memberIds.#uid SET currentMemberCount = currentMemberCount - :one",
			ConditionExpression: "attribute_exists(#m.#uid) AND #status = :active",
			ExpressionAttributeNames: map[string]string{
				"#m": "members", "#uid": userID, "#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one":    numberAV(1),
				":active": &types.AttributeValueMemberS{Value: models.TripStatusActive},
			},
		},
	}
}

// EndTrip ends an active trip. A trip whose only member is the owner is
// deleted outright, Trip and Group together; otherwise both records flip to
// ended in one transaction and further sends and membership changes are
// rejected.
func (ts *TripService) EndTrip(ctx context.Context, tripID, callerID string) error {
	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ValidateEnd(trip, callerID); err != nil {
		return err
	}

	if trip.CurrentMemberCount == 1 {
		// The delete re-checks the count at apply time: an approval that
		// raced in since the read cancels it, and the trip is ended like
		// any other multi-member trip instead.
		soleMember := func(table string, key map[string]types.AttributeValue) TransactDelete {
			return TransactDelete{
				TableName:           table,
				Key:                 key,
				ConditionExpression: "currentMemberCount = :one",
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":one": numberAV(1),
				},
			}
		}
		err = ts.Dynamo.TransactWrite(ctx, nil, nil, []TransactDelete{
			soleMember(models.TripsTable, tripKey(tripID)),
			soleMember(models.GroupsTable, groupKey(tripID)),
		})
		if err == nil {
			log.Printf("🗑️ Deleted owner-only trip %s", tripID)
			return nil
		}
		if !isConditionalCancellation(err) {
			return transient("delete trip", err)
		}
	}

	statusUpdate := func(table string, key map[string]types.AttributeValue) TransactUpdate {
		return TransactUpdate{
			TableName:           table,
			Key:                 key,
			UpdateExpression:    "SET #status = :ended",
			ConditionExpression: "#status = :active",
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":ended":  &types.AttributeValueMemberS{Value: models.TripStatusEnded},
				":active": &types.AttributeValueMemberS{Value: models.TripStatusActive},
			},
		}
	}

	err = ts.Dynamo.TransactWrite(ctx, []TransactUpdate{
		statusUpdate(models.TripsTable, tripKey(tripID)),
		statusUpdate(models.GroupsTable, groupKey(tripID)),
	}, nil, nil)
	if err != nil {
		return ts.resolveRejection(ctx, tripID, err, func(fresh *models.Trip) error {
			return ValidateEnd(fresh, callerID)
		}, "end trip")
	}

	log.Printf("🏁 Ended trip %s", tripID)
	return nil
}

// ToggleLike flips the caller's like on a trip. The owner is notified on
// like (not on unlike), best effort, outside any membership guarantee.
func (ts *TripService) ToggleLike(ctx context.Context, tripID string, caller models.Identity) (bool, error) {
	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return false, err
	}

	liked := !trip.Likes[caller.UserID]
	updateExpression := "SET likes.#uid = :true"
	values := map[string]types.AttributeValue{
		":true": &types.AttributeValueMemberBOOL{Value: true},
	}
	if !liked {
		updateExpression = "REMOVE likes.#uid"
		values = nil
	}

	_, err = ts.Dynamo.UpdateItem(ctx, models.TripsTable, updateExpression, tripKey(tripID), values, map[string]string{"#uid": caller.UserID})
	if err != nil {
		return false, transient("toggle like", err)
	}

	if liked && caller.UserID != trip.OwnerID {
		notification := NewNotification(trip.OwnerID, caller, models.NotificationLike,
			fmt.Sprintf("%s likes \"%s\"", caller.DisplayName, trip.Title), tripID, "")
		if err := ts.Dynamo.PutItem(ctx, models.NotificationsTable, notification); err != nil {
			log.Printf("⚠️ Failed to notify owner about like on %s: %v", tripID, err)
		}
	}
	return liked, nil
}

// AddComment appends a comment to the proposal and notifies the owner.
func (ts *TripService) AddComment(ctx context.Context, tripID string, caller models.Identity, text string) (*models.Comment, error) {
	if text == "" {
		return nil, validationf("comment text is required")
	}

	trip, err := ts.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		UserID:      caller.UserID,
		DisplayName: caller.DisplayName,
		AvatarURL:   caller.AvatarURL,
		Text:        text,
		PostedAt:    time.Now().UTC().Format(time.RFC3339Nano),
	}
	commentAV, err := attributevalue.Marshal(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comment: %w", err)
	}

	_, err = ts.Dynamo.UpdateItem(ctx, models.TripsTable,
		"SET comments = list_append(if_not_exists(comments, :empty), :new)",
		tripKey(tripID),
		map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":new":   &types.AttributeValueMemberL{Value: []types.AttributeValue{commentAV}},
		}, nil)
	if err != nil {
		return nil, transient("add comment", err)
	}

	if caller.UserID != trip.OwnerID {
		notification := NewNotification(trip.OwnerID, caller, models.NotificationComment,
			fmt.Sprintf("%s commented on \"%s\"", caller.DisplayName, trip.Title), tripID, "")
		if err := ts.Dynamo.PutItem(ctx, models.NotificationsTable, notification); err != nil {
			log.Printf("⚠️ Failed to notify owner about comment on %s: %v", tripID, err)
		}
	}
	return &comment, nil
}

// resolveRejection distinguishes a condition rejection from a transport
// failure after a cancelled transaction. On a condition rejection the state
// is untouched, so the operation revalidates against a fresh read to
// surface the precise typed error the caller raced into.
func (ts *TripService) resolveRejection(ctx context.Context, tripID string, err error, revalidate func(*models.Trip) error, op string) error {
	if !isConditionalCancellation(err) {
		return transient(op, err)
	}

	fresh, getErr := ts.GetTrip(ctx, tripID)
	if getErr != nil {
		return getErr
	}
	if verr := revalidate(fresh); verr != nil {
		return verr
	}
	// Condition failed but the fresh state validates: a concurrent writer
	// got in between. Retryable.
	return &TransientStoreError{Op: op, Err: err}
}

// isConditionalCancellation reports whether err is a transaction cancelled
// by a condition expression rather than a transport failure.
func isConditionalCancellation(err error) bool {
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for _, reason := range canceled.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
		return false
	}
	var conditional *types.ConditionalCheckFailedException
	return errors.As(err, &conditional)
}

func tripKey(tripID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"tripId": &types.AttributeValueMemberS{Value: tripID},
	}
}

func groupKey(groupID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"groupId": &types.AttributeValueMemberS{Value: groupID},
	}
}

func numberAV(n int) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", n)}
}
