package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"tripmate_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// LifecycleService posts the automated "starts tomorrow" and "starts today"
// system messages. It runs as a guarded check each time the owner observes
// their group; the one-shot flags on the Group record make the check safe
// to invoke arbitrarily often.
type LifecycleService struct {
	Dynamo *DynamoService

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (ls *LifecycleService) now() time.Time {
	if ls.Now != nil {
		return ls.Now()
	}
	return time.Now()
}

// DaysUntilStart returns the whole-day offset between today and the trip
// start date, both taken at midnight. 1 means the trip starts tomorrow,
// 0 today, negative values mean it already started. Calendar days, not
// 24-hour spans: a DST transition shifts a day by an hour, so the quotient
// is rounded rather than truncated.
func DaysUntilStart(startDate string, now time.Time) (int, error) {
	start, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(start.Sub(today).Hours() / 24)), nil
}

// CheckGroup fires at most one system message per trigger for the group.
// Invoked by the hosting layer whenever the owner observes a group
// snapshot; non-owner observations are ignored.
func (ls *LifecycleService) CheckGroup(ctx context.Context, group *models.Group, observerID string) error {
	if observerID != group.OwnerID || group.StartDate == "" || group.Status == models.TripStatusEnded {
		return nil
	}

	offset, err := DaysUntilStart(group.StartDate, ls.now())
	if err != nil {
		return err
	}

	switch {
	case offset == 1 && !group.NotifiedApproaching.Triggered:
		text := fmt.Sprintf("\"%s\" starts tomorrow. Time to pack!", group.TripTitle)
		return ls.fire(ctx, group, "notifiedApproaching", text)
	case offset == 0 && !group.NotifiedToday.Triggered:
		text := fmt.Sprintf("\"%s\" starts today. Have a great trip!", group.TripTitle)
		return ls.fire(ctx, group, "notifiedToday", text)
	}
	return nil
}

// fire appends the system message and flips the one-shot flag in a single
// transaction, so the flag and the visible message can never diverge. The
// flag is re-checked by the store at apply time; losing that race to a
// concurrent observer is a clean no-op.
func (ls *LifecycleService) fire(ctx context.Context, group *models.Group, flagAttribute, text string) error {
	at := ls.now().UTC().Format(time.RFC3339Nano)

	message := models.GroupMessage{
		GroupID:    group.GroupID,
		CreatedAt:  at,
		MessageID:  uuid.New().String(),
		SenderID:   models.SystemSenderID,
		SenderName: "TripMate",
		Kind:       models.MessageKindSystem,
		Content:    text,
	}

	err := ls.Dynamo.TransactWrite(ctx, []TransactUpdate{
		{
			TableName:           models.GroupsTable,
			Key:                 groupKey(group.GroupID),
			UpdateExpression:    "SET #flag = :flag, lastMessageText = :text, lastMessageAt = :at",
			ConditionExpression: "#flag.triggered = :false",
			ExpressionAttributeNames: map[string]string{
				"#flag": flagAttribute,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":flag": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
					"triggered":   &types.AttributeValueMemberBOOL{Value: true},
					"triggeredAt": &types.AttributeValueMemberS{Value: at},
				}},
				":text":  &types.AttributeValueMemberS{Value: text},
				":at":    &types.AttributeValueMemberS{Value: at},
				":false": &types.AttributeValueMemberBOOL{Value: false},
			},
		},
	}, []TransactPut{
		{TableName: models.GroupMessagesTable, Item: message},
	}, nil)
	if err != nil {
		if isConditionalCancellation(err) {
			// A concurrent observation already fired this trigger.
			return nil
		}
		return transient("lifecycle trigger", err)
	}

	log.Printf("⏰ Lifecycle message for group %s (%s)", group.GroupID, flagAttribute)
	return nil
}
