package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tripmate_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// NewNotification builds a notification record addressed to recipientID.
// Used directly for transactional puts by the trip service and for batched
// fan-out by the chat service.
func NewNotification(recipientID string, sender models.Identity, category, message, tripID, groupID string) models.Notification {
	return models.Notification{
		UserID:         recipientID,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339Nano),
		NotificationID: uuid.New().String(),
		SenderID:       sender.UserID,
		SenderName:     sender.DisplayName,
		SenderAvatar:   sender.AvatarURL,
		Category:       category,
		Message:        message,
		TripID:         tripID,
		GroupID:        groupID,
		Read:           false,
	}
}

// NotificationService tracks per-user notifications and their read state.
type NotificationService struct {
	Dynamo *DynamoService
}

// ListNotifications returns the user's notifications, latest first.
func (ns *NotificationService) ListNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	keyCondition := "userId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := ns.Dynamo.QueryItemsWithOptions(ctx, models.NotificationsTable, keyCondition, expressionValues, nil, int32(limit), true)
	if err != nil {
		return nil, transient("list notifications", err)
	}

	var notifications []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread derives the two badge counters: chat_message notifications
// feed the chat badge, everything else feeds the general badge.
func CountUnread(notifications []models.Notification) models.UnreadCounts {
	var counts models.UnreadCounts
	for _, n := range notifications {
		if n.Read {
			continue
		}
		if n.IsChat() {
			counts.Chat++
		} else {
			counts.General++
		}
	}
	return counts
}

// GetUnreadCounts fetches the user's notifications and derives the badges.
func (ns *NotificationService) GetUnreadCounts(ctx context.Context, userID string) (models.UnreadCounts, error) {
	notifications, err := ns.ListNotifications(ctx, userID, 0)
	if err != nil {
		return models.UnreadCounts{}, err
	}
	return CountUnread(notifications), nil
}

// MarkRead flips one notification to read. Idempotent.
func (ns *NotificationService) MarkRead(ctx context.Context, userID, createdAt string) error {
	_, err := ns.Dynamo.UpdateItem(ctx, models.NotificationsTable,
		"SET #read = :true",
		notificationKey(userID, createdAt),
		map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		},
		map[string]string{"#read": "read"})
	if err != nil {
		return transient("mark notification read", err)
	}
	return nil
}

// MarkAllRead flips every currently unread notification to read.
// Notifications created after the unread subset is computed are left
// alone; each flip targets only its own record, so nothing is lost
// either way.
func (ns *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	notifications, err := ns.ListNotifications(ctx, userID, 0)
	if err != nil {
		return 0, err
	}
	return ns.markReadBatch(ctx, notifications, func(n models.Notification) bool {
		return !n.Read
	})
}

// MarkChatRead flips the unread chat notifications linked to groupID,
// invoked when the viewer opens that group's chat window.
func (ns *NotificationService) MarkChatRead(ctx context.Context, userID, groupID string) (int, error) {
	notifications, err := ns.ListNotifications(ctx, userID, 0)
	if err != nil {
		return 0, err
	}
	return ns.markReadBatch(ctx, notifications, func(n models.Notification) bool {
		return !n.Read && n.IsChat() && n.GroupID == groupID
	})
}

// maxTransactItems is DynamoDB's per-transaction item cap.
const maxTransactItems = 100

func (ns *NotificationService) markReadBatch(ctx context.Context, notifications []models.Notification, match func(models.Notification) bool) (int, error) {
	var updates []TransactUpdate
	for _, n := range notifications {
		if !match(n) {
			continue
		}
		updates = append(updates, TransactUpdate{
			TableName:                models.NotificationsTable,
			Key:                      notificationKey(n.UserID, n.CreatedAt),
			UpdateExpression:         "SET #read = :true",
			ExpressionAttributeNames: map[string]string{"#read": "read"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":true": &types.AttributeValueMemberBOOL{Value: true},
			},
		})
	}
	if len(updates) == 0 {
		return 0, nil
	}

	// Each flip targets only its own record, so splitting a large unread
	// set across transactions loses nothing.
	marked := 0
	for start := 0; start < len(updates); start += maxTransactItems {
		end := start + maxTransactItems
		if end > len(updates) {
			end = len(updates)
		}
		if err := ns.Dynamo.TransactWrite(ctx, updates[start:end], nil, nil); err != nil {
			return marked, transient("mark notifications read", err)
		}
		marked += end - start
	}

	log.Printf("🔔 Marked %d notifications read", marked)
	return marked, nil
}

// DeleteNotification removes one of the recipient's notifications.
func (ns *NotificationService) DeleteNotification(ctx context.Context, userID, createdAt string) error {
	if err := ns.Dynamo.DeleteItem(ctx, models.NotificationsTable, notificationKey(userID, createdAt)); err != nil {
		return transient("delete notification", err)
	}
	return nil
}

func notificationKey(userID, createdAt string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":    &types.AttributeValueMemberS{Value: userID},
		"createdAt": &types.AttributeValueMemberS{Value: createdAt},
	}
}
