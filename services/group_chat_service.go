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

// GroupChatService is the realtime message stream for trip groups. Messages
// are ordered by their store-assigned creation timestamp; edits and deletes
// are sender-only, and deletes are tombstones backed by an audit record.
type GroupChatService struct {
	Dynamo *DynamoService
}

// SendMessage appends a message to the group. Rejected when the group has
// ended or the sender is not a member. The group's last-message preview and
// the chat notifications for the other members are written best effort
// after the message itself is durable.
func (s *GroupChatService) SendMessage(ctx context.Context, groupID string, sender models.Identity, content string, location *models.LocationPayload) (*models.GroupMessage, error) {
	if content == "" && location == nil {
		return nil, validationf("message needs text or a location")
	}
	if content != "" && location != nil {
		return nil, validationf("message cannot carry both text and a location")
	}

	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Status == models.TripStatusEnded {
		return nil, ErrTripEnded
	}
	if !group.HasMember(sender.UserID) {
		return nil, ErrPermission
	}

	kind := models.MessageKindText
	if location != nil {
		kind = models.MessageKindLocation
	}

	message := models.GroupMessage{
		GroupID:      groupID,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339Nano),
		MessageID:    uuid.New().String(),
		SenderID:     sender.UserID,
		SenderName:   sender.DisplayName,
		SenderAvatar: sender.AvatarURL,
		Kind:         kind,
		Content:      content,
		Location:     location,
	}

	if err := s.Dynamo.PutItem(ctx, models.GroupMessagesTable, message); err != nil {
		return nil, transient("send message", err)
	}

	s.updatePreview(ctx, groupID, &message)
	s.fanOutChatNotifications(ctx, group, sender, &message)

	return &message, nil
}

// ListMessages returns up to limit messages, oldest first, with the
// per-viewer ownership flag set.
func (s *GroupChatService) ListMessages(ctx context.Context, groupID, viewerID string, limit int) ([]models.GroupMessage, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(viewerID) {
		return nil, ErrPermission
	}

	keyCondition := "groupId = :groupId"
	expressionValues := map[string]types.AttributeValue{
		":groupId": &types.AttributeValueMemberS{Value: groupID},
	}

	// Latest first so the limit trims old history, then reversed so the
	// newest message lands at the bottom.
	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.GroupMessagesTable, keyCondition, expressionValues, nil, int32(limit), true)
	if err != nil {
		return nil, transient("list messages", err)
	}

	var messages []models.GroupMessage
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse group messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	for i := range messages {
		messages[i].IsMine = messages[i].SenderID == viewerID
	}
	return messages, nil
}

// GetLastMessage returns the most recent message, or nil when the group has
// no messages yet.
func (s *GroupChatService) GetLastMessage(ctx context.Context, groupID string) (*models.GroupMessage, error) {
	keyCondition := "groupId = :groupId"
	expressionValues := map[string]types.AttributeValue{
		":groupId": &types.AttributeValueMemberS{Value: groupID},
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.GroupMessagesTable, keyCondition, expressionValues, nil, 1, true)
	if err != nil {
		return nil, transient("get last message", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var message models.GroupMessage
	if err := attributevalue.UnmarshalMap(items[0], &message); err != nil {
		return nil, fmt.Errorf("failed to parse last message: %w", err)
	}
	return &message, nil
}

// EditMessage rewrites the body of the caller's own text message.
func (s *GroupChatService) EditMessage(ctx context.Context, groupID, createdAt, callerID, newContent string) error {
	if newContent == "" {
		return validationf("new message text is required")
	}

	message, err := s.getMessage(ctx, groupID, createdAt)
	if err != nil {
		return err
	}
	if message.SenderID != callerID {
		return ErrPermission
	}
	if message.IsDeleted {
		return validationf("message was deleted")
	}
	if message.Kind != models.MessageKindText {
		return validationf("only text messages can be edited")
	}

	// Same guard as the delete path: the store re-checks the sender and
	// the tombstone flag at apply time, so an edit racing a soft delete
	// cannot overwrite the placeholder.
	err = s.Dynamo.TransactWrite(ctx, []TransactUpdate{
		{
			TableName:           models.GroupMessagesTable,
			Key:                 messageKey(groupID, createdAt),
			UpdateExpression:    "SET content = :content, isEdited = :true, editedAt = :editedAt",
			ConditionExpression: "senderId = :caller AND isDeleted = :false",
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":content":  &types.AttributeValueMemberS{Value: newContent},
				":true":     &types.AttributeValueMemberBOOL{Value: true},
				":editedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
				":caller":   &types.AttributeValueMemberS{Value: callerID},
				":false":    &types.AttributeValueMemberBOOL{Value: false},
			},
		},
	}, nil, nil)
	if err != nil {
		if isConditionalCancellation(err) {
			// A concurrent delete tombstoned the message after the read.
			return validationf("message was deleted")
		}
		return transient("edit message", err)
	}
	return nil
}

// SoftDeleteMessage tombstones the caller's own message. The full original
// is relocated to the audit table and the live body is replaced with the
// placeholder in the same transaction, with the kind preserved so the UI
// can still tell text from location tombstones apart.
func (s *GroupChatService) SoftDeleteMessage(ctx context.Context, groupID, createdAt, callerID string) error {
	message, err := s.getMessage(ctx, groupID, createdAt)
	if err != nil {
		return err
	}
	if message.SenderID != callerID {
		return ErrPermission
	}
	if message.IsDeleted {
		return validationf("message was already deleted")
	}

	audit := models.DeletedMessage{
		MessageID: message.MessageID,
		GroupID:   groupID,
		DeletedBy: callerID,
		DeletedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Original:  *message,
	}

	err = s.Dynamo.TransactWrite(ctx, []TransactUpdate{
		{
			TableName:           models.GroupMessagesTable,
			Key:                 messageKey(groupID, createdAt),
			UpdateExpression:    "SET content = :placeholder, isDeleted = :true REMOVE #loc",
			ConditionExpression: "senderId = :caller AND isDeleted = :false",
			ExpressionAttributeNames: map[string]string{
				"#loc": "location",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":placeholder": &types.AttributeValueMemberS{Value: models.DeletedPlaceholder},
				":true":        &types.AttributeValueMemberBOOL{Value: true},
				":false":       &types.AttributeValueMemberBOOL{Value: false},
				":caller":      &types.AttributeValueMemberS{Value: callerID},
			},
		},
	}, []TransactPut{
		{TableName: models.DeletedMessagesTable, Item: audit},
	}, nil)
	if err != nil {
		return transient("delete message", err)
	}

	log.Printf("🗑️ Tombstoned message %s in group %s", message.MessageID, groupID)
	return nil
}

// GetDeletedMessage retrieves the audit record for a soft-deleted message.
func (s *GroupChatService) GetDeletedMessage(ctx context.Context, messageID string) (*models.DeletedMessage, error) {
	item, err := s.Dynamo.GetItem(ctx, models.DeletedMessagesTable, map[string]types.AttributeValue{
		"messageId": &types.AttributeValueMemberS{Value: messageID},
	})
	if err != nil {
		return nil, transient("get deleted message", err)
	}

	var audit models.DeletedMessage
	if err := attributevalue.UnmarshalMap(item, &audit); err != nil {
		return nil, fmt.Errorf("failed to parse deleted message: %w", err)
	}
	return &audit, nil
}

// updatePreview refreshes the group's denormalized last-message fields.
// Best-effort tier: a failure here lags the chat list, nothing else.
func (s *GroupChatService) updatePreview(ctx context.Context, groupID string, message *models.GroupMessage) {
	_, err := s.Dynamo.UpdateItem(ctx, models.GroupsTable,
		"SET lastMessageText = :text, lastMessageAt = :at",
		groupKey(groupID),
		map[string]types.AttributeValue{
			":text": &types.AttributeValueMemberS{Value: PreviewText(message)},
			":at":   &types.AttributeValueMemberS{Value: message.CreatedAt},
		}, nil)
	if err != nil {
		log.Printf("⚠️ Failed to update preview for group %s: %v", groupID, err)
	}
}

// fanOutChatNotifications creates one chat notification per member other
// than the sender. Best effort, batched.
func (s *GroupChatService) fanOutChatNotifications(ctx context.Context, group *models.Group, sender models.Identity, message *models.GroupMessage) {
	var items []interface{}
	for memberID := range group.Members {
		if memberID == sender.UserID {
			continue
		}
		items = append(items, NewNotification(memberID, sender, models.NotificationChatMessage,
			fmt.Sprintf("%s: %s", sender.DisplayName, PreviewText(message)), group.GroupID, group.GroupID))
	}
	if len(items) == 0 {
		return
	}

	if err := s.Dynamo.BatchWriteItems(ctx, models.NotificationsTable, items); err != nil {
		log.Printf("⚠️ Failed to fan out chat notifications for group %s: %v", group.GroupID, err)
	}
}

// PreviewText renders the one-line chat-list preview for a message.
func PreviewText(message *models.GroupMessage) string {
	switch {
	case message.IsDeleted:
		return models.DeletedPlaceholder
	case message.Kind == models.MessageKindLocation:
		name := "a location"
		if message.Location != nil && message.Location.Name != "" {
			name = message.Location.Name
		}
		return "Shared " + name
	default:
		const maxPreview = 80
		runes := []rune(message.Content)
		if len(runes) > maxPreview {
			return string(runes[:maxPreview]) + "…"
		}
		return message.Content
	}
}

func (s *GroupChatService) getGroup(ctx context.Context, groupID string) (*models.Group, error) {
	item, err := s.Dynamo.GetItem(ctx, models.GroupsTable, groupKey(groupID))
	if err != nil {
		return nil, transient("get group", err)
	}

	var group models.Group
	if err := attributevalue.UnmarshalMap(item, &group); err != nil {
		return nil, fmt.Errorf("failed to parse group %s: %w", groupID, err)
	}
	return &group, nil
}

func (s *GroupChatService) getMessage(ctx context.Context, groupID, createdAt string) (*models.GroupMessage, error) {
	item, err := s.Dynamo.GetItem(ctx, models.GroupMessagesTable, messageKey(groupID, createdAt))
	if err != nil {
		return nil, transient("get message", err)
	}

	var message models.GroupMessage
	if err := attributevalue.UnmarshalMap(item, &message); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &message, nil
}

func messageKey(groupID, createdAt string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"groupId":   &types.AttributeValueMemberS{Value: groupID},
		"createdAt": &types.AttributeValueMemberS{Value: createdAt},
	}
}
