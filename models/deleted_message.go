package models

// DeletedMessage is the audit record for a soft-deleted chat message. The
// full original message is relocated here, keyed by message id, before the
// live copy is tombstoned.
type DeletedMessage struct {
	MessageID string       `dynamodbav:"messageId" json:"messageId"` // Partition Key
	GroupID   string       `dynamodbav:"groupId" json:"groupId"`
	DeletedBy string       `dynamodbav:"deletedBy" json:"deletedBy"`
	DeletedAt string       `dynamodbav:"deletedAt" json:"deletedAt"`
	Original  GroupMessage `dynamodbav:"original" json:"original"`
}

// DeletedMessagesTable is the DynamoDB table name for the deletion audit log
const DeletedMessagesTable = "DeletedMessages"
