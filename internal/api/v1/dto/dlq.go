package dto

// PubSubPushRequest is the request body for a Pub/Sub push notification.
type PubSubPushRequest struct {
	Message         PubSubMessage `json:"message"`
	Subscription    string        `json:"subscription"`
	DeliveryAttempt *int          `json:"deliveryAttempt,omitempty"`
}

// PubSubMessage is the actual message from Pub/Sub. Push deliveries repeat the
// id and publish time in snake case as well.
type PubSubMessage struct {
	Data             string            `json:"data,omitempty"` // Base64-encoded
	MessageID        string            `json:"messageId,omitempty"`
	MessageIDSnake   string            `json:"message_id,omitempty"`
	PublishTime      string            `json:"publishTime,omitempty"`
	PublishTimeSnake string            `json:"publish_time,omitempty"`
	Attributes       map[string]string `json:"attributes,omitempty"`
}
