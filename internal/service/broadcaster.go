package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToStaff(msgType string, payload interface{})
}

// MsgFeedbackCategorized is sent to staff dashboards for every new submission
const MsgFeedbackCategorized = "feedback_categorized"
