package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(formID, sessionID string, msgType string, payload interface{})
	DisconnectSession(formID, sessionID string)
}
