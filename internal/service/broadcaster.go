package service

// Broadcaster pushes game events to connected spectator screens (avoids an
// import cycle with the transport layer).
type Broadcaster interface {
	BroadcastToGame(gameID string, msgType string, payload interface{})
	DisconnectGame(gameID string)
}
