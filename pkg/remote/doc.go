// Package remote is a host surface that renders over a websocket. Node
// handles are numeric ids; mutations buffer in order and flush to the
// thin client as one JSON ops frame per committed turn batch, and client
// event frames resolve to registered handlers and run as session turns.
package remote
