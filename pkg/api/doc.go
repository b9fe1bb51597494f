// Package api defines the RoomMate RPC messages.
//
// Messages are plain Go structs carried by Connect with a JSON codec
// (see JSONCodec), so browsers can call the API with fetch and
// Content-Type: application/json. Money fields are decimal strings.
package api
