// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"reflect"
	"sort"
	"strings"
)

// messages knows every query a client may send and every answer the hub sends.
var messages = messageRegistry{
	inbounds:  make(map[messageType]reflect.Type),
	outbounds: make(map[reflect.Type]messageType),
}

type (
	// inbound is a query. It runs on the hub goroutine and answers client.
	inbound interface {
		Inbound(hub *Hub, client Client)
	}

	// outbound is an answer to a query.
	outbound interface {
		// Pool returns the contents of outbound to their sync.Pool
		Pool()
	}

	// Message is the {"type": ..., "data": ...} envelope of every websocket message.
	// Data is an inbound when decoded and an outbound when encoded.
	Message struct {
		Data interface{}
	}

	messageJSON struct {
		Data interface{} `json:"data"`
		Type messageType `json:"type"`
	}

	// messageType is the name of a Go message type with its first letter
	// lowercased, so SlopeResult is "slopeResult".
	messageType string

	// SignedInbound is a query along with the client waiting for its answer.
	SignedInbound struct {
		Client Client
		inbound
	}

	messageRegistry struct {
		inbounds  map[messageType]reflect.Type
		outbounds map[reflect.Type]messageType
	}
)

func typeName(val reflect.Value) messageType {
	name := reflect.Indirect(val).Type().Name()
	return messageType(strings.ToLower(name[:1]) + name[1:])
}

// Only call from init functions.
func registerInbound(inbounds ...inbound) {
	for _, in := range inbounds {
		val := reflect.ValueOf(in)
		messages.inbounds[typeName(val)] = val.Type()
	}
}

// Only call from init functions.
func registerOutbound(outbounds ...outbound) {
	for _, out := range outbounds {
		val := reflect.ValueOf(out)
		messages.outbounds[val.Type()] = typeName(val)
	}
}

// inbound returns a pointer to a new query of type mType, or an *InvalidInbound
// if no query has that type.
func (r *messageRegistry) inbound(mType messageType) interface{} {
	typ, ok := r.inbounds[mType]
	if !ok {
		return &InvalidInbound{messageType: mType}
	}
	return reflect.New(typ).Interface()
}

// inboundTypes returns the sorted types of all queries.
func (r *messageRegistry) inboundTypes() []string {
	types := make([]string, 0, len(r.inbounds))
	for mType := range r.inbounds {
		types = append(types, string(mType))
	}
	sort.Strings(types)
	return types
}

func (message Message) messageJSON() messageJSON {
	typ := reflect.TypeOf(message.Data)

	mType, ok := messages.outbounds[typ]
	if !ok {
		// Outbounds only come from the server.
		panic("invalid outbound message type " + typ.String())
	}

	return messageJSON{Data: message.Data, Type: mType}
}

// Overridden by jsoniter
func (message Message) MarshalJSON() ([]byte, error) {
	panic("unimplemented")
}

// Overridden by jsoniter
func (message *Message) UnmarshalJSON([]byte) error {
	panic("unimplemented")
}
