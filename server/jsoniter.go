// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"reflect"
	"sync"
	"unsafe"

	"github.com/SoftbearStudios/tileslope/server/slope"
	jsoniter "github.com/json-iterator/go"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Message{}).String(), encodeMessage, neverEmpty)
	jsoniter.RegisterFieldEncoderFunc(reflect.TypeOf(RegionResult{}).String(), "Slopes", encodeRegionSlopes, neverEmpty)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Message{}).String(), decodeMessage)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeMessage(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	message := (*Message)(ptr)
	stream.WriteVal(message.messageJSON())
}

// encodeRegionSlopes writes slopes as numbers. []uint8 would otherwise be base64.
func encodeRegionSlopes(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	slopes := *(*[]slope.Slope)(ptr)
	stream.WriteArrayStart()
	for i, s := range slopes {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteUint8(uint8(s))
	}
	stream.WriteArrayEnd()
}

var decodeMessagePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 128)
		return &buf
	},
}

func decodeMessage(ptr unsafe.Pointer, topLevelIter *jsoniter.Iterator) {
	bufPtr := decodeMessagePool.Get().(*[]byte)

	// Read bytes so can read twice
	messageBytes := topLevelIter.SkipAndAppendBytes(*bufPtr)
	defer func() {
		*bufPtr = messageBytes[:0]
		decodeMessagePool.Put(bufPtr)
	}()

	pool := topLevelIter.Pool()
	iter := pool.BorrowIterator(messageBytes)
	defer pool.ReturnIterator(iter)

	// First pass finds the type.
	var in interface{}
	iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
		if field != "type" {
			i.Skip()
			return true
		}

		in = messages.inbound(messageType(i.ReadString()))
		return false
	})
	if err := iter.Error; err != nil {
		topLevelIter.Error = err
		return
	}
	if in == nil {
		topLevelIter.Error = errors.New("no inbound message type")
		return
	}

	// Second pass reads the data, which may come before the type.
	iter.ResetBytes(messageBytes)
	iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
		if field == "data" {
			if _, invalid := in.(*InvalidInbound); !invalid {
				i.ReadVal(in)
				return false
			}
		}
		i.Skip()
		return true
	})
	if err := iter.Error; err != nil {
		topLevelIter.Error = err
		return
	}

	message := (*Message)(ptr)
	message.Data = reflect.Indirect(reflect.ValueOf(in)).Interface()
}
