// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"testing"

	"github.com/SoftbearStudios/tileslope/server/slope"
)

func TestJsonIter_Encode(t *testing.T) {
	tests := []struct {
		out      outbound
		expected string
	}{
		{
			SlopeResult{X: 1, Y: 2, Slope: slope.N, Name: "N", Height: 3, PixelHeight: 24, MinHeight: 3, MaxHeight: 4, Inner: true},
			`{"data":{"x":1,"y":2,"slope":8,"name":"N","height":3,"pixelHeight":24,"minHeight":3,"maxHeight":4,"flat":false,"inner":true},"type":"slopeResult"}`,
		},
		{
			&RegionResult{Width: 2, Height: 1, Slopes: []slope.Slope{slope.Flat, slope.SteepS}, Heights: []int{1, 2}},
			`{"data":{"x":0,"y":0,"width":2,"height":1,"slopes":[0,23],"heights":[1,2]},"type":"regionResult"}`,
		},
		{
			QueryError{Message: "tile outside map"},
			`{"data":{"message":"tile outside map"},"type":"queryError"}`,
		},
	}

	for _, test := range tests {
		buf, err := json.Marshal(Message{Data: test.out})
		if err != nil {
			t.Errorf("error marshaling %T: %v", test.out, err)
			continue
		}
		if string(buf) != test.expected {
			t.Errorf("different output:\nexpected: %s\ngot:      %s", test.expected, buf)
		}
	}
}

func TestJsonIter_Decode(t *testing.T) {
	tests := []struct {
		in       string
		expected interface{}
	}{
		{`{"data":{"x":5,"y":-1},"type":"outside"}`, Outside{X: 5, Y: -1}},
		{`{"type":"region","data":{"x":1,"y":2,"width":3,"height":4}}`, Region{X: 1, Y: 2, Width: 3, Height: 4}},
		{`{"type":"pixelZ","data":{"x":1.5,"y":-2}}`, PixelZ{X: 1.5, Y: -2}},
		{`{"type":"snapshots"}`, Snapshots{}},
		{`{"type":"save","data":{"name":"a","auth":"b"},"extra":[1]}`, Save{Name: "a", Auth: "b"}},
		{`{"type":"explode","data":{"x":1}}`, InvalidInbound{messageType: "explode"}},
	}

	for _, test := range tests {
		var message Message
		if err := json.Unmarshal([]byte(test.in), &message); err != nil {
			t.Errorf("error unmarshaling %s: %v", test.in, err)
			continue
		}
		if message.Data != test.expected {
			t.Errorf("%s expected %#v, got %#v", test.in, test.expected, message.Data)
		}
	}

	var message Message
	if err := json.Unmarshal([]byte(`{"data":{"x":1}}`), &message); err == nil {
		t.Error("expected error for missing type")
	}
}
