// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
)

func TestCompressedBuffer_Write(t *testing.T) {
	const n = 1024
	var buffer Buffer

	_, _ = buffer.Write(make([]byte, n))

	if buf := buffer.Buffer(); len(buf) != n/16 {
		t.Error("Buffer.Write(make([]byte, 1024) expected", n/16, "got", len(buf))
		t.Error(buf)
	}
}

func TestCompressedBuffer_Read(t *testing.T) {
	const n = 1024
	var buffer Buffer

	input := make([]byte, n)
	for i := range input {
		input[i] = byte(rand.Intn(16))
	}

	_, _ = buffer.Write(input)

	output := make([]byte, n*2)
	r, _ := buffer.Read(output)
	output = output[:r]

	if !bytes.Equal(input, output) {
		t.Error("Buffer.Read expected", len(input), "got", len(output), "\ninput:", input, "\noutput:", output)
	}

	if _, err := buffer.Read(output); err != io.EOF {
		t.Error("Buffer.Read after end expected io.EOF, got", err)
	}
}

func TestCompressedBuffer_Runs(t *testing.T) {
	var buffer Buffer

	// 17 equal heights need two tuples, a change of height needs a third.
	input := append(bytes.Repeat([]byte{3}, 17), 4)
	_, _ = buffer.Write(input)

	expected := []byte{3<<4 | 15, 3 << 4, 4 << 4}
	if buf := buffer.Buffer(); !bytes.Equal(buf, expected) {
		t.Errorf("expected %08b, got %08b", expected, buf)
	}
}
