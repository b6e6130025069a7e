package io

import (
	"strings"
)

// SendWords sends each word to the channel, in order.
func SendWords(ch Channel, values ...int64) (err error) {
	for _, value := range values {
		err = ch.Send(value)
		if err != nil {
			return
		}
	}
	return
}

// SendAscii sends the characters of text to the channel, one per word.
func SendAscii(ch Channel, text string) (err error) {
	for n := range len(text) {
		if text[n] >= 128 {
			err = ErrNotAscii
			return
		}
		err = ch.Send(int64(text[n]))
		if err != nil {
			return
		}
	}
	return
}

// ReceiveAscii drains the channel, returning the received ASCII text and
// any words that are not ASCII characters.
func ReceiveAscii(ch Channel) (text string, other []int64) {
	var sb strings.Builder
	for value := range ch.Receive() {
		if value < 0 || value >= 128 {
			other = append(other, value)
			continue
		}
		sb.WriteByte(byte(value))
	}

	text = sb.String()
	return
}
