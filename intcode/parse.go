package intcode

import (
	"errors"
	"strconv"
	"strings"
)

// Parse converts comma separated decimal program text into a program image.
// Whitespace around each literal is ignored. Any token that is not a
// decimal literal within the range of W aborts the parse.
func Parse[W Word](text string) (image []W, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrProgramEmpty
		return
	}

	tokens := strings.Split(text, ",")
	image = make([]W, 0, len(tokens))

	for n, token := range tokens {
		token = strings.TrimSpace(token)
		var value int64
		value, err = strconv.ParseInt(token, 10, Bits[W]())
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				err = ErrWordRange
			}
			err = &ErrParse{Index: n, Token: token, Err: err}
			image = nil
			return
		}
		image = append(image, W(value))
	}

	return
}

// Format renders a program image as comma separated text.
func Format[W Word](image []W) string {
	tokens := make([]string, len(image))
	for n, word := range image {
		tokens[n] = strconv.FormatInt(int64(word), 10)
	}
	return strings.Join(tokens, ",")
}
