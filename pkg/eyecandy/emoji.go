/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package eyecandy prints messages with emojis, or without them when the user
asked for plain output.
*/
package eyecandy

import (
	"fmt"
	"io"
	"regexp"

	"github.com/kyokomi/emoji/v2"
)

var emojiCode = regexp.MustCompile(`:[a-zA-Z0-9-_+]+?:`)

// ESPrintf formats like fmt.Sprintf and renders ":code:" emojis, or strips
// them when emojisDisabled is set.
func ESPrintf(emojisDisabled bool, format string, v ...interface{}) string {
	if emojisDisabled {
		return fmt.Sprintf(removeEmojiFromString(format), v...)
	}
	return emoji.Sprintf(format, v...)
}

// ESPrint is ESPrintf without formatting.
func ESPrint(emojisDisabled bool, s string) string {
	if emojisDisabled {
		return removeEmojiFromString(s)
	}
	return emoji.Sprint(s)
}

// ESFprintln writes ESPrintf's result followed by a newline to w.
func ESFprintln(w io.Writer, emojisDisabled bool, format string, v ...interface{}) error {
	_, err := fmt.Fprintln(w, ESPrintf(emojisDisabled, format, v...))
	return err
}

// Arguments are not scanned, so package names can never be mistaken for
// emoji codes.
func removeEmojiFromString(s string) string {
	return emojiCode.ReplaceAllString(s, "")
}
