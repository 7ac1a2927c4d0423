package dom

import "strings"

// specialAttributeSeparator is the 2-byte token FBX embeds inside certain
// string attributes to pack two logical strings into one: before it is the
// first logical string, after it is the second.
const specialAttributeSeparator = "\x00\x01"

// splitSpecialAttribute splits s on the embedded 0x00 0x01 separator FBX
// uses to pack an object's class/subclass or name/class into a single
// string attribute. ok is false if the separator is absent.
func splitSpecialAttribute(s string) (before, after string, ok bool) {
	idx := strings.Index(s, specialAttributeSeparator)
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+len(specialAttributeSeparator):], true
}
