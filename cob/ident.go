// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

// Identifier recognizers. Each returns the longest matching prefix
// of frag, or the empty string when there is no match.

func isLower(b byte) bool { return 'a' <= b && b <= 'z' }
func isUpper(b byte) bool { return 'A' <= b && b <= 'Z' }
func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isIdentByte(b byte) bool {
	return isLower(b) || isUpper(b) || isDigit(b) || b == '_'
}

// snakeIdent matches lowercase identifiers such as field names
// and path segments: lowercase letters, digits, and underscores,
// not starting with a digit.
func snakeIdent(frag string) string {
	if len(frag) == 0 || !(isLower(frag[0]) || frag[0] == '_') {
		return ""
	}
	i := 1
	for i < len(frag) && (isLower(frag[i]) || isDigit(frag[i]) || frag[i] == '_') {
		i++
	}
	if i < len(frag) && isIdentByte(frag[i]) {
		return ""
	}
	return frag[:i]
}

// numericalSnakeIdent is snakeIdent but may start with a digit.
// Scene node names use it.
func numericalSnakeIdent(frag string) string {
	if len(frag) == 0 || !(isLower(frag[0]) || isDigit(frag[0]) || frag[0] == '_') {
		return ""
	}
	i := 1
	for i < len(frag) && (isLower(frag[i]) || isDigit(frag[i]) || frag[i] == '_') {
		i++
	}
	if i < len(frag) && isIdentByte(frag[i]) {
		return ""
	}
	return frag[:i]
}

// camelIdent matches type-like identifiers: an uppercase letter
// followed by letters and digits.
func camelIdent(frag string) string {
	if len(frag) == 0 || !isUpper(frag[0]) {
		return ""
	}
	i := 1
	for i < len(frag) && (isLower(frag[i]) || isUpper(frag[i]) || isDigit(frag[i])) {
		i++
	}
	if i < len(frag) && isIdentByte(frag[i]) {
		return ""
	}
	return frag[:i]
}

// anythingIdent matches constant and macro names:
// letters, digits, and underscores in any order.
func anythingIdent(frag string) string {
	i := 0
	for i < len(frag) && isIdentByte(frag[i]) {
		i++
	}
	return frag[:i]
}

// keywordAt reports whether frag begins with the keyword kw
// at an identifier boundary.
func keywordAt(frag, kw string) bool {
	if len(frag) < len(kw) || frag[:len(kw)] != kw {
		return false
	}
	return len(frag) == len(kw) || !isIdentByte(frag[len(kw)])
}
