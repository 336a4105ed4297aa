package suggest

// qwertyNeighbors maps each letter to the keys physically adjacent to it on a
// standard QWERTY layout. Used to rank likely fat-finger typos above
// equally-distant but implausible alternatives.
var qwertyNeighbors = map[rune]string{
	'a': "qwsz",
	'b': "vghn",
	'c': "xdfv",
	'd': "erfcxs",
	'e': "wsdr",
	'f': "rtgvcd",
	'g': "tyhbvf",
	'h': "yujnbg",
	'i': "ujko",
	'j': "uikmnh",
	'k': "iolmj",
	'l': "opk",
	'm': "njk",
	'n': "bhjm",
	'o': "iklp",
	'p': "ol",
	'q': "wa",
	'r': "edft",
	's': "wedxza",
	't': "rfgy",
	'u': "yhji",
	'v': "cfgb",
	'w': "qase",
	'x': "zsdc",
	'y': "tghu",
	'z': "asx",
}

// adjacentKeys reports whether two letters sit next to each other on the
// keyboard.
func adjacentKeys(a, b rune) bool {
	neighbors, ok := qwertyNeighbors[a]
	if !ok {
		return false
	}
	for _, n := range neighbors {
		if n == b {
			return true
		}
	}
	return false
}

// singleAdjacentSubstitution reports whether a and b have the same length and
// differ in exactly one position where the two characters are keyboard
// neighbours.
func singleAdjacentSubstitution(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	diffAt := -1
	for i := range ra {
		if ra[i] == rb[i] {
			continue
		}
		if diffAt >= 0 {
			return false
		}
		diffAt = i
	}
	if diffAt < 0 {
		return false
	}
	return adjacentKeys(ra[diffAt], rb[diffAt])
}
