package input

// KeyCode is a Linux input key code
type KeyCode uint16

// Key codes from linux/input-event-codes.h used by tag readers
const (
	KeyUnknown KeyCode = 0
	Key1       KeyCode = 2
	Key2       KeyCode = 3
	Key3       KeyCode = 4
	Key4       KeyCode = 5
	Key5       KeyCode = 6
	Key6       KeyCode = 7
	Key7       KeyCode = 8
	Key8       KeyCode = 9
	Key9       KeyCode = 10
	Key0       KeyCode = 11
	KeyEnter   KeyCode = 28
	KeyKP7     KeyCode = 71
	KeyKP8     KeyCode = 72
	KeyKP9     KeyCode = 73
	KeyKP4     KeyCode = 75
	KeyKP5     KeyCode = 76
	KeyKP6     KeyCode = 77
	KeyKP1     KeyCode = 79
	KeyKP2     KeyCode = 80
	KeyKP3     KeyCode = 81
	KeyKP0     KeyCode = 82
	KeyKPEnter KeyCode = 96
)

var digits = map[KeyCode]rune{
	Key0: '0', Key1: '1', Key2: '2', Key3: '3', Key4: '4',
	Key5: '5', Key6: '6', Key7: '7', Key8: '8', Key9: '9',
	KeyKP0: '0', KeyKP1: '1', KeyKP2: '2', KeyKP3: '3', KeyKP4: '4',
	KeyKP5: '5', KeyKP6: '6', KeyKP7: '7', KeyKP8: '8', KeyKP9: '9',
}

var digitKeys = [10]KeyCode{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9}

// Digit returns the digit typed by code
func Digit(code KeyCode) (rune, bool) {
	r, ok := digits[code]
	return r, ok
}

// DigitKey returns the main keyboard key code that types r
func DigitKey(r rune) (KeyCode, bool) {
	if r < '0' || r > '9' {
		return KeyUnknown, false
	}
	return digitKeys[r-'0'], true
}

// IsTerminator reports whether code ends a tag identifier
func IsTerminator(code KeyCode) bool {
	return code == KeyEnter || code == KeyKPEnter
}
